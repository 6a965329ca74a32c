// Package pagesnap takes a one-shot snapshot of a rendered web page.
// It reads a fixed set of landmark, section, link, image and button nodes
// from the document, assembles an ExtractionResult, and saves it as a
// pretty-printed JSON artifact while mirroring it to a console.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, htmltomarkdown/).
package pagesnap
