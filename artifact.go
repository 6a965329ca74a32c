package pagesnap

import "context"

// ArtifactWriter saves a named output file.
// A save either fully replaces the file or leaves it untouched.
type ArtifactWriter interface {
	// Save writes data under name and returns the path it was written to.
	Save(ctx context.Context, name string, data []byte) (path string, err error)
}
