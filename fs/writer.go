// Package fs provides file-based input and output for snapshots.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesnap"
)

// Ensure Writer implements pagesnap.ArtifactWriter at compile time.
var _ pagesnap.ArtifactWriter = (*Writer)(nil)

// Writer saves artifacts into a directory.
// Each save goes to a temporary file that is renamed over the target, so a
// reader never observes a partially written artifact. An existing file with
// the same name is replaced.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Save writes data to baseDir/name and returns the written path.
func (w *Writer) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.baseDir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename is a no-op.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	if err := os.Rename(tmpPath, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// validateName rejects names that would escape the base directory.
func validateName(name string) error {
	switch {
	case name == "":
		return pagesnap.Errorf(pagesnap.EINVALID, "artifact name required")
	case name == "." || name == "..":
		return pagesnap.Errorf(pagesnap.EINVALID, "invalid artifact name %q", name)
	case strings.ContainsAny(name, `/\`):
		return pagesnap.Errorf(pagesnap.EINVALID, "artifact name %q must not contain a path separator", name)
	}
	return nil
}
