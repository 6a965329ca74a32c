package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/pagesnap"
)

var _ pagesnap.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of pagesnap.ArtifactWriter.
type ArtifactWriter struct {
	SaveFn func(ctx context.Context, name string, data []byte) (string, error)
}

func (w *ArtifactWriter) Save(ctx context.Context, name string, data []byte) (string, error) {
	return w.SaveFn(ctx, name, data)
}

// MemoryArtifacts records saved artifacts in memory.
// It is safe for concurrent use.
type MemoryArtifacts struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// NewMemoryArtifacts creates an empty MemoryArtifacts.
func NewMemoryArtifacts() *MemoryArtifacts {
	return &MemoryArtifacts{Files: make(map[string][]byte)}
}

// Save stores a copy of data under name and returns name as the path.
func (m *MemoryArtifacts) Save(ctx context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[name] = append([]byte(nil), data...)
	return name, nil
}

// Get returns the data saved under name.
func (m *MemoryArtifacts) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Files[name]
	return data, ok
}
