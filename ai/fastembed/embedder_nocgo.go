//go:build !cgo

package fastembed

import (
	"context"

	"github.com/poiesic/harvest/ai"
)

// Embedder is a stub for builds without cgo.
type Embedder struct{}

func newEmbedder(_ *ai.Config) (*Embedder, error) {
	return nil, ai.ErrFastEmbedUnavailable
}

// EmbedText returns ai.ErrFastEmbedUnavailable.
func (e *Embedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, ai.ErrFastEmbedUnavailable
}

// EmbedTexts returns ai.ErrFastEmbedUnavailable.
func (e *Embedder) EmbedTexts(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ai.ErrFastEmbedUnavailable
}

// Dimension returns 0.
func (e *Embedder) Dimension() int {
	return 0
}

func (e *Embedder) close() error {
	return nil
}
