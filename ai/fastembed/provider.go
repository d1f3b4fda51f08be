package fastembed

import (
	"log/slog"

	"github.com/poiesic/harvest/ai"
)

// Provider implements ai.AIProvider with a local ONNX embedding model.
// Model files are downloaded into the configured cache directory on first use.
type Provider struct {
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider loads the configured model. Builds without cgo return
// ai.ErrFastEmbedUnavailable.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		embedder: embedder,
		logger:   slog.Default().With("component", "fastembed-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases the ONNX session.
func (p *Provider) Close() error {
	p.logger.Debug("closing fastembed provider")
	return p.embedder.close()
}
