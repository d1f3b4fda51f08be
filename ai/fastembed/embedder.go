//go:build cgo

package fastembed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	fastembed "github.com/anush008/fastembed-go"
	"github.com/poiesic/harvest/ai"
)

// passageBatchSize is the number of passages fastembed encodes per ONNX run.
const passageBatchSize = 256

// Embedder implements ai.Embedder with a local ONNX model.
type Embedder struct {
	model     *fastembed.FlagEmbedding
	modelName string
	dimension int
	mu        sync.RWMutex
	logger    *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	name, dim, err := resolveModel(config.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	maxLength := config.MaxLength
	if maxLength == 0 {
		maxLength = 512
	}

	// No progress bar; output goes to the structured log instead
	showProgress := false

	model, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                fastembed.EmbeddingModel(name),
		CacheDir:             config.CacheDir,
		MaxLength:            maxLength,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fastembed: %w", err)
	}

	return &Embedder{
		model:     model,
		modelName: name,
		dimension: dim,
		logger:    slog.Default().With("component", "fastembed-embedder", "model", name),
	}, nil
}

// EmbedText embeds a single text as a passage. Documents and search queries
// share this path so both land in the same vector space.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds texts as passages, preserving input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	e.mu.RLock()
	defer e.mu.RUnlock()

	vectors, err := e.model.PassageEmbed(texts, passageBatchSize)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, fmt.Errorf("fastembed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("fastembed: got %d embeddings for %d texts: %w", len(vectors), len(texts), ai.ErrEmptyEmbedding)
	}
	return vectors, nil
}

// Dimension returns the embedding size of the loaded model.
func (e *Embedder) Dimension() int {
	return e.dimension
}

func (e *Embedder) close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model == nil {
		return nil
	}
	err := e.model.Destroy()
	e.model = nil
	return err
}
