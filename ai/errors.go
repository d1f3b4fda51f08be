package ai

import "errors"

var (
	// ErrEmptyEmbedding is returned when a model produces no vector for an input.
	ErrEmptyEmbedding = errors.New("embedder returned empty embedding")

	// ErrFastEmbedUnavailable is returned when the binary was built without cgo.
	ErrFastEmbedUnavailable = errors.New("fastembed: not available (binary built without cgo support, use the openai provider instead)")

	// ErrUnsupportedModel is returned for model names a provider cannot load.
	ErrUnsupportedModel = errors.New("unsupported embedding model")
)
