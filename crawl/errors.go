package crawl

import "errors"

var (
	// ErrSourceRequired is returned when a paginator is not provided.
	ErrSourceRequired = errors.New("page source required")

	// ErrCursorStoreRequired is returned when a cursor store is not provided.
	ErrCursorStoreRequired = errors.New("cursor store required")

	// ErrUpserterRequired is returned when a batch upserter is not provided.
	ErrUpserterRequired = errors.New("batch upserter required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")
)
