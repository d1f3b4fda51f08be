// Package mock provides test double implementations of the ai interfaces.
//
// # Usage in Tests
//
//	// Deterministic vectors
//	provider := mock.NewMockProvider()
//	vec, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder().
//	    WithEmbedTextFunc(func(ctx context.Context, text string) ([]float32, error) {
//	        return nil, errors.New("model offline")
//	    })
//
//	count := embedder.CallCount()
//
// The default MockEmbedder returns a unit vector derived from an FNV hash of
// the text, so equal texts always map to equal vectors.
package mock
