//go:build !cgo

package fastembed

import (
	"testing"

	"github.com/poiesic/harvest/ai"
	"github.com/stretchr/testify/assert"
)

func TestNewProvider_Unavailable(t *testing.T) {
	cfg := ai.NewConfig(ai.WithProvider(ai.ProviderFastEmbed), ai.WithEmbeddingModel("BAAI/bge-small-en-v1.5"))

	_, err := NewProvider(cfg)
	assert.ErrorIs(t, err, ai.ErrFastEmbedUnavailable)
}
