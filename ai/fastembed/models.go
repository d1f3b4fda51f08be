package fastembed

import (
	"fmt"

	"github.com/poiesic/harvest/ai"
)

// aliases maps the Hugging Face model names to the names fastembed-go uses.
var aliases = map[string]string{
	"BAAI/bge-small-en-v1.5":                 "fast-bge-small-en-v1.5",
	"BAAI/bge-small-en":                      "fast-bge-small-en",
	"BAAI/bge-base-en-v1.5":                  "fast-bge-base-en-v1.5",
	"BAAI/bge-base-en":                       "fast-bge-base-en",
	"BAAI/bge-small-zh-v1.5":                 "fast-bge-small-zh-v1.5",
	"sentence-transformers/all-MiniLM-L6-v2": "fast-all-MiniLM-L6-v2",
}

// dimensions holds the output size of each supported model.
var dimensions = map[string]int{
	"fast-bge-small-en-v1.5": 384,
	"fast-bge-small-en":      384,
	"fast-bge-base-en-v1.5":  768,
	"fast-bge-base-en":       768,
	"fast-bge-small-zh-v1.5": 512,
	"fast-all-MiniLM-L6-v2":  384,
}

// resolveModel returns the fastembed model name and its dimension.
func resolveModel(name string) (string, int, error) {
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	dim, ok := dimensions[name]
	if !ok {
		return "", 0, fmt.Errorf("fastembed: %w: %q", ai.ErrUnsupportedModel, name)
	}
	return name, dim, nil
}

// Dimension returns the embedding size for a model name, or 0 if unknown.
func Dimension(model string) int {
	_, dim, err := resolveModel(model)
	if err != nil {
		return 0
	}
	return dim
}
