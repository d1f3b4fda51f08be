// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/harvest/crawl"
	"github.com/poiesic/harvest/reddit"
	"github.com/poiesic/harvest/storage/badger"
	"github.com/poiesic/harvest/storage/chromem"
	"github.com/poiesic/harvest/storage/file"
	"github.com/poiesic/harvest/storage/qdrant"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// Cursor store backends.
const (
	CursorFile   = "file"
	CursorBadger = "badger"
)

// Vector store backends.
const (
	VectorChromem = "chromem"
	VectorQdrant  = "qdrant"
)

// Config is the complete harvest configuration.
type Config struct {
	Reddit      RedditConfig      `koanf:"reddit"`
	Throttle    ThrottleConfig    `koanf:"throttle"`
	Crawl       CrawlConfig       `koanf:"crawl"`
	Cursor      CursorConfig      `koanf:"cursor"`
	VectorStore VectorStoreConfig `koanf:"vector_store"`
	AI          AIConfig          `koanf:"ai"`
}

// RedditConfig configures the listing client.
type RedditConfig struct {
	Endpoint  string        `koanf:"endpoint"`
	UserAgent string        `koanf:"user_agent"`
	Limit     int           `koanf:"limit"`
	Timeout   time.Duration `koanf:"timeout"` // zero means no timeout
}

// ThrottleConfig configures the fixed pauses between requests and pages.
type ThrottleConfig struct {
	RequestLimit int           `koanf:"request_limit"`
	Cooldown     time.Duration `koanf:"cooldown"`
	PageDelay    time.Duration `koanf:"page_delay"`
}

// CrawlConfig configures the crawl loop.
type CrawlConfig struct {
	PoolSize         int  `koanf:"pool_size"` // zero means runtime.NumCPU()
	Progress         bool `koanf:"progress"`
	ProgressInterval int  `koanf:"progress_interval"`
}

// CursorConfig selects where the resumption cursor lives.
// An empty path picks the backend's default: secret.json for file, state
// for badger.
type CursorConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
	Source  string `koanf:"source"` // checkpoint key for the badger backend
}

// VectorStoreConfig selects and configures the vector store.
type VectorStoreConfig struct {
	Backend    string        `koanf:"backend"`
	Collection string        `koanf:"collection"`
	Chromem    ChromemConfig `koanf:"chromem"`
	Qdrant     QdrantConfig  `koanf:"qdrant"`
}

// ChromemConfig configures the embedded store. An empty path keeps the
// collection in memory.
type ChromemConfig struct {
	Path     string `koanf:"path"`
	Compress bool   `koanf:"compress"`
}

// QdrantConfig configures the qdrant gRPC connection.
type QdrantConfig struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	UseTLS bool   `koanf:"use_tls"`
	APIKey string `koanf:"api_key"`
}

// AIConfig configures the embedding provider.
type AIConfig struct {
	Provider  string `koanf:"provider"`
	Host      string `koanf:"host"`
	Model     string `koanf:"model"`
	CacheDir  string `koanf:"cache_dir"`
	MaxLength int    `koanf:"max_length"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := defaults()
	cfg.normalize()
	return cfg
}

// defaults leaves the cursor path empty so the backend picks it.
func defaults() *Config {
	return &Config{
		Reddit: RedditConfig{
			Endpoint:  reddit.DefaultEndpoint,
			UserAgent: reddit.DefaultUserAgent,
			Limit:     reddit.DefaultLimit,
		},
		Throttle: ThrottleConfig{
			RequestLimit: crawl.DefaultRequestLimit,
			Cooldown:     crawl.DefaultCooldown,
			PageDelay:    crawl.DefaultPageDelay,
		},
		Crawl: CrawlConfig{
			ProgressInterval: 100,
		},
		Cursor: CursorConfig{
			Backend: CursorFile,
			Source:  badger.DefaultSource,
		},
		VectorStore: VectorStoreConfig{
			Backend:    VectorChromem,
			Collection: chromem.DefaultCollection,
			Chromem: ChromemConfig{
				Path: chromem.DefaultPath,
			},
			Qdrant: QdrantConfig{
				Host: qdrant.DefaultHost,
				Port: qdrant.DefaultPort,
			},
		},
		AI: AIConfig{
			Provider:  "openai",
			Host:      "http://localhost:11434/v1",
			Model:     "embeddinggemma",
			CacheDir:  "local_cache",
			MaxLength: 512,
		},
	}
}

// Load reads the YAML file at path over the built-in defaults. An empty
// path returns the defaults. Keys absent from the file keep their default.
//
// Example:
//
//	cfg, err := config.Load("harvest.yaml")
//	if err != nil {
//	    return err
//	}
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), maxConfigFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(content)
}

// Parse decodes YAML content over the built-in defaults and validates it.
func Parse(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Cursor.Backend = strings.ToLower(strings.TrimSpace(c.Cursor.Backend))
	c.VectorStore.Backend = strings.ToLower(strings.TrimSpace(c.VectorStore.Backend))
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))

	if c.Cursor.Path == "" {
		switch c.Cursor.Backend {
		case CursorBadger:
			c.Cursor.Path = badger.DefaultPath
		case CursorFile:
			c.Cursor.Path = file.DefaultPath
		}
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Reddit.Endpoint == "" {
		return fmt.Errorf("%w: reddit.endpoint is empty", ErrInvalidValue)
	}
	if c.Reddit.Limit < 1 || c.Reddit.Limit > 100 {
		return fmt.Errorf("%w: reddit.limit must be between 1 and 100, got %d", ErrInvalidValue, c.Reddit.Limit)
	}
	if c.Reddit.Timeout < 0 {
		return fmt.Errorf("%w: reddit.timeout is negative", ErrInvalidValue)
	}
	if c.Throttle.RequestLimit < 1 {
		return fmt.Errorf("%w: throttle.request_limit must be positive", ErrInvalidValue)
	}
	if c.Throttle.Cooldown < 0 || c.Throttle.PageDelay < 0 {
		return fmt.Errorf("%w: throttle delays must not be negative", ErrInvalidValue)
	}
	if c.Crawl.PoolSize < 0 {
		return fmt.Errorf("%w: crawl.pool_size is negative", ErrInvalidValue)
	}

	switch c.Cursor.Backend {
	case CursorFile:
		if c.Cursor.Path == "" {
			return fmt.Errorf("%w: cursor.path is empty", ErrInvalidValue)
		}
	case CursorBadger:
		if c.Cursor.Path == "" || c.Cursor.Source == "" {
			return fmt.Errorf("%w: cursor.path and cursor.source are required for badger", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCursorBackend, c.Cursor.Backend)
	}

	switch c.VectorStore.Backend {
	case VectorChromem:
	case VectorQdrant:
		if c.VectorStore.Qdrant.Host == "" || c.VectorStore.Qdrant.Port <= 0 {
			return fmt.Errorf("%w: vector_store.qdrant host and port are required", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVectorBackend, c.VectorStore.Backend)
	}
	if c.VectorStore.Collection == "" {
		return fmt.Errorf("%w: vector_store.collection is empty", ErrInvalidValue)
	}

	return nil
}
