// Package config loads harvest settings from an optional YAML file layered
// over built-in defaults.
//
// Every default reproduces the classic behavior: crawl the r/crypto hot
// listing, keep the cursor in secret.json under "nextPost", embed with
// embeddinggemma through an OpenAI-compatible endpoint, and store posts in
// the "reddit_posts" chromem collection under ./data.
//
// Example harvest.yaml:
//
//	reddit:
//	  limit: 50
//	  timeout: 30s
//	throttle:
//	  page_delay: 1s
//	vector_store:
//	  backend: qdrant
//	  qdrant:
//	    host: qdrant.internal
//	ai:
//	  provider: fastembed
//	  model: BAAI/bge-small-en-v1.5
package config
