package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// PointID derives a deterministic 64-bit identifier from a record ID using
// BLAKE2b hashing. Stores that only accept numeric keys use it so that the
// same record ID always lands on the same point.
func PointID(id string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(id))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Cursor is an opaque pagination token returned by the content API.
// The zero value means "no cursor" and is persisted as JSON null.
type Cursor string

// IsZero reports whether the cursor is empty.
func (c Cursor) IsZero() bool {
	return c == ""
}

// String returns the raw token.
func (c Cursor) String() string {
	return string(c)
}

// RawItem is the typed view of a single listing child as returned by the
// content API. Only the fields consumed by the normalizer are decoded;
// JSON null and missing fields both decode to the zero value.
type RawItem struct {
	Name        string  `json:"name"` // fullname, e.g. "t3_abc123"
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Ups         int64   `json:"ups"`
	NumComments int64   `json:"num_comments"`
	Flair       string  `json:"link_flair_text"`
}

// Page is one page of items plus the cursor that fetches the next one.
type Page struct {
	Items []RawItem
	Next  Cursor
}

// Metadata keys as written to the vector store.
const (
	MetaTitle       = "title"
	MetaSubreddit   = "subreddit"
	MetaAuthor      = "author"
	MetaTimestamp   = "timestamp"
	MetaUpvotes     = "upvotes"
	MetaNumComments = "num_comments"
	MetaFlair       = "flair"
)

// Metadata is the structured metadata stored alongside each record.
// Every field always has a value; missing source fields become zero values.
type Metadata struct {
	Title       string
	Subreddit   string
	Author      string
	Timestamp   float64 // created time, seconds since epoch
	Upvotes     int64
	NumComments int64
	Flair       string
}

// Map returns the metadata as a flat map with every key present.
func (m Metadata) Map() map[string]any {
	return map[string]any{
		MetaTitle:       m.Title,
		MetaSubreddit:   m.Subreddit,
		MetaAuthor:      m.Author,
		MetaTimestamp:   m.Timestamp,
		MetaUpvotes:     m.Upvotes,
		MetaNumComments: m.NumComments,
		MetaFlair:       m.Flair,
	}
}

// Record is a normalized item ready for storage.
type Record struct {
	ID        string
	Text      string
	Metadata  Metadata
	Embedding []float32 // populated by the embedder
}

// Batch holds the four aligned sequences sent to the vector store in a
// single upsert call. Index i of every slice describes the same record.
type Batch struct {
	IDs        []string
	Documents  []string
	Metadatas  []map[string]any
	Embeddings [][]float32
}

// NewBatch builds a batch from records, preserving their order.
func NewBatch(records []*Record) *Batch {
	b := &Batch{
		IDs:        make([]string, len(records)),
		Documents:  make([]string, len(records)),
		Metadatas:  make([]map[string]any, len(records)),
		Embeddings: make([][]float32, len(records)),
	}
	for i, r := range records {
		b.IDs[i] = r.ID
		b.Documents[i] = r.Text
		b.Metadatas[i] = r.Metadata.Map()
		b.Embeddings[i] = r.Embedding
	}
	return b
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.IDs)
}

// Checkpoint is the persisted resumption state for a crawl source.
type Checkpoint struct {
	Source    string
	Cursor    Cursor
	UpdatedAt time.Time
}

// Hit is a single search result.
type Hit struct {
	ID       string
	Text     string
	Metadata Metadata
	Score    float32
}
