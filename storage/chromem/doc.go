// Package chromem stores embedded records in a chromem-go database.
//
// chromem-go is an embeddable, pure Go vector database that persists each
// collection to a directory. Metadata values are stored as strings and
// converted back to typed core.Metadata on query. Embeddings are always
// supplied by the caller; the store never computes them.
package chromem
