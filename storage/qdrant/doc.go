// Package qdrant stores embedded records in a Qdrant collection over gRPC.
//
// Points are keyed by core.PointID(record id); the record id, the document
// text and the typed metadata travel in the payload. The collection uses
// cosine distance and is created on first upsert with the batch's vector
// size.
package qdrant
