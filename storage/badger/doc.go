// Package badger persists crawl checkpoints in an embedded BadgerDB.
//
// Each checkpoint is stored under "<source>:chkpt" and encoded with mus-go.
// CursorStore adapts the checkpoint repository to storage.CursorStore so a
// crawl can keep its cursor in BadgerDB instead of a JSON file.
package badger
