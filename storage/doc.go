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


// Package storage provides the storage abstraction layer for harvest.
//
// Two kinds of state outlive a crawl: the resumption cursor and the embedded
// records. Each sits behind an interface so the crawl loop never depends on a
// concrete backend.
//
//   - CursorStore: the single persisted pagination cursor
//   - CheckpointRepository: named checkpoints backing the badger CursorStore
//   - VectorStore: idempotent upsert-by-id plus nearest-neighbour query
//
// # Implementations
//
//   - storage/file: cursor in a JSON file, other keys in the file preserved
//   - storage/badger: cursor as a mus-encoded checkpoint in BadgerDB
//   - storage/chromem: embedded persistent vector store (default)
//   - storage/qdrant: remote Qdrant collection over gRPC
//
// # Constructor Return Type Pattern
//
// Public constructors return the concrete type; callers assign it to the
// interface they need. Test helpers open in-memory variants.
//
// # Thread Safety
//
// VectorStore implementations must be safe for concurrent use. CursorStore
// implementations are owned by one crawl loop and need not be.
package storage
