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


package core

import "fmt"

// ValidateRecord validates a Record before it is handed to storage.
//
// Validation rules:
//   - ID must not be empty
//   - Embedding must not be empty
//
// NOT validated:
//   - Text (an item with an empty title and body is still stored)
//   - Metadata (always fully populated by Normalize)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingIdentifier)
	}

	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRecord, record.ID, ErrEmptyEmbedding)
	}

	return nil
}

// ValidateBatch checks that the four sequences of a batch are aligned and
// that every entry has an identifier and an embedding.
func ValidateBatch(batch *Batch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch is nil", ErrInvalidBatch)
	}

	n := len(batch.IDs)
	if len(batch.Documents) != n || len(batch.Metadatas) != n || len(batch.Embeddings) != n {
		return fmt.Errorf("%w: %w: ids=%d documents=%d metadatas=%d embeddings=%d",
			ErrInvalidBatch, ErrMisalignedBatch,
			n, len(batch.Documents), len(batch.Metadatas), len(batch.Embeddings))
	}

	for i := range batch.IDs {
		if batch.IDs[i] == "" {
			return fmt.Errorf("%w: index %d: %w", ErrInvalidBatch, i, ErrMissingIdentifier)
		}
		if len(batch.Embeddings[i]) == 0 {
			return fmt.Errorf("%w: index %d: %w", ErrInvalidBatch, i, ErrEmptyEmbedding)
		}
	}

	return nil
}
