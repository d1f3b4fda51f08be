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

import "errors"

// Domain validation errors
var (
	// ErrMissingIdentifier indicates an item carries neither a name nor an id.
	ErrMissingIdentifier = errors.New("item has no identifier")

	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidBatch indicates a Batch failed validation.
	ErrInvalidBatch = errors.New("invalid batch")

	// ErrEmptyEmbedding indicates a record has no embedding vector.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrMisalignedBatch indicates the batch sequences differ in length.
	ErrMisalignedBatch = errors.New("batch sequences are not aligned")
)
