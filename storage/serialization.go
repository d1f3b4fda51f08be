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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/harvest/core"
)

// Checkpoint wire layout: Source (string), Cursor (string), UpdatedAt
// (varint unix microseconds, 0 for the zero time).

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	cursor := checkpoint.Cursor.String()
	updated := unixMicro(checkpoint.UpdatedAt)

	size := ord.String.Size(checkpoint.Source) +
		ord.String.Size(cursor) +
		varint.Int64.Size(updated)
	buf := make([]byte, size)

	n := ord.String.Marshal(checkpoint.Source, buf)
	n += ord.String.Marshal(cursor, buf[n:])
	varint.Int64.Marshal(updated, buf[n:])
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	source, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", ErrSerializationFailed, err)
	}
	cursor, n1, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: cursor: %w", ErrSerializationFailed, err)
	}
	n += n1
	updated, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: updated_at: %w", ErrSerializationFailed, err)
	}

	checkpoint := &core.Checkpoint{
		Source: source,
		Cursor: core.Cursor(cursor),
	}
	if updated != 0 {
		checkpoint.UpdatedAt = time.UnixMicro(updated).UTC()
	}
	return checkpoint, nil
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}
