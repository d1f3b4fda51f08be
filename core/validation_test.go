package core

import (
	"errors"
	"testing"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *Record
		wantErr error
	}{
		{
			name: "valid record",
			record: &Record{
				ID:        "t3_abc",
				Text:      "Hello world",
				Embedding: []float32{0.1, 0.2},
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty text",
			record: &Record{
				ID:        "t3_abc",
				Embedding: []float32{0.1},
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
		{
			name: "missing id",
			record: &Record{
				Text:      "Hello",
				Embedding: []float32{0.1},
			},
			wantErr: ErrMissingIdentifier,
		},
		{
			name: "missing embedding",
			record: &Record{
				ID:   "t3_abc",
				Text: "Hello",
			},
			wantErr: ErrEmptyEmbedding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ValidateRecord() error = %v, want wrapped ErrInvalidRecord", err)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	valid := func() *Batch {
		return &Batch{
			IDs:        []string{"a", "b"},
			Documents:  []string{"doc a", "doc b"},
			Metadatas:  []map[string]any{{}, {}},
			Embeddings: [][]float32{{1}, {2}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(b *Batch) *Batch
		wantErr error
	}{
		{
			name:    "aligned batch",
			mutate:  func(b *Batch) *Batch { return b },
			wantErr: nil,
		},
		{
			name:    "empty batch",
			mutate:  func(b *Batch) *Batch { return &Batch{} },
			wantErr: nil,
		},
		{
			name:    "nil batch",
			mutate:  func(b *Batch) *Batch { return nil },
			wantErr: ErrInvalidBatch,
		},
		{
			name: "short documents",
			mutate: func(b *Batch) *Batch {
				b.Documents = b.Documents[:1]
				return b
			},
			wantErr: ErrMisalignedBatch,
		},
		{
			name: "short embeddings",
			mutate: func(b *Batch) *Batch {
				b.Embeddings = b.Embeddings[:1]
				return b
			},
			wantErr: ErrMisalignedBatch,
		},
		{
			name: "blank id",
			mutate: func(b *Batch) *Batch {
				b.IDs[1] = ""
				return b
			},
			wantErr: ErrMissingIdentifier,
		},
		{
			name: "empty embedding",
			mutate: func(b *Batch) *Batch {
				b.Embeddings[0] = nil
				return b
			},
			wantErr: ErrEmptyEmbedding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(tt.mutate(valid()))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBatch() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBatch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
