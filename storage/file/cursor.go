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


package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const (
	// DefaultPath is the cursor file used when none is configured.
	DefaultPath = "secret.json"

	// cursorKey is the top-level key holding the cursor.
	cursorKey = "nextPost"
)

// CursorStore keeps the cursor under "nextPost" in a JSON object file.
// Every other key in the file is preserved on save.
type CursorStore struct {
	path   string
	logger *slog.Logger
}

var _ storage.CursorStore = (*CursorStore)(nil)

// Option configures a CursorStore.
type Option func(*CursorStore)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *CursorStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCursorStore creates a store backed by the file at path.
// An empty path selects DefaultPath. The file need not exist.
func NewCursorStore(path string, opts ...Option) *CursorStore {
	if path == "" {
		path = DefaultPath
	}
	s := &CursorStore{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "file-cursor", "path", path)
	return s
}

// Path returns the backing file path.
func (s *CursorStore) Path() string {
	return s.path
}

// Load returns the stored cursor. A missing file, invalid JSON, a non-object
// document or a non-string "nextPost" all yield the empty cursor.
func (s *CursorStore) Load(_ context.Context) core.Cursor {
	doc, ok := s.readObject()
	if !ok {
		return ""
	}
	value := gjson.GetBytes(doc, cursorKey)
	if value.Type != gjson.String {
		return ""
	}
	return core.Cursor(value.Str)
}

// Save writes the cursor, or null for the empty cursor, into the file.
// Other top-level keys and their values are kept as they were.
func (s *CursorStore) Save(ctx context.Context, cursor core.Cursor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, ok := s.readObject()
	if !ok {
		doc = []byte("{}")
	}

	var err error
	if cursor.IsZero() {
		doc, err = sjson.SetRawBytes(doc, cursorKey, []byte("null"))
	} else {
		doc, err = sjson.SetBytes(doc, cursorKey, cursor.String())
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", cursorKey, err)
	}

	out := pretty.Pretty(doc)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}

	if err := writeFile(s.path, out); err != nil {
		return err
	}
	s.logger.Debug("saved cursor", "cursor", cursor.String())
	return nil
}

// readObject returns the file contents when they form a JSON object.
func (s *CursorStore) readObject() ([]byte, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("cannot read cursor file", "err", err)
		}
		return nil, false
	}
	if !gjson.ValidBytes(data) {
		s.logger.Debug("cursor file is not valid JSON")
		return nil, false
	}
	if !gjson.ParseBytes(data).IsObject() {
		s.logger.Debug("cursor file is not a JSON object")
		return nil, false
	}
	return data, true
}

// writeFile replaces path with data through a temporary file in the same
// directory so a crash never leaves a torn cursor file behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp cursor file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cursor file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cursor file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod cursor file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cursor file: %w", err)
	}
	return nil
}
