// Package store persists a single JSON document on disk.
//
// Loading never fails the caller: a missing file, a file that is not JSON, or
// a document with the wrong layout all come back as the empty value for the
// shape. List items are returned as stored, callers check them one by one.
// Saving rewrites the whole file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"portfolio-generator/internal/model"
)

type Store struct {
	path  string
	shape model.Shape
	log   *slog.Logger
}

func New(path string, shape model.Shape, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, shape: shape, log: logger.With("document", path)}
}

func (s *Store) empty() interface{} {
	if s.shape == model.ShapeList {
		return []interface{}{}
	}
	return map[string]interface{}{}
}

// Load reads and decodes the document, substituting the empty value when it
// is absent or unusable.
func (s *Store) Load() interface{} {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("unable to read document, using empty default", "error", err)
		}
		return s.empty()
	}

	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		s.log.Warn("malformed document, using empty default", "error", err)
		return s.empty()
	}
	if err := model.ValidateDocument(s.shape, doc); err != nil {
		s.log.Warn("unexpected document layout, using empty default", "error", err)
		return s.empty()
	}
	return doc
}

// LoadObject is Load for object-shaped documents.
func (s *Store) LoadObject() map[string]interface{} {
	if m, ok := s.Load().(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// LoadItems is Load for list-shaped documents, items untouched.
func (s *Store) LoadItems() []interface{} {
	if raw, ok := s.Load().([]interface{}); ok {
		return raw
	}
	return []interface{}{}
}

// Save overwrites the document with doc, indented for humans.
func (s *Store) Save(doc interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		s.log.Error("unable to encode document", "error", err)
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("unable to create document directory", "error", err)
			return fmt.Errorf("create dir for %s: %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		s.log.Error("unable to write document", "error", err)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
