package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FileStore keeps all records in a single JSON array document.
//
// Append is read-entire-file, append-in-memory, rewrite-entire-file. That is
// a known limitation carried over deliberately: the file stays a valid JSON
// document at every step, at the cost of being unsafe under concurrent
// writers. The orchestrator is the single writer.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, r Record) error {
	if r.Number == "" {
		return errors.New("summary: number is required")
	}
	if r.StructuredData == nil {
		r.StructuredData = StructuredData{}
	}

	records, err := s.readAll()
	if err != nil {
		return err
	}
	records = append(records, r)

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("summary: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("summary: write %s: %w", s.path, err)
	}
	return nil
}

// Records returns every stored record in append order.
func (s *FileStore) Records() ([]Record, error) {
	return s.readAll()
}

func (s *FileStore) readAll() ([]Record, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary: read %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		// A truncated or hand-edited file should not wedge the campaign;
		// start a fresh document like the original tooling did.
		return nil, nil
	}
	return records, nil
}
