package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var csvHeader = []string{"Number", "Status", "Timestamp"}

// FileStore keeps the ledger in a CSV file with a header row, one entry per
// line. The file is owned exclusively by the orchestrator process; a second
// writer is unsupported.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (map[string]struct{}, error) {
	out := map[string]struct{}{}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		// First run, nothing attempted yet.
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ledger: read %s: %w", s.path, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		out[row[0]] = struct{}{}
	}
	return out, nil
}

func (s *FileStore) Record(ctx context.Context, e Entry) error {
	if e.Number == "" {
		return errors.New("ledger: number is required")
	}

	_, statErr := os.Stat(s.path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: open %s for append: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("ledger: write header: %w", err)
		}
	}
	row := []string{e.Number, string(e.Status), e.Timestamp.Format(TimestampLayout)}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("ledger: write entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("ledger: flush: %w", err)
	}
	return nil
}
