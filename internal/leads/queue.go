// Package leads consumes the lead extractor's output file and turns it into
// an ordered queue of campaign targets, minus everything the ledger says was
// already attempted.
package leads

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"voice-campaign/internal/ledger"
)

// Target is one phone number considered for a call in a given cycle.
type Target struct {
	Number string

	// ContactEmail is the applicant's address when the extractor saw one.
	ContactEmail string

	// SourceLabel names where the number came from (e.g. the attachment
	// filename); informational only.
	SourceLabel string
}

// Queue reads the lead file and filters it against the ledger.
type Queue struct {
	path   string
	ledger ledger.Store
}

func NewQueue(path string, store ledger.Store) *Queue {
	return &Queue{path: path, ledger: store}
}

// Targets returns the targets still eligible for a call, in file order.
// A missing lead file means no work, not an error. Malformed rows are
// skipped silently; the extractor owns the file's hygiene.
func (q *Queue) Targets(ctx context.Context) ([]Target, error) {
	if q.ledger == nil {
		return nil, errors.New("leads: ledger not configured")
	}

	called, err := q.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(q.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leads: open %s: %w", q.path, err)
	}
	defer f.Close()

	return q.parse(f, called)
}

// parse reads the lead rows from src. Malformed rows are skipped; any other
// read error aborts, a faulty file would otherwise never reach EOF.
func (q *Queue) parse(src io.Reader, called map[string]struct{}) ([]Target, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leads: read header of %s: %w", q.path, err)
	}

	numberCol, emailCol, sourceCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Number":
			numberCol = i
		case "SenderEmail":
			emailCol = i
		case "SourceFile":
			sourceCol = i
		}
	}
	if numberCol < 0 {
		return nil, fmt.Errorf("leads: %s has no Number column", q.path)
	}

	var out []Target
	seen := map[string]struct{}{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			// One bad row should not sink the cycle.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("leads: read %s: %w", q.path, err)
		}
		if numberCol >= len(row) {
			continue
		}
		num := strings.TrimSpace(row[numberCol])
		if num == "" {
			continue
		}
		if _, ok := called[num]; ok {
			continue
		}
		if _, ok := seen[num]; ok {
			continue
		}
		seen[num] = struct{}{}

		t := Target{Number: num}
		if emailCol >= 0 && emailCol < len(row) {
			t.ContactEmail = strings.TrimSpace(row[emailCol])
		}
		if sourceCol >= 0 && sourceCol < len(row) {
			t.SourceLabel = strings.TrimSpace(row[sourceCol])
		}
		out = append(out, t)
	}
	return out, nil
}
