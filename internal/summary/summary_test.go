package summary

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestStructuredData_Qualified(t *testing.T) {
	cases := []struct {
		data StructuredData
		want bool
	}{
		{StructuredData{}, false},
		{StructuredData{"qualified": false}, false},
		{StructuredData{"qualified": true}, true},
		{StructuredData{"qualified": "true"}, true},
		{StructuredData{"qualified": "TRUE"}, true},
		{StructuredData{"qualified": "no"}, false},
		{StructuredData{"qualified": 1}, false},
		{nil, false},
	}
	for _, c := range cases {
		if got := c.data.Qualified(); got != c.want {
			t.Fatalf("Qualified(%v) = %v, want %v", c.data, got, c.want)
		}
	}
}

func TestStructuredData_AcceptsBothKeyStyles(t *testing.T) {
	snake := StructuredData{"candidate_name": "Jane", "interview_time": "Friday at 2 PM"}
	camel := StructuredData{"candidateName": "Jane", "interviewTime": "Friday at 2 PM"}

	for _, d := range []StructuredData{snake, camel} {
		if d.CandidateName() != "Jane" {
			t.Fatalf("expected candidate name, got %q", d.CandidateName())
		}
		if d.InterviewTimeRaw() != "Friday at 2 PM" {
			t.Fatalf("expected interview time, got %q", d.InterviewTimeRaw())
		}
	}
}

func TestStructuredData_AbsentFieldsAreEmpty(t *testing.T) {
	d := StructuredData{}
	if d.CandidateName() != "" || d.Role() != "" || d.Email() != "" || d.Timezone() != "" {
		t.Fatalf("expected empty accessors on empty data")
	}
}

func TestFileStore_AppendCreatesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call_summaries.json")
	s := NewFileStore(path)

	rec := Record{
		Number:    "+15550002",
		Timestamp: "2025-11-03 09:30:00",
		Summary:   "Candidate is a good fit.",
		StructuredData: StructuredData{
			"qualified":      true,
			"candidate_name": "Jane",
		},
	}
	if err := s.Append(context.Background(), rec); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(docs))
	}
	if docs[0]["number"] != "+15550002" || docs[0]["timestamp"] != "2025-11-03 09:30:00" {
		t.Fatalf("unexpected record: %v", docs[0])
	}
}

func TestFileStore_AppendRewritesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call_summaries.json")
	s := NewFileStore(path)

	for _, n := range []string{"+15550001", "+15550002", "+15550003"} {
		if err := s.Append(context.Background(), Record{Number: n, Timestamp: "ts"}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	records, err := s.Records()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Number != "+15550001" || records[2].Number != "+15550003" {
		t.Fatalf("append order not preserved: %+v", records)
	}
	if records[0].StructuredData == nil {
		t.Fatalf("expected empty structured data to be stored as an object")
	}
}

func TestFileStore_CorruptDocumentStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call_summaries.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s := NewFileStore(path)
	if err := s.Append(context.Background(), Record{Number: "+15550001", Timestamp: "ts"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	records, err := s.Records()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected fresh document with 1 record, got %d", len(records))
	}
}
