package models

import (
	"fmt"
	"time"
)

// FileError records a file that could not be fully processed. Row-level skips
// do not appear here; they are only logged and counted.
type FileError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestReport is the explicit result value threaded through the batch
// orchestrator. Counters are never global state.
type IngestReport struct {
	BatchID       string      `json:"batch_id"`
	Persons       int         `json:"persons"`
	Authors       int         `json:"authors"`
	Books         int         `json:"books"`
	Clubs         int         `json:"clubs"`
	Relationships int         `json:"relationships"`
	Unresolved    int         `json:"unresolved"`
	SkippedFiles  int         `json:"skipped_files"`
	SkippedRows   int         `json:"skipped_rows"`
	FileErrors    []FileError `json:"file_errors,omitempty"`
	StartedAt     time.Time   `json:"started_at"`
	FinishedAt    time.Time   `json:"finished_at"`
}

// CountNode increments the per-kind creation counter.
func (r *IngestReport) CountNode(kind EntityKind) {
	switch kind {
	case KindPerson:
		r.Persons++
	case KindAuthor:
		r.Authors++
	case KindBook:
		r.Books++
	case KindClub:
		r.Clubs++
	}
}

// NodeCount returns the creation counter for a kind.
func (r *IngestReport) NodeCount(kind EntityKind) int {
	switch kind {
	case KindPerson:
		return r.Persons
	case KindAuthor:
		return r.Authors
	case KindBook:
		return r.Books
	case KindClub:
		return r.Clubs
	}
	return 0
}

// Summary renders the human-readable batch outcome. Skips are not broken out
// here; only totals per type are surfaced, detail lives in the log stream.
func (r *IngestReport) Summary() string {
	return fmt.Sprintf(
		"OK. Persona=%d, Autor=%d, Libro=%d, Club=%d, Relaciones=%d",
		r.Persons, r.Authors, r.Books, r.Clubs, r.Relationships,
	)
}
