package dataset

import (
	"fmt"
	"strings"
	"time"
)

// requiredHeaders lists the columns every upload must declare, in the order
// missing ones are reported.
var requiredHeaders = []string{"name", "date", "value"}

// RawRow is one unvalidated data row, mapping header name to cell value
// exactly as tokenized. Columns outside the required set ride along and are
// ignored downstream.
type RawRow map[string]string

// Record is one validated data row. Records are produced only by the
// validator's coercion step and never mutated afterwards.
type Record struct {
	Name  string
	Date  time.Time
	Value float64
}

// Metrics are descriptive statistics over a set of values. Average is
// rounded to two decimal places; Min and Max are the raw extremes.
type Metrics struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// GroupMetrics are the per-name statistics for one group.
type GroupMetrics struct {
	Name string `json:"name"`
	Metrics
}

// Summary is the full statistical output for one accepted dataset. Groups
// are ordered by first appearance in the file.
type Summary struct {
	Overall Metrics        `json:"overall"`
	Groups  []GroupMetrics `json:"groups"`
}

// Result is the outcome of processing one upload. It carries either a
// summary or an error message, never both; an accepted dataset with zero
// rows carries neither. Each new upload replaces the previous Result
// wholesale.
type Result struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Rows      int       `json:"rows"`
	Summary   *Summary  `json:"summary,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// OK reports whether the upload produced a usable dataset.
func (r *Result) OK() bool {
	return r.Error == ""
}

// HeaderError reports required columns absent from the uploaded file.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// RowTypeError reports that at least one row failed type checks. The
// message is intentionally generic: any bad row rejects the whole dataset,
// so there is no partially accepted state to describe.
type RowTypeError struct{}

func (e *RowTypeError) Error() string {
	return "invalid data: each row needs a non-empty name, a numeric value and a valid date"
}
