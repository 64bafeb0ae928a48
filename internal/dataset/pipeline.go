package dataset

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/statboard/statboard/internal/schema"
)

// ProcessUpload runs the parse → validate → aggregate pipeline over one
// uploaded file and produces a single Result. Tokenizer errors, header
// errors and row errors all surface the same way: a Result whose Error
// field carries the message and whose Summary is nil.
func ProcessUpload(fileName string, r io.Reader, cfg schema.Config) *Result {
	result := &Result{
		ID:        uuid.NewString(),
		FileName:  fileName,
		CreatedAt: time.Now().UTC(),
	}

	headers, rows, err := Parse(r, cfg.MaxRows)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	records, err := Validate(headers, rows, cfg)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Rows = len(records)
	result.Summary = Aggregate(records)
	return result
}
