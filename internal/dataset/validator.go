package dataset

import (
	"math"
	"strconv"

	"github.com/statboard/statboard/internal/schema"
)

// Validate checks the uploaded header set and rows against the required
// schema and coerces the rows into typed records. The header check runs
// before any row is inspected; the row scan stops at the first offending
// row. A dataset is accepted or rejected as a whole.
func Validate(headers []string, rows []RawRow, cfg schema.Config) ([]Record, error) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, h := range requiredHeaders {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := coerce(row, cfg)
		if !ok {
			return nil, &RowTypeError{}
		}
		records = append(records, rec)
	}

	return records, nil
}

// coerce turns one raw row into a typed record. Names are compared exactly
// as written: no trimming, no case folding.
func coerce(row RawRow, cfg schema.Config) (Record, bool) {
	name := row["name"]
	if name == "" {
		return Record{}, false
	}

	value, err := strconv.ParseFloat(row["value"], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Record{}, false
	}

	date, ok := cfg.ParseDate(row["date"])
	if !ok {
		return Record{}, false
	}

	return Record{Name: name, Date: date, Value: value}, true
}
