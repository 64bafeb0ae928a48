package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Parse tokenizes an uploaded CSV into its header row and raw data rows.
// Rows shorter than the header map the missing cells to ""; longer rows
// keep their extra cells under their own header names. Blank lines are
// skipped by the tokenizer. A file with no header row at all yields empty
// headers, which the validator then reports as missing columns.
func Parse(r io.Reader, maxRows int) ([]string, []RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []RawRow
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}

		if maxRows > 0 && len(rows) >= maxRows {
			return nil, nil, fmt.Errorf("too many rows: limit is %d", maxRows)
		}

		row := make(RawRow, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
