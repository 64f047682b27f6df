package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("csv has no header row")

var csvFloat = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// ParseCSV reads a CSV document whose first row names the fields.  Blank
// lines are skipped and cells are typed dynamically: numbers become
// float64, true/false become bool, empty cells become nil and everything
// else stays a string.  Short rows simply lack the trailing fields.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if isEmptyRow(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = typeCell(cell)
		}
		out = append(out, rec)
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func typeCell(cell string) any {
	switch cell {
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	case "":
		return nil
	}
	if csvFloat.MatchString(cell) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return f
		}
	}
	return cell
}
