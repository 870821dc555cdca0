package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV builds a [Frame] from CSV data with a header row.
//
// A column becomes numeric when every one of its cells parses as a float;
// otherwise it is kept as text. Rows with a different field count than the
// header are rejected.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cells := make([][]string, len(header))
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		for i, s := range rec {
			cells[i] = append(cells[i], s)
		}
	}

	f := &Frame{Columns: make([]Column, len(header))}
	for i, name := range header {
		f.Columns[i] = inferColumn(strings.TrimSpace(name), cells[i])
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// inferColumn returns a numeric column when all values parse, else text.
// An empty column is numeric.
func inferColumn(name string, values []string) Column {
	numbers := make([]float64, len(values))
	for i, s := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			strs := make([]string, len(values))
			copy(strs, values)
			return Column{Name: name, Kind: KindText, Strings: strs}
		}
		numbers[i] = v
	}
	return Column{Name: name, Kind: KindNumber, Numbers: numbers}
}
