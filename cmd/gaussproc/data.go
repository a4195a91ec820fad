package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// readDataset reads a CSV file whose last column is the output. A first row
// that does not parse as numbers is treated as a header.
func readDataset(path string) ([][]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening dataset")
	}
	defer f.Close()
	return parseDataset(f)
}

func parseDataset(r io.Reader) ([][]float64, []float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading csv")
	}

	var inputs [][]float64
	var outputs []float64
	for i, record := range records {
		if len(record) < 2 {
			return nil, nil, errors.Newf("line %d: need at least one input column and an output column", i+1)
		}
		values, err := parseFloats(record)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, nil, errors.Wrapf(err, "line %d", i+1)
		}
		inputs = append(inputs, values[:len(values)-1])
		outputs = append(outputs, values[len(values)-1])
	}
	if len(inputs) == 0 {
		return nil, nil, errors.NewModelError("readDataset", "empty data", errors.ErrEmptyData)
	}
	return inputs, outputs, nil
}

// parseQueries parses "x1,x2;x1,x2" into rows.
func parseQueries(s string) ([][]float64, error) {
	var rows [][]float64
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		row, err := parseFloats(strings.Split(part, ","))
		if err != nil {
			return nil, errors.Wrapf(err, "query %q", part)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
