package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVToRecords reads header-keyed CSV rows into a slice of maps. All
// values stay strings: PIN codes and office phone numbers must not be
// coerced to integers or they lose leading zeros.
func CSVToRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // directory dumps have ragged rows

	// Read header row to get column names
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	for i, header := range headers {
		headers[i] = strings.TrimSpace(header)
	}

	var result []map[string]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}

		result = append(result, row)
	}

	return result, nil
}
