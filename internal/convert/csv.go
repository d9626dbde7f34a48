package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVConverter renders tabular data as corpus markdown: the rows are grouped
// into batches, each under its own heading, with one "header: cell" line per
// row so the text stays retrievable.
type CSVConverter struct{}

const csvBatchSize = 20

func (c *CSVConverter) Convert(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return "", nil
	}

	headers := records[0]
	dataRows := records[1:]

	var out emitter
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		// 1-indexed source rows, accounting for the header row.
		out.heading(1, fmt.Sprintf("Satır %d-%d", i+2, end+1))

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			cells := make([]string, 0, len(row))
			for j, cell := range row {
				if j < len(headers) {
					cells = append(cells, headers[j]+": "+cell)
				} else {
					cells = append(cells, cell)
				}
			}
			text.WriteString(strings.Join(cells, ", "))
			text.WriteString("\n")
		}
		out.paragraph(text.String())
	}
	return out.String(), nil
}
