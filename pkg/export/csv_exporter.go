package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines tabular export content. Rows are keyed by header so
// callers can build them in any order.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// utf8BOM is prepended so Excel decodes the Arabic columns correctly
// when a CSV is opened directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter renders a Dataset into UTF-8 CSV bytes.
type CSVExporter struct {
	withBOM bool
}

// NewCSVExporter builds a CSV exporter that emits a UTF-8 BOM.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{withBOM: true}
}

// Render encodes the dataset. Cells missing from a row render empty.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}

	buf := &bytes.Buffer{}
	if e.withBOM {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	record := make([]string, len(data.Headers))
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
