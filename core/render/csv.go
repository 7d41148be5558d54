// Package render provides output renderers for the reviewprep pipeline.
// This file implements the CSV renderer used to write tables back to disk.
package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gaurav-prasanna/reviewprep/core"
)

// CSVRenderer writes a header row followed by every data row, comma
// separated, "\n" terminated, without a byte order mark or index column.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render serializes t. Cells are quoted only when they need to be.
func (r *CSVRenderer) Render(t *core.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(t.Header))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}
