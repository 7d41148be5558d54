// Package core defines the pipeline interfaces for reviewprep.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// Stats describes what a normalization pass did to one table.
type Stats struct {
	RowsIn            int
	RowsOut           int
	NonCanonicalBools int // boolean cells that were neither true nor false
}

// Dropped returns the number of rows removed by the filter.
func (s Stats) Dropped() int {
	return s.RowsIn - s.RowsOut
}

// Loader reads a delimited file into a Table.
type Loader interface {
	Load(ctx context.Context, path string) (*Table, error)
}

// Normalizer coerces the review columns and filters rows.
type Normalizer interface {
	Normalize(t *Table) (*Table, Stats, error)
}

// Renderer serializes a Table into its on-disk representation.
type Renderer interface {
	Render(t *Table) ([]byte, error)
}

// Writer persists rendered bytes to a path, replacing what was there.
type Writer interface {
	Write(path string, data []byte) error
}
