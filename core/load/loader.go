// Package load implements the Loader interface.
// It reads a comma-delimited UTF-8 file with a header row into a core.Table.
package load

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"github.com/gaurav-prasanna/reviewprep/core"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
)

// CSVLoader loads CSV files from an afero filesystem.
type CSVLoader struct {
	fs afero.Fs
}

// New creates a CSVLoader reading from fs.
func New(fs afero.Fs) *CSVLoader {
	return &CSVLoader{fs: fs}
}

// Load reads the whole file at path. Every failure is a LoadError.
func (l *CSVLoader) Load(ctx context.Context, path string) (*core.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, loadError(fmt.Errorf("reading file: %w", err))
	}
	if !utf8.Valid(raw) {
		return nil, loadError(fmt.Errorf("%s is not valid UTF-8", path))
	}

	// A leading BOM would otherwise stick to the first header name.
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, loadError(fmt.Errorf("decoding %s: %w", path, err))
	}

	table, err := parse(text)
	if err != nil {
		return nil, loadError(fmt.Errorf("parsing %s: %w", path, err))
	}
	return table, nil
}

// parse splits text into header and rows. The header fixes the row width.
func parse(text []byte) (*core.Table, error) {
	r := csv.NewReader(bytes.NewReader(text))
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyFile
	}

	header := records[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}

	return &core.Table{Header: header, Rows: records[1:]}, nil
}

func loadError(err error) error {
	return &core.Error{Kind: core.KindLoad, Err: err}
}
