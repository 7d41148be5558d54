// Package output writes normalized tables back over their source files.
// By default the file is truncated and rewritten in place. In atomic mode
// the data goes to a sibling temp file that is then renamed over the target.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/reviewprep/core"
	"github.com/spf13/afero"
)

const filePerm = 0644

// Writer writes rendered output to an afero filesystem.
type Writer struct {
	fs     afero.Fs
	atomic bool
}

// New creates a Writer on fs.
func New(fs afero.Fs, atomic bool) *Writer {
	return &Writer{fs: fs, atomic: atomic}
}

// Write replaces the contents of path with data. Failures are WriteErrors.
func (w *Writer) Write(path string, data []byte) error {
	var err error
	if w.atomic {
		err = w.writeAtomic(path, data)
	} else {
		err = afero.WriteFile(w.fs, path, data, filePerm)
	}
	if err != nil {
		return &core.Error{Kind: core.KindWrite, Path: path, Err: err}
	}
	return nil
}

// writeAtomic keeps the original file intact until the rename.
func (w *Writer) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	// Keep the original file's mode when it has one.
	if info, err := w.fs.Stat(path); err == nil {
		_ = w.fs.Chmod(tmpName, info.Mode().Perm())
	} else if !os.IsNotExist(err) {
		w.fs.Remove(tmpName)
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		w.fs.Remove(tmpName)
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}
