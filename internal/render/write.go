package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
)

// writeTo creates path (and its directory) and streams body into it.
func writeTo(fsys fsutil.FileSystem, path string, body func(io.Writer) (int64, error)) (err error) {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if _, err := body(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// errOnly adapts writers that only report errors to writeTo.
func errOnly(fn func(io.Writer) error) func(io.Writer) (int64, error) {
	return func(w io.Writer) (int64, error) {
		return 0, fn(w)
	}
}
