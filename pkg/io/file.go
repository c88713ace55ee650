package io

import (
	"os"
	"path/filepath"

	serrors "github.com/sestools/sescribe/pkg/errors"
)

// ReadInput reads the whole input document from path.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "input file %s", path)
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeIO, err, "read %s", path)
	}
	return data, nil
}

// WriteText persists text to path as UTF-8, creating parent directories
// and truncating any existing file. Callers invoke this only after the
// full output has been computed, so a failed run never leaves partial
// output behind.
func WriteText(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
