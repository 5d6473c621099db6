package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Sentinel errors for configuration reads. [ErrNotFound], [ErrPermission]
// and [ErrNotRegular] are always wrapped together with [ErrIO].
var (
	ErrIO         = errors.New("read config")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrNotRegular = errors.New("not a regular file")
)

// ReadFile reads the config file at path. The file is closed before
// ReadFile returns on every path.
func ReadFile(path string) (data []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(err)
	}

	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			data = nil
			err = fmt.Errorf("%w: %w", ErrIO, closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %w: %s", ErrIO, ErrNotRegular, path)
	}

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, classify(err)
	}

	return data, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w: %w", ErrIO, ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w: %w", ErrIO, ErrPermission, err)
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}
