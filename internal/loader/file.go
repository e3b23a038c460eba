package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func loadFile(ctx context.Context, path string, maxBytes int64) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	// Read one byte past the limit so oversize files are detected by Load.
	return io.ReadAll(io.LimitReader(file, maxBytes+1))
}
