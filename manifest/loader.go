package manifest

import (
	"context"
	"fmt"
	"os"
)

// FileLoader reads a resource from a local file. It implements asset.Loader.
type FileLoader string

func (p FileLoader) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(string(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read resource: %w", err)
	}
	return data, nil
}

// Path returns the file the loader reads.
func (p FileLoader) Path() string { return string(p) }
