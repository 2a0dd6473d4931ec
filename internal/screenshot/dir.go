package screenshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirSource serves screenshots from a local directory. Keys are slash paths
// relative to the root.
type DirSource struct {
	root string
}

func NewDirSource(root string) (*DirSource, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("screenshot directory is required")
	}
	return &DirSource{root: filepath.Clean(root)}, nil
}

// Root returns the directory the source reads from.
func (d *DirSource) Root() string {
	return d.root
}

func (d *DirSource) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(cleaned)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("screenshot %q: %w", cleaned, ErrScreenshotNotFound)
		}
		return nil, "", fmt.Errorf("read screenshot %q: %w", cleaned, err)
	}
	return data, MediaTypeForKey(cleaned), nil
}

func (d *DirSource) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("stat screenshot directory %q: %w", d.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("screenshot path %q is not a directory", d.root)
	}
	return nil
}
