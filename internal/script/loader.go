package script

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Loader reads a script file into a Model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// LoaderFor picks a loader from the file extension.
func LoaderFor(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	case ".hcl":
		return NewHCLLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported script format %q (want .yaml, .yml or .hcl)", filepath.Ext(path))
	}
}

// Load is a shortcut for LoaderFor(path) followed by Load.
func Load(ctx context.Context, path string) (*Model, error) {
	loader, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, path)
}
