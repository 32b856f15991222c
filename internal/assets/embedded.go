package assets

import (
	"embed"
	"fmt"
)

//go:embed styles templates guides
var builtin embed.FS

// EmbeddedLoader loads the built-in assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load reads a built-in asset.
func (e *EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	if err := checkRequest(kind, name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(kind.relPath(name))
	if err != nil {
		return "", fmt.Errorf("%w: %s %q", ErrAssetNotFound, kind, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
