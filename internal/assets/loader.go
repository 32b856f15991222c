package assets

import "fmt"

// Kind selects the directory and file extension of an asset.
type Kind int

const (
	Style Kind = iota
	Template
	Guide
)

var kindLayout = [...]struct {
	dir, ext, label string
}{
	Style:    {dir: "styles", ext: ".css", label: "style"},
	Template: {dir: "templates", ext: ".html", label: "template"},
	Guide:    {dir: "guides", ext: ".md", label: "guide"},
}

func (k Kind) String() string {
	if k.valid() {
		return kindLayout[k].label
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindLayout)
}

// relPath returns the slash-separated path of an asset below the base.
func (k Kind) relPath(name string) string {
	return kindLayout[k].dir + "/" + name + kindLayout[k].ext
}

// AssetLoader defines the contract for loading assets by kind and name.
type AssetLoader interface {
	// Load returns the content of the named asset, without extension.
	// Returns ErrAssetNotFound if the asset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	Load(kind Kind, name string) (string, error)
}

// checkRequest validates kind and name before any lookup.
func checkRequest(kind Kind, name string) error {
	if !kind.valid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidAssetName, int(kind))
	}
	return ValidateAssetName(name)
}
