package fileutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// WriteStatus reports what WriteIfChanged did.
type WriteStatus int

const (
	Created WriteStatus = iota + 1
	Updated
	Unchanged
)

func (s WriteStatus) String() string {
	switch s {
	case Created:
		return "Created"
	case Updated:
		return "Updated"
	case Unchanged:
		return "Unchanged"
	default:
		return fmt.Sprintf("WriteStatus(%d)", int(s))
	}
}

// HashContent returns the hex BLAKE3-256 digest of data.
func HashContent(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex BLAKE3-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-provided output path
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteIfChanged writes content to path unless the file already holds the
// same bytes. The write goes through a temp file in the same directory and
// a rename, so readers never observe a partial page.
func WriteIfChanged(path string, content []byte, perm fs.FileMode) (WriteStatus, error) {
	status := Created
	existing, err := HashFile(path)
	switch {
	case err == nil:
		if existing == HashContent(content) {
			return Unchanged, nil
		}
		status = Updated
	case !errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("reading existing output: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".markscript-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, bytes.NewReader(content)); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("setting output permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("replacing output: %w", err)
	}
	return status, nil
}
