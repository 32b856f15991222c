// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrOutputPathEmpty        = errors.New("output path cannot be empty")
	ErrOutputExtension        = errors.New("output path must end in .html")
	ErrOutputTraversal        = errors.New("output path contains a '..' segment")
)

// OutputExtension is the only extension accepted for published pages.
const OutputExtension = ".html"

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "markscript-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}
	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ValidateOutputPath checks a destination for a published page. The path
// must end in .html (any case) and no segment may be "..". The check is on
// the path as given; it is not cleaned first, so "a/../b.html" is refused
// rather than silently rewritten.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrOutputPathEmpty
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q", ErrExtensionPathTraversal, path)
	}
	for _, segment := range strings.FieldsFunc(path, isPathSeparator) {
		if segment == ".." {
			return fmt.Errorf("%w: %s", ErrOutputTraversal, path)
		}
	}
	if !strings.EqualFold(filepath.Ext(path), OutputExtension) {
		return fmt.Errorf("%w: %s", ErrOutputExtension, path)
	}
	return nil
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// inline content: it contains a path separator or ends in ".css".
//
// Examples:
//   - "./brand.css" -> true
//   - "brand.css" -> true
//   - "/abs/path.css" -> true
//   - "h1 { color: red; }" -> false
func IsFilePath(s string) bool {
	if strings.Contains(s, "{") {
		return false
	}
	return strings.ContainsAny(s, "/\\") || strings.EqualFold(filepath.Ext(s), ".css")
}

// IsCSS returns true if the string looks like inline CSS content.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}
