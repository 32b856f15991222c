package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	markscript "github.com/alnah/go-markscript"
	"github.com/alnah/go-markscript/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .ms or .markscript extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// documentExtensions are the recognized MarkScript file extensions.
var documentExtensions = map[string]bool{
	".ms":         true,
	".markscript": true,
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all MarkScript files to convert. output is empty
// (pages next to their source), a file (single input only; it must end in
// .html) or a directory mirroring the input tree. Every output path is
// checked with fileutil.ValidateOutputPath.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDocumentExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, output, "")
		if err := fileutil.ValidateOutputPath(outPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if isHTMLPath(output) {
		return nil, fmt.Errorf("%w: output %s must be a directory when the input is a directory", ErrUsage, output)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !documentExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath)
		if err := fileutil.ValidateOutputPath(outPath); err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the page path for a document. The output
// directory is joined without cleaning so that ".." segments given by the
// user are still visible to validation.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext) + fileutil.OutputExtension

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if isHTMLPath(output) || (baseInputDir == "" && looksLikeFile(output)) {
		return output
	}

	rel := name
	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			rel = filepath.Join(filepath.Dir(relPath), name)
		}
	}
	return strings.TrimRight(output, `/\`) + string(filepath.Separator) + rel
}

// looksLikeFile reports whether a single-file output names a file rather
// than a directory: it has an extension and no trailing separator.
func looksLikeFile(p string) bool {
	return filepath.Ext(p) != "" && !strings.HasSuffix(p, "/") && !strings.HasSuffix(p, `\`)
}

func isHTMLPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), fileutil.OutputExtension)
}

// validateDocumentExtension checks for a .ms or .markscript extension.
func validateDocumentExtension(path string) error {
	ext := filepath.Ext(path)
	if !documentExtensions[strings.ToLower(ext)] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > markscript.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, markscript.MaxPoolSize)
	}
	return nil
}

// pdfOutputPath returns the PDF path next to a page.
func pdfOutputPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}
