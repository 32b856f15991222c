package markscript

import (
	"fmt"
	"strings"

	"github.com/alnah/go-markscript/internal/markup"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver is valid
// and means defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Document string        // MarkScript source; empty yields an empty page
	CSS      string        // extra CSS for this page (optional)
	PDF      bool          // also render the page to PDF
	Page     *PageSettings // PDF page settings (optional, nil = defaults)
}

// Result is a converted page.
type Result struct {
	HTML        string // complete HTML document
	Fragment    string // body content only
	Title       string // page title as plain text
	Background  string // CSS color of the page body
	Diagnostics []Diagnostic
}

// ConvertResult is returned by Converter.Convert.
type ConvertResult struct {
	Result
	PDF []byte // nil unless Input.PDF was set
}

// Diagnostic records a problem that was replaced by a placeholder.
type Diagnostic = markup.Diagnostic

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind = markup.DiagnosticKind

// Diagnostic kinds.
const (
	InvalidColor       = markup.InvalidColor
	InvalidURL         = markup.InvalidURL
	MalformedDirective = markup.MalformedDirective
	InputTruncated     = markup.InputTruncated
)

// Document limits. Input beyond them is cut and reported as InputTruncated.
const (
	MaxLines     = markup.MaxLines
	MaxLineChars = markup.MaxLineChars
)
