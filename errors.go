package markscript

import (
	"errors"

	"github.com/alnah/go-markscript/internal/markup"
)

// Sentinel errors for library operations.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Styling errors.
	ErrInvalidStylesheet     = errors.New("invalid stylesheet")
	ErrStyleNotFound         = errors.New("style not found")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrUnknownHighlightStyle = markup.ErrUnknownHighlightStyle

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")
)
