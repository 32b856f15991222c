package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	markscript "github.com/alnah/go-markscript"
	"github.com/alnah/go-markscript/internal/config"
	"github.com/alnah/go-markscript/internal/fileutil"
	"github.com/alnah/go-markscript/internal/hints"
	"github.com/alnah/go-markscript/internal/logging"
)

// Exit codes for the markscript CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, including failed batch items
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// usageError wraps a flag parsing error. --help passes through untouched.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, markscript.ErrBrowserConnect),
		errors.Is(err, markscript.ErrPageCreate),
		errors.Is(err, markscript.ErrPageLoad),
		errors.Is(err, markscript.ErrPDFGeneration):
		return ExitBrowser

	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission),
		errors.Is(err, ErrNoInput),
		errors.Is(err, ErrReadInput),
		errors.Is(err, ErrWriteOutput),
		errors.Is(err, ErrDocumentTooLarge):
		return ExitIO

	case errors.Is(err, ErrUsage),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidValue),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, logging.ErrUnknownFormat),
		errors.Is(err, markscript.ErrInvalidPageSize),
		errors.Is(err, markscript.ErrInvalidOrientation),
		errors.Is(err, markscript.ErrInvalidMargin),
		errors.Is(err, markscript.ErrInvalidStylesheet),
		errors.Is(err, markscript.ErrStyleNotFound),
		errors.Is(err, markscript.ErrInvalidAssetPath),
		errors.Is(err, markscript.ErrUnknownHighlightStyle),
		errors.Is(err, fileutil.ErrOutputPathEmpty),
		errors.Is(err, fileutil.ErrOutputExtension),
		errors.Is(err, fileutil.ErrOutputTraversal),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, ErrPDFToStdout):
		return ExitUsage
	}
	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, markscript.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, markscript.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, markscript.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(markscript.HighlightStyles())
	case errors.Is(err, markscript.ErrInvalidStylesheet):
		return hints.ForStylesheet()
	case errors.Is(err, fileutil.ErrOutputExtension), errors.Is(err, fileutil.ErrOutputTraversal):
		return hints.ForOutputPath()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrDocumentTooLarge):
		return hints.ForDocumentTooLarge()
	}
	return ""
}
