// Package hints provides actionable error hints for common CLI failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-markscript/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by common CI runners.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for browser start-up failures during
// --pdf. Sandbox advice is given only in CI or a container.
func ForBrowserConnect() string {
	var hints []string

	inCI := false
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			inCI = true
			break
		}
	}
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the PDF timeout.
func ForTimeout() string {
	return format("raise the PDF timeout with --timeout or MARKSCRIPT_TIMEOUT")
}

// ForConfigNotFound suggests --config, or creating the config in the user
// config directory when one of the searched paths is there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-markscript/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputPath explains the output naming rules.
func ForOutputPath() string {
	return format("output files must end in .html and must not contain '..'")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForHighlightStyle lists a few valid chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	const shown = 8
	list := strings.Join(available[:min(shown, len(available))], ", ")
	if len(available) > shown {
		list += ", ..."
	}
	return format("available: " + list + " (see 'markscript syntax')")
}

// ForStylesheet explains what custom CSS may contain.
func ForStylesheet() string {
	return format("custom CSS must not use @import, external url(), expression() or javascript:")
}

// ForDocumentTooLarge suggests splitting an input rejected for its size.
func ForDocumentTooLarge() string {
	return format("split the document into several pages")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
