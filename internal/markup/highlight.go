package markup

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle is returned by NewHighlighter for style names
// chroma does not know.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// Highlighter renders code block text with chroma using inline styles, so
// the page stays self-contained. Its output is filtered to the pre, code
// and span elements chroma writes.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for a chroma style such as "github".
func NewHighlighter(styleName string) (*Highlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownHighlightStyle, styleName, strings.Join(HighlightStyles(), ", "))
	}
	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}, nil
}

// HighlightStyles lists the registered chroma style names.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Highlight renders code. ok is false when chroma fails, in which case the
// caller falls back to plain escaped text.
func (h *Highlighter) Highlight(code string) (HTML, bool) {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return HTML{}, false
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return HTML{}, false
	}
	return sanitizeCode(buf.String()), true
}
