// Package reference renders the embedded MarkScript grammar guide for the
// `markscript syntax` command, either as a standalone HTML page or as plain
// text wrapped to the terminal width.
package reference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-markscript/internal/assets"
)

// ErrGuideRender indicates the guide could not be converted to HTML.
var ErrGuideRender = errors.New("rendering grammar guide failed")

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// minWidth keeps wrapping readable on very narrow terminals.
const minWidth = 40

var pageTemplate = template.Must(template.New("guide").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>MarkScript grammar</title>
<style>
body { font-family: sans-serif; max-width: 50em; margin: 2em auto; padding: 0 1em; line-height: 1.6; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
code { background: #f0f0f0; padding: 0 3px; border-radius: 3px; }
pre { padding: 8px; overflow-x: auto; }
</style>
</head>
<body>
{{.}}
</body>
</html>
`))

// Guide renders the grammar guide.
type Guide struct {
	source string
	md     goldmark.Markdown
}

// New loads the built-in grammar guide. highlightStyle names the chroma
// style for the example block; empty uses "github".
func New(highlightStyle string) (*Guide, error) {
	source, err := assets.LoadGuide(assets.GrammarGuideName)
	if err != nil {
		return nil, err
	}
	return NewFromSource(source, highlightStyle), nil
}

// NewFromSource builds a Guide over Markdown text.
func NewFromSource(source, highlightStyle string) *Guide {
	if highlightStyle == "" {
		highlightStyle = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				// Inline styles keep the page self-contained.
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Raw HTML in the guide is not rendered.
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	return &Guide{source: source, md: md}
}

// Markdown returns the guide source.
func (g *Guide) Markdown() string {
	return g.source
}

// HTML renders the guide as a complete page. Goldmark has no context
// support, so conversion runs in a goroutine and the caller stops waiting
// when ctx is done.
func (g *Guide) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var body bytes.Buffer
		if err := g.md.Convert([]byte(g.source), &body); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrGuideRender, err)}
			return
		}
		var page bytes.Buffer
		// #nosec G203 -- body is goldmark output with raw HTML disabled
		if err := pageTemplate.Execute(&page, template.HTML(body.String())); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrGuideRender, err)}
			return
		}
		done <- result{html: page.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Text returns the guide source with prose wrapped to width columns.
// Fenced code and table rows are left as they are. Width is measured in
// terminal cells, so CJK characters count double.
func (g *Guide) Text(width int) string {
	width = max(width, minWidth)

	var b strings.Builder
	inFence := false
	for _, line := range strings.Split(g.source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		switch {
		case inFence, strings.HasPrefix(trimmed, "```"), strings.HasPrefix(trimmed, "|"):
			b.WriteString(line)
		case ansi.PrintableRuneWidth(line) <= width:
			b.WriteString(line)
		default:
			b.WriteString(wrapWithIndent(line, width))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// wrapWithIndent wraps a line and repeats its leading whitespace, plus two
// columns for list items, on continuation lines.
func wrapWithIndent(line string, width int) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]
	hanging := indent
	if strings.HasPrefix(body, "- ") || isOrderedItem(body) {
		hanging += strings.Repeat(" ", strings.Index(body, " ")+1)
	}

	wrapped := wordwrap.String(body, width-len(hanging))
	parts := strings.Split(wrapped, "\n")
	for i := range parts {
		if i == 0 {
			parts[i] = indent + parts[i]
		} else {
			parts[i] = hanging + strings.TrimLeft(parts[i], " ")
		}
	}
	return strings.Join(parts, "\n")
}

func isOrderedItem(s string) bool {
	dot := strings.Index(s, ". ")
	if dot < 1 || dot > 3 {
		return false
	}
	for _, r := range s[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
