package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-markscript/internal/markup"
)

// Page defaults applied when a document sets no value.
const (
	DefaultLang       = "ja"
	DefaultBackground = markup.Color("#f9f9f9")
	FallbackTitle     = "MarkScript Published Site"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// PageData holds the parts of one published page.
type PageData struct {
	Lang        string       // empty means DefaultLang
	Title       string       // plain text; empty means FallbackTitle
	Background  markup.Color // empty means DefaultBackground
	Body        markup.HTML
	BaseStyle   string // trusted stylesheet from the asset loader
	CustomStyle string // user CSS, already checked by PrepareStylesheet
}

// pageView is what the template sees. Values typed as template.HTML or
// template.CSS are inserted without escaping and must be safe already.
type pageView struct {
	Lang        string
	Title       string
	Background  template.CSS
	Body        template.HTML
	BaseStyle   template.CSS
	CustomStyle template.CSS
}

// PageAssembler defines the contract for wrapping a fragment in a page.
type PageAssembler interface {
	Assemble(ctx context.Context, data *PageData) (string, error)
}

// TemplateAssembler renders pages from an html/template skeleton.
type TemplateAssembler struct {
	tmpl *template.Template
}

// NewTemplateAssembler parses the page template.
func NewTemplateAssembler(tmplContent string) (*TemplateAssembler, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &TemplateAssembler{tmpl: tmpl}, nil
}

// Assemble renders a complete HTML document. The body is inserted verbatim;
// the title is escaped by the template.
func (a *TemplateAssembler) Assemble(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &PageData{}
	}

	view := pageView{
		Lang:        data.Lang,
		Title:       data.Title,
		Background:  template.CSS(pageBackground(data.Background)),
		Body:        template.HTML(data.Body.String()),
		BaseStyle:   template.CSS(sanitizeCSS(data.BaseStyle)),
		CustomStyle: template.CSS(sanitizeCSS(data.CustomStyle)),
	}
	if view.Lang == "" {
		view.Lang = DefaultLang
	}
	if view.Title == "" {
		view.Title = FallbackTitle
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// pageBackground re-validates the color, since PageData may be built by
// hand rather than from a render result.
func pageBackground(c markup.Color) markup.Color {
	if c == "" {
		return DefaultBackground
	}
	if valid, ok := markup.NormalizeColor(string(c)); ok {
		return valid
	}
	return DefaultBackground
}

// Compile-time interface check.
var _ PageAssembler = (*TemplateAssembler)(nil)
