package markscript

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-markscript/internal/assets"
	"github.com/alnah/go-markscript/internal/markup"
	"github.com/alnah/go-markscript/internal/pipeline"
)

// publisher renders a document and wraps it in a page. It holds no
// per-call state and is safe for concurrent use.
type publisher struct {
	renderer    markup.Renderer
	assembler   pipeline.PageAssembler
	lang        string
	baseStyle   string
	customStyle string // checked by pipeline.PrepareStylesheet
}

func (p *publisher) publish(ctx context.Context, document, pageCSS string) (Result, error) {
	rendered := p.renderer.Render(document)

	title, ok := pipeline.ExtractTitle(rendered.Fragment)
	if !ok {
		title = pipeline.FallbackTitle
	}
	background := rendered.Background
	if background == "" {
		background = pipeline.DefaultBackground
	}

	page, err := p.assembler.Assemble(ctx, &pipeline.PageData{
		Lang:        p.lang,
		Title:       title,
		Background:  background,
		Body:        rendered.Fragment,
		BaseStyle:   p.baseStyle,
		CustomStyle: joinCSS(p.customStyle, pageCSS),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		HTML:        page,
		Fragment:    rendered.Fragment.String(),
		Title:       title,
		Background:  background.String(),
		Diagnostics: rendered.Diagnostics,
	}, nil
}

func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// builtinPublisher uses the embedded page template and default style.
var builtinPublisher = sync.OnceValue(func() *publisher {
	p, err := newPublisher(assets.NewEmbeddedLoader(), assets.DefaultStyleName)
	if err != nil {
		panic(fmt.Sprintf("markscript: built-in assets: %v", err))
	}
	return p
})

func newPublisher(loader assets.AssetLoader, styleName string) (*publisher, error) {
	tmpl, err := loader.Load(assets.Template, assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	assembler, err := pipeline.NewTemplateAssembler(tmpl)
	if err != nil {
		return nil, err
	}
	base, err := loader.Load(assets.Style, styleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleNotFound, styleName, err)
	}
	return &publisher{assembler: assembler, baseStyle: base}, nil
}

// Convert turns a MarkScript document into a complete HTML page with the
// built-in style. It is total: every input, including the empty string,
// yields a page, and problems appear as placeholders and Diagnostics.
func Convert(document string) Result {
	res, err := builtinPublisher().publish(context.Background(), document, "")
	if err != nil {
		// The built-in template only fails on a broken build.
		panic(fmt.Sprintf("markscript: assembling page: %v", err))
	}
	return res
}

// NormalizeColor validates a color token and returns the CSS value to use.
// Japanese color names map to CSS keywords; hex and functional forms are
// returned unchanged.
func NormalizeColor(raw string) (string, bool) {
	c, ok := markup.NormalizeColor(raw)
	return c.String(), ok
}

// ValidateURL accepts absolute http(s) URLs without credentials, port or
// ".." segments and returns the canonical form.
func ValidateURL(raw string) (string, bool) {
	u, ok := markup.ValidateURL(raw)
	return u.String(), ok
}

// EscapeHTML escapes text for use as HTML text or attribute content.
func EscapeHTML(text string) string {
	return markup.Escape(text).String()
}

// HighlightStyles returns the names accepted by WithHighlightStyle, sorted.
func HighlightStyles() []string {
	return markup.HighlightStyles()
}
