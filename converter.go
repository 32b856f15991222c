package markscript

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-markscript/internal/assets"
	"github.com/alnah/go-markscript/internal/fileutil"
	"github.com/alnah/go-markscript/internal/markup"
	"github.com/alnah/go-markscript/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.PageAssembler = (*pipeline.TemplateAssembler)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter publishes MarkScript documents as HTML and, optionally, PDF.
// Create with NewConverter and Close when done. HTML-only conversions may
// run concurrently; PDF export uses one browser and is serialized by the
// caller (see ConverterPool).
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	publisher    *publisher
	pdfConverter pdfConverter
	logger       *slog.Logger
}

// NewConverter creates a Converter. It fails when an option names a style,
// asset directory, stylesheet or highlight style that cannot be used.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		timeout:   defaultTimeout,
		styleName: assets.DefaultStyleName,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Converter{cfg: cfg, logger: cfg.logger}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver
	if resolver.HasCustomLoader() {
		c.logger.Debug("using custom assets", "path", cfg.assetPath)
	}

	c.publisher, err = newPublisher(c.assetLoader, cfg.styleName)
	if err != nil {
		return nil, err
	}
	c.publisher.lang = cfg.lang

	if cfg.highlightStyle != "" {
		h, err := markup.NewHighlighter(cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		c.publisher.renderer.Highlighter = h
	}

	custom, err := c.resolveStylesheet()
	if err != nil {
		return nil, err
	}
	c.publisher.customStyle = custom

	c.pdfConverter = newRodConverter(cfg.timeout)
	return c, nil
}

// Convert publishes one document. Problems inside the document never cause
// an error; they are reported in Result.Diagnostics. Errors come from
// invalid Input settings, a cancelled context or PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	pageCSS, err := pipeline.PrepareStylesheet(input.CSS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStylesheet, err)
	}

	res, err := c.publisher.publish(ctx, input.Document, pageCSS)
	if err != nil {
		return nil, fmt.Errorf("assembling page: %w", err)
	}
	c.logResult(ctx, res)

	out := &ConvertResult{Result: res}
	if !input.PDF {
		return out, nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, res.HTML, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	out.PDF = pdf
	return out, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStylesheet turns the WithStylesheet value (path or inline CSS)
// into checked CSS.
func (c *Converter) resolveStylesheet() (string, error) {
	input := c.cfg.stylesheet
	if input == "" {
		return "", nil
	}

	var content string
	switch {
	case fileutil.IsFilePath(input):
		data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading stylesheet %q: %w", input, err)
		}
		content = string(data)
	case fileutil.IsCSS(input):
		content = input
	default:
		return "", fmt.Errorf("%w: %q is neither a .css path nor CSS rules", ErrInvalidStylesheet, input)
	}

	css, err := pipeline.PrepareStylesheet(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStylesheet, err)
	}
	return css, nil
}

func (c *Converter) logResult(ctx context.Context, res Result) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "document converted",
		slog.String("title", res.Title),
		slog.Int("html_bytes", len(res.HTML)),
		slog.Int("diagnostics", len(res.Diagnostics)),
	)
	for _, d := range res.Diagnostics {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "diagnostic",
			slog.Int("line", d.Line),
			slog.String("kind", d.Kind.String()),
			slog.String("detail", d.Detail),
		)
	}
}
