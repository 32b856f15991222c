package markscript

import (
	"log/slog"
	"time"
)

// Default values for converter configuration.
const defaultTimeout = 30 * time.Second

// converterConfig holds the settings collected from options.
type converterConfig struct {
	timeout        time.Duration
	assetPath      string
	styleName      string
	stylesheet     string // file path or inline CSS
	highlightStyle string
	lang           string
	logger         *slog.Logger
}

// Option configures a Converter.
type Option func(*converterConfig)

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("markscript: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithAssetPath loads styles and page templates from dir, falling back to
// the built-in assets for anything missing there.
func WithAssetPath(dir string) Option {
	return func(c *converterConfig) {
		c.assetPath = dir
	}
}

// WithStyle selects the base stylesheet by asset name (default "default").
func WithStyle(name string) Option {
	return func(c *converterConfig) {
		c.styleName = name
	}
}

// WithStylesheet appends user CSS to every page. css is either a path to a
// .css file (or any path with a separator) or inline CSS containing a rule
// block; anything else is rejected with ErrInvalidStylesheet.
func WithStylesheet(css string) Option {
	return func(c *converterConfig) {
		c.stylesheet = css
	}
}

// WithHighlightStyle enables syntax highlighting of code blocks with the
// named chroma style, for example "github" or "monokai".
func WithHighlightStyle(name string) Option {
	return func(c *converterConfig) {
		c.highlightStyle = name
	}
}

// WithLang sets the lang attribute of generated pages (default "ja").
func WithLang(lang string) Option {
	return func(c *converterConfig) {
		c.lang = lang
	}
}

// WithLogger sets the logger that receives debug events. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
