package markscript

// Notes:
// - Converter.Convert is tested with a mock PDF backend; no browser starts
// - NewConverter never launches Chrome, so building converters is cheap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called    bool
	inputHTML string
	inputOpts *pdfOptions
	output    []byte
	err       error
	panicWith any
	closed    bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	m.called = true
	m.inputHTML = htmlContent
	m.inputOpts = opts
	return m.output, m.err
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *mockPDFConverter) {
	t.Helper()

	c, err := NewConverter(opts...)
	require.NoError(t, err)
	mock := &mockPDFConverter{output: []byte("%PDF-1.7")}
	c.pdfConverter = mock
	t.Cleanup(func() { _ = c.Close() })
	return c, mock
}

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter_Options(t *testing.T) {
	t.Parallel()

	cssFile := filepath.Join(t.TempDir(), "extra.css")
	require.NoError(t, os.WriteFile(cssFile, []byte("h1 { color: teal; }"), 0o600))

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
		wantAny bool
	}{
		{name: "defaults"},
		{name: "highlight style", opts: []Option{WithHighlightStyle("monokai")}},
		{name: "inline stylesheet", opts: []Option{WithStylesheet("p { margin: 0; }")}},
		{name: "stylesheet file", opts: []Option{WithStylesheet(cssFile)}},
		{
			name:    "unknown highlight style",
			opts:    []Option{WithHighlightStyle("no-such-style")},
			wantErr: ErrUnknownHighlightStyle,
		},
		{
			name:    "unknown style",
			opts:    []Option{WithStyle("nope")},
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "missing asset directory",
			opts:    []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))},
			wantErr: ErrInvalidAssetPath,
		},
		{
			name:    "stylesheet with import",
			opts:    []Option{WithStylesheet(`@import "https://evil.example/x.css";`)},
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "stylesheet neither path nor rules",
			opts:    []Option{WithStylesheet("brand")},
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "missing stylesheet file",
			opts:    []Option{WithStylesheet(filepath.Join(t.TempDir(), "gone.css"))},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewConverter(tt.opts...)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NoError(t, c.Close())
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithTimeout(0) })
	assert.Panics(t, func() { WithTimeout(-time.Second) })
	assert.NotPanics(t, func() { WithTimeout(time.Second) })
}

func TestNewConverter_AssetPathOverridesStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles", "plain.css"), []byte("body { margin: 2em; }"), 0o600))

	c, _ := newTestConverter(t, WithAssetPath(dir), WithStyle("plain"))
	res, err := c.Convert(context.Background(), Input{Document: "本文"})
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "body { margin: 2em; }")
	// The page template still comes from the built-in assets.
	assert.Contains(t, res.HTML, "<!DOCTYPE html>")
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []Option
		input       Input
		wantErr     error
		wantContain []string
		wantPDF     bool
	}{
		{
			name:        "html only",
			input:       Input{Document: "タイトル 案内\n本文"},
			wantContain: []string{"<title>案内</title>", "<p>本文</p>"},
		},
		{
			name:        "lang option",
			opts:        []Option{WithLang("en")},
			input:       Input{Document: "x"},
			wantContain: []string{`<html lang="en">`},
		},
		{
			name:        "converter and input stylesheets are both applied",
			opts:        []Option{WithStylesheet("h1 { color: teal; }")},
			input:       Input{Document: "x", CSS: "p { color: navy; }"},
			wantContain: []string{"h1 { color: teal; }", "p { color: navy; }"},
		},
		{
			name:    "input stylesheet is checked",
			input:   Input{Document: "x", CSS: "p { background: url(https://evil.example/a.png); }"},
			wantErr: ErrInvalidStylesheet,
		},
		{
			name:    "invalid page size",
			input:   Input{Document: "x", PDF: true, Page: &PageSettings{Size: "a5", Orientation: OrientationPortrait, Margin: 1}},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "pdf requested",
			input:   Input{Document: "タイトル 案内", PDF: true},
			wantPDF: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, mock := newTestConverter(t, tt.opts...)
			res, err := c.Convert(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, mock.called)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, res.HTML, want)
			}
			assert.Equal(t, tt.wantPDF, mock.called)
			if tt.wantPDF {
				assert.Equal(t, []byte("%PDF-1.7"), res.PDF)
				assert.Equal(t, res.HTML, mock.inputHTML)
			} else {
				assert.Nil(t, res.PDF)
			}
		})
	}
}

func TestConverter_Convert_MatchesPackageConvert(t *testing.T) {
	t.Parallel()

	doc := "背景 黄\nタイトル 同じ\nボタン https://x.com/ 押す"
	c, _ := newTestConverter(t)
	res, err := c.Convert(context.Background(), Input{Document: doc})
	require.NoError(t, err)
	assert.Equal(t, Convert(doc), res.Result)
}

func TestConverter_Convert_CancelledContext(t *testing.T) {
	t.Parallel()

	c, mock := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Convert(ctx, Input{Document: "x", PDF: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, mock.called)
}

func TestConverter_Convert_PDFError(t *testing.T) {
	t.Parallel()

	c, mock := newTestConverter(t)
	mock.err = ErrBrowserConnect

	_, err := c.Convert(context.Background(), Input{Document: "x", PDF: true})
	assert.ErrorIs(t, err, ErrBrowserConnect)
}

func TestConverter_Convert_RecoversPanic(t *testing.T) {
	t.Parallel()

	c, mock := newTestConverter(t)
	mock.panicWith = "boom"

	res, err := c.Convert(context.Background(), Input{Document: "x", PDF: true})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "internal error: boom")
}

func TestConverter_Convert_LogsDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, _ := newTestConverter(t, WithLogger(logger))

	_, err := c.Convert(context.Background(), Input{Document: "タイトル T\n色付 (nope!) x"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "document converted")
	assert.Contains(t, out, "title=T")
	assert.Contains(t, out, `kind="invalid color"`)
	assert.Contains(t, out, `detail=nope!`)
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	c, mock := newTestConverter(t)
	require.NoError(t, c.Close())
	assert.True(t, mock.closed)

	var empty Converter
	assert.NoError(t, empty.Close())
}

func TestConverter_ConcurrentHTML(t *testing.T) {
	t.Parallel()

	c, _ := newTestConverter(t, WithHighlightStyle("github"))
	want := Convert("タイトル 並行").Title

	errs := make(chan error, 16)
	for range 16 {
		go func() {
			res, err := c.Convert(context.Background(), Input{Document: "タイトル 並行\nコピー fmt.Println(1)"})
			if err == nil && res.Title != want {
				err = errors.New("title mismatch: " + res.Title)
			}
			errs <- err
		}()
	}
	for range 16 {
		assert.NoError(t, <-errs)
	}
}
