package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	markscript "github.com/alnah/go-markscript"
	"github.com/alnah/go-markscript/internal/config"
	"github.com/alnah/go-markscript/internal/fileutil"
	"github.com/alnah/go-markscript/internal/hints"
	"github.com/alnah/go-markscript/internal/logging"
)

// MaxDocumentSize caps a single input document. Larger inputs are refused
// before they are read.
const MaxDocumentSize = 8 << 20

// stdioPath selects standard input or standard output.
const stdioPath = "-"

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrDocumentTooLarge = errors.New("document too large")
	ErrPDFToStdout      = errors.New("--pdf needs an output file, not stdout")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	pdf    bool
	page   *markscript.PageSettings
	logger *slog.Logger
}

func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	logger, err := newLogger(flags.common, envCfg, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}
	params := &conversionParams{pdf: cfg.PDF.Enabled, page: page, logger: logger}
	opts := buildOptions(cfg, logger)

	if inputPath == stdioPath {
		return convertStdin(ctx, flags.output, params, opts, env)
	}

	files, err := discoverFiles(inputPath, resolveOutput(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no MarkScript files (.ms, .markscript) in %s", ErrNoInput, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(markscript.ResolvePoolSize(workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", poolSize, "pdf", params.pdf)

	pool, err := env.NewPool(poolSize, opts...)
	if err != nil {
		return err
	}
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
}

func newLogger(flags commonFlags, envCfg *envConfig, w io.Writer) (*slog.Logger, error) {
	name := flags.logFormat
	if name == "" {
		name = envCfg.LogFormat
	}
	format, err := logging.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return logging.New(w, logging.LevelFor(flags.verbose, flags.quiet), format), nil
}

// resolveConfig loads the config file, then applies env vars and flags
// and validates the merged result.
func resolveConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg, err := loadConfig(name)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig returns the default config for an empty name.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(name, "/\\") {
			hint = hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Style.Name, flags.style.name)
	set(&cfg.Style.CSS, flags.style.css)
	set(&cfg.Style.Highlight, flags.style.highlight)
	set(&cfg.Style.Lang, flags.style.lang)
	set(&cfg.Assets.BasePath, flags.style.assetPath)
	set(&cfg.PDF.PageSize, flags.page.size)
	set(&cfg.PDF.Orientation, flags.page.orientation)
	set(&cfg.PDF.Timeout, flags.timeout)
	if flags.page.margin != 0 {
		cfg.PDF.Margin = flags.page.margin
	}
	if flags.pdf {
		cfg.PDF.Enabled = true
	}
}

// buildOptions turns the merged config into converter options.
func buildOptions(cfg *config.Config, logger *slog.Logger) []markscript.Option {
	opts := []markscript.Option{markscript.WithLogger(logger)}
	if cfg.Style.Name != "" {
		opts = append(opts, markscript.WithStyle(cfg.Style.Name))
	}
	if cfg.Style.CSS != "" {
		opts = append(opts, markscript.WithStylesheet(cfg.Style.CSS))
	}
	if cfg.Style.Highlight != "" {
		opts = append(opts, markscript.WithHighlightStyle(cfg.Style.Highlight))
	}
	if cfg.Style.Lang != "" {
		opts = append(opts, markscript.WithLang(cfg.Style.Lang))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, markscript.WithAssetPath(cfg.Assets.BasePath))
	}
	if d := cfg.PDF.TimeoutDuration(); d > 0 {
		opts = append(opts, markscript.WithTimeout(d))
	}
	return opts
}

// buildPageSettings returns nil when PDF export is off.
func buildPageSettings(cfg *config.Config) (*markscript.PageSettings, error) {
	if !cfg.PDF.Enabled {
		return nil, nil
	}
	page := markscript.DefaultPageSettings()
	if cfg.PDF.PageSize != "" {
		page.Size = strings.ToLower(cfg.PDF.PageSize)
	}
	if cfg.PDF.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.PDF.Orientation)
	}
	if cfg.PDF.Margin != 0 {
		page.Margin = cfg.PDF.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// resolveInputPath picks the positional argument, else input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", usageError(errUnexpectedArgs(args[1:]))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutput picks the -o flag, else output.defaultDir.
func resolveOutput(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// convertStdin converts standard input. The page goes to standard output
// unless output names a file.
func convertStdin(ctx context.Context, output string, params *conversionParams, opts []markscript.Option, env *Environment) error {
	toStdout := output == "" || output == stdioPath
	if toStdout && params.pdf {
		return ErrPDFToStdout
	}
	if !toStdout {
		if err := fileutil.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(io.LimitReader(env.Stdin, MaxDocumentSize+1))
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: stdin exceeds %d bytes", ErrDocumentTooLarge, MaxDocumentSize)
	}

	pool, err := env.NewPool(1, opts...)
	if err != nil {
		return err
	}
	defer pool.Close()
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, markscript.Input{Document: string(data), PDF: params.pdf, Page: params.page})
	if err != nil {
		return err
	}
	logDiagnostics(params.logger, "<stdin>", res.Diagnostics)

	if toStdout {
		_, err := io.WriteString(env.Stdout, res.HTML)
		return err
	}

	result := ConversionResult{InputPath: "<stdin>", OutputPath: output}
	result.Err = writeOutputs(&result, res)
	printResults([]ConversionResult{result}, false, false, env)
	return result.Err
}

// writeOutputs writes the page, and the PDF when present, recording what
// happened to each file in r.
func writeOutputs(r *ConversionResult, res *markscript.ConvertResult) error {
	if err := os.MkdirAll(filepath.Dir(r.OutputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	status, err := fileutil.WriteIfChanged(r.OutputPath, []byte(res.HTML), filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	r.Status = status

	if res.PDF == nil {
		return nil
	}
	r.PDFPath = pdfOutputPath(r.OutputPath)
	r.PDFStatus, err = fileutil.WriteIfChanged(r.PDFPath, res.PDF, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func logDiagnostics(logger *slog.Logger, input string, diags []markscript.Diagnostic) {
	for _, d := range diags {
		logger.Warn(d.Kind.String(), "file", input, "line", d.Line, "detail", d.Detail)
	}
}
