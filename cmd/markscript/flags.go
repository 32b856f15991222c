package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// styleFlags holds page styling flags.
type styleFlags struct {
	name      string
	css       string
	highlight string
	lang      string
	assetPath string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	pdf     bool
	style   styleFlags
	page    pageFlags
}

// syntaxFlags holds flags for the syntax command.
type syntaxFlags struct {
	html      bool
	styles    bool
	width     int
	highlight string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.name, "style", "", "base style name")
	fs.StringVar(&f.css, "css", "", "extra CSS file or inline rules")
	fs.StringVar(&f.highlight, "highlight", "", "syntax highlighting style for code blocks")
	fs.StringVar(&f.lang, "lang", "", "page language (default: ja)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0.25-3.0)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF next to each page")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseSyntaxFlags parses syntax command flags.
func parseSyntaxFlags(args []string, usage io.Writer) (*syntaxFlags, error) {
	fs := flag.NewFlagSet("syntax", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &syntaxFlags{}

	fs.BoolVar(&f.html, "html", false, "print the reference as an HTML page")
	fs.BoolVar(&f.styles, "styles", false, "list syntax highlighting styles")
	fs.IntVar(&f.width, "width", 0, "wrap width for text output (0 = terminal width)")
	fs.StringVar(&f.highlight, "highlight", "", "highlighting style for the HTML example")

	fs.Usage = func() { printSyntaxUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(errUnexpectedArgs(fs.Args()))
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, usage io.Writer) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &commonFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")

	fs.Usage = func() { printConfigUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(errUnexpectedArgs(fs.Args()))
	}
	return f, nil
}
