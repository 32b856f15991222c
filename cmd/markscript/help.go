package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markscript <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert MarkScript documents to HTML pages")
	fmt.Fprintln(w, "  syntax     Show the MarkScript grammar")
	fmt.Fprintln(w, "  config     Show the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'markscript help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markscript convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert MarkScript documents (.ms, .markscript) to self-contained HTML pages.")
	fmt.Fprintln(w, "A page is only rewritten when its content changes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file, directory, or - for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        Base style name")
	fmt.Fprintln(w, "      --css <path|rules>    Extra CSS file or inline rules")
	fmt.Fprintln(w, "      --highlight <style>   Highlight code blocks ('markscript syntax --styles')")
	fmt.Fprintln(w, "      --lang <tag>          Page language (default: ja)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF next to each page")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w, "      --log-format <f>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MARKSCRIPT_CONFIG, MARKSCRIPT_CSS, MARKSCRIPT_HIGHLIGHT, MARKSCRIPT_INPUT_DIR,")
	fmt.Fprintln(w, "  MARKSCRIPT_OUTPUT_DIR, MARKSCRIPT_PAGE_SIZE, MARKSCRIPT_TIMEOUT,")
	fmt.Fprintln(w, "  MARKSCRIPT_LOG_FORMAT, MARKSCRIPT_WORKERS")
}

// printSyntaxUsage prints usage for the syntax command.
func printSyntaxUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markscript syntax [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the MarkScript grammar.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --html                Print the reference as an HTML page")
	fmt.Fprintln(w, "      --width <n>           Wrap width for text output (0 = terminal width)")
	fmt.Fprintln(w, "      --highlight <style>   Highlighting style for the HTML example")
	fmt.Fprintln(w, "      --styles              List highlighting styles")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markscript config [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after the config file")
	fmt.Fprintln(w, "and MARKSCRIPT_* environment variables are applied.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "syntax":
		printSyntaxUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: markscript version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: markscript help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
