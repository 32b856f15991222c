package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	markscript "github.com/alnah/go-markscript"
	"github.com/alnah/go-markscript/internal/reference"
)

// runSyntax prints the grammar reference, or the highlight styles.
func runSyntax(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseSyntaxFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.width < 0 {
		return fmt.Errorf("%w: --width must be >= 0", ErrUsage)
	}

	if flags.styles {
		for _, name := range markscript.HighlightStyles() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	if flags.highlight != "" && !slices.Contains(markscript.HighlightStyles(), flags.highlight) {
		return fmt.Errorf("%w: %q", markscript.ErrUnknownHighlightStyle, flags.highlight)
	}

	guide, err := reference.New(flags.highlight)
	if err != nil {
		return err
	}

	if flags.html {
		page, err := guide.HTML(ctx)
		if err != nil {
			return err
		}
		_, err = io.WriteString(env.Stdout, page)
		return err
	}

	width := flags.width
	if width == 0 {
		width = reference.DefaultWidth
		if w, ok := env.TerminalWidth(); ok {
			width = w
		}
	}
	_, err = io.WriteString(env.Stdout, guide.Text(width))
	return err
}
