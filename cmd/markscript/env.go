package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	markscript "github.com/alnah/go-markscript"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewPool builds the converter pool for a conversion run.
	NewPool func(size int, opts ...markscript.Option) (Pool, error)

	// TerminalWidth reports the width of stdout, or ok=false when stdout
	// is not a terminal.
	TerminalWidth func() (width int, ok bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPool: newConverterPool,
		TerminalWidth: func() (int, bool) {
			fd := int(os.Stdout.Fd()) // #nosec G115 -- file descriptors fit in int
			if !term.IsTerminal(fd) {
				return 0, false
			}
			w, _, err := term.GetSize(fd)
			if err != nil || w <= 0 {
				return 0, false
			}
			return w, true
		},
	}
}
