package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	markscript "github.com/alnah/go-markscript"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake pool and converter
// ---------------------------------------------------------------------------

// fakeConverter renders with the package-level Convert and never starts a
// browser. When pdf is set it returns a fixed PDF payload.
type fakeConverter struct {
	err   error
	calls atomic.Int32
}

func (f *fakeConverter) Convert(ctx context.Context, input markscript.Input) (*markscript.ConvertResult, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	res := &markscript.ConvertResult{Result: markscript.Convert(input.Document)}
	if input.PDF {
		res.PDF = []byte("%PDF-1.7 fake")
	}
	return res, nil
}

// fakePool hands out one shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *fakePool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv is an Environment with captured output and no real environment.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	pool   *fakePool
	// poolOpts records the options of the last NewPool call.
	poolOpts []markscript.Option
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
		pool:   &fakePool{conv: &fakeConverter{}},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPool: func(size int, opts ...markscript.Option) (Pool, error) {
			// Options are validated the way the real pool would.
			if _, err := markscript.NewConverter(opts...); err != nil {
				return nil, err
			}
			te.pool.size = size
			te.poolOpts = opts
			return te.pool, nil
		},
		TerminalWidth: func() (int, bool) { return 0, false },
	}
	return te
}

// writeDoc writes a MarkScript document under dir and returns its path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

var errFake = errors.New("fake failure")
