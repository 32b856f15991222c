package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Document size limits. Together they bound the work done per call.
const (
	MaxLines     = 2000
	MaxLineChars = 2000
)

const byteOrderMark = "\uFEFF"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Result is the output of Render.
type Result struct {
	Fragment    HTML
	Background  Color // empty when the document sets none
	Diagnostics []Diagnostic
}

// Renderer renders documents. The zero value renders code blocks as plain
// preformatted text.
type Renderer struct {
	Highlighter *Highlighter
}

// Render converts a document with the default Renderer.
func Render(document string) Result {
	return Renderer{}.Render(document)
}

// Render converts a document to an HTML fragment. It never fails.
func (r Renderer) Render(document string) Result {
	lines, omitted := SplitLines(document)
	st := &renderState{highlighter: r.Highlighter}

	for i, raw := range lines {
		st.line = i + 1
		line := st.prepareLine(raw)
		rule, payload := Classify(line, i)
		rule.emit(st, rule.Keyword, payload)
	}

	if omitted > 0 {
		st.line = 0
		st.report(InputTruncated, fmt.Sprintf("%d lines after line %d omitted", omitted, MaxLines))
		st.write(element("<p>", Escape(fmt.Sprintf(placeholderDocTruncated, MaxLines)), "</p>"))
	}

	return Result{
		Fragment:    join(st.out...),
		Background:  st.background,
		Diagnostics: st.diagnostics,
	}
}

// SplitLines normalizes line endings, drops a leading byte order mark and
// one trailing newline, and caps the result at MaxLines. omitted is the
// number of lines beyond the cap.
func SplitLines(document string) (lines []string, omitted int) {
	document = strings.TrimPrefix(document, byteOrderMark)
	document = crlfOrCR.ReplaceAllString(document, "\n")
	document = strings.TrimSuffix(document, "\n")
	if document == "" {
		return nil, 0
	}
	lines = strings.Split(document, "\n")
	if len(lines) > MaxLines {
		return lines[:MaxLines], len(lines) - MaxLines
	}
	return lines, 0
}

// TruncateLine cuts a line to MaxLineChars code points and appends
// LineEllipsis. ok reports whether the line was cut.
func TruncateLine(line string) (string, bool) {
	if utf8.RuneCountInString(line) <= MaxLineChars {
		return line, false
	}
	n := 0
	for i := range line {
		if n == MaxLineChars {
			return line[:i] + LineEllipsis, true
		}
		n++
	}
	return line, false
}

// renderState is the fold state threaded through the lines of one call.
type renderState struct {
	out         []HTML
	background  Color
	diagnostics []Diagnostic
	line        int
	highlighter *Highlighter
}

// prepareLine applies the length cap, then NFC normalization so that
// keywords typed with combining marks still match.
func (st *renderState) prepareLine(raw string) string {
	line, cut := TruncateLine(raw)
	if cut {
		st.report(InputTruncated, fmt.Sprintf("line exceeds %d characters", MaxLineChars))
	}
	return norm.NFC.String(line)
}

var lineEnd = Escape("\n")

func (st *renderState) write(h HTML) {
	st.out = append(st.out, h, lineEnd)
}

func (st *renderState) report(kind DiagnosticKind, detail string) {
	st.diagnostics = append(st.diagnostics, Diagnostic{Line: st.line, Kind: kind, Detail: detail})
}
