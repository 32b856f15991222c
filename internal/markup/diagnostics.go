package markup

import "fmt"

// DiagnosticKind classifies a problem that was recovered from during
// rendering.
type DiagnosticKind int

const (
	InvalidColor DiagnosticKind = iota + 1
	InvalidURL
	MalformedDirective
	InputTruncated
)

var diagnosticKindNames = map[DiagnosticKind]string{
	InvalidColor:       "invalid color",
	InvalidURL:         "invalid URL",
	MalformedDirective: "malformed directive",
	InputTruncated:     "input truncated",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic records one recovered problem. Line is 1-based; 0 means the
// document as a whole.
type Diagnostic struct {
	Line   int
	Kind   DiagnosticKind
	Detail string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Detail)
}

// Placeholder texts rendered in place of rejected input. They are plain
// text and are escaped together with the offending value.
const (
	placeholderInvalidColor  = "[無効な色: %s]"
	placeholderInvalidURL    = "[無効なURL: %s]"
	placeholderInvalidButton = "[無効なボタンURL: %s]"
	placeholderInvalidImage  = "[無効な画像URL: %s - 画像がブロックされました]"
	placeholderMalformed     = "[%s の形式が不正です]"
	placeholderDocTruncated  = "[%d行を超えた部分は省略されました]"
)

// LineEllipsis is appended to lines cut at MaxLineChars.
const LineEllipsis = "…"
