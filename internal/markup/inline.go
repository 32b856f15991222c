package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Inline keywords. They may appear anywhere in paragraph or box text.
const (
	KeywordLink   = "埋め"
	KeywordColor  = "色付"
	KeywordBorder = "枠文字"
)

// SpanKind identifies an inline construct.
type SpanKind int

const (
	TextSpan SpanKind = iota
	CodeSpan
	LinkSpan
	ColorSpan
	BorderSpan
)

// Span is one token produced by the inline scanner. Text and Arg hold raw,
// unescaped input: Arg is the URL or color token, Text the label or
// enclosed text. Malformed marks a keyword whose payload had the wrong shape.
type Span struct {
	Kind      SpanKind
	Text      string
	Arg       string
	Malformed bool
}

// inlineMatcher recognizes one inline directive starting at pos.
// starts must be cheap: it decides capture boundaries for every position.
type inlineMatcher struct {
	keyword string
	kind    SpanKind
	starts  func(s string, afterKeyword int) bool
	scan    func(s string, afterKeyword, limit int) (span Span, textStart int)
}

// inlineMatchers is the precedence order for directives at the same
// position: links before colored and bordered spans. Code spans are split
// off before any matcher runs.
var inlineMatchers = []inlineMatcher{
	{keyword: KeywordLink, kind: LinkSpan, starts: linkStarts, scan: scanLink},
	{keyword: KeywordColor, kind: ColorSpan, starts: colorStarts, scan: scanColor},
	{keyword: KeywordBorder, kind: BorderSpan, starts: colorStarts, scan: scanColor},
}

// ScanInline tokenizes one line of inline text.
func ScanInline(text string) []Span {
	var spans []Span
	for text != "" {
		open := strings.IndexByte(text, '`')
		if open < 0 {
			break
		}
		closeIdx := strings.IndexByte(text[open+1:], '`')
		if closeIdx < 0 {
			break
		}
		code := text[open+1 : open+1+closeIdx]
		if code == "" {
			// "``" is literal text; keep scanning after it.
			spans = append(spans, scanDirectives(text[:open+2])...)
			text = text[open+2:]
			continue
		}
		spans = append(spans, scanDirectives(text[:open])...)
		spans = append(spans, Span{Kind: CodeSpan, Text: code})
		text = text[open+1+closeIdx+1:]
	}
	return append(spans, scanDirectives(text)...)
}

// scanDirectives splits a code-free segment into literal text and
// link/color/border spans. Each directive's text runs until the next
// position where a directive starts, or the end of the segment.
func scanDirectives(seg string) []Span {
	var spans []Span
	literalStart := 0
	pos := 0
	for pos < len(seg) {
		m, ok := matcherAt(seg, pos)
		if !ok {
			_, size := utf8.DecodeRuneInString(seg[pos:])
			pos += size
			continue
		}
		if literalStart < pos {
			spans = append(spans, Span{Kind: TextSpan, Text: seg[literalStart:pos]})
		}

		afterKeyword := pos + len(m.keyword)
		limit := nextDirective(seg, afterKeyword)
		span, textStart := m.scan(seg, afterKeyword, limit)
		span.Kind = m.kind
		if textStart < limit {
			span.Text += seg[textStart:limit]
		}
		span.Text = strings.TrimSpace(span.Text)
		spans = append(spans, span)

		pos = limit
		literalStart = limit
	}
	if literalStart < len(seg) {
		spans = append(spans, Span{Kind: TextSpan, Text: seg[literalStart:]})
	}
	return spans
}

// matcherAt returns the matcher whose directive starts at pos.
func matcherAt(s string, pos int) (inlineMatcher, bool) {
	for _, m := range inlineMatchers {
		if strings.HasPrefix(s[pos:], m.keyword) && m.starts(s, pos+len(m.keyword)) {
			return m, true
		}
	}
	return inlineMatcher{}, false
}

// nextDirective returns the byte offset of the next directive start at or
// after from, or len(s).
func nextDirective(s string, from int) int {
	for pos := from; pos < len(s); {
		if _, ok := matcherAt(s, pos); ok {
			return pos
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return len(s)
}

// linkStarts requires whitespace and an http(s):// token after the keyword.
func linkStarts(s string, i int) bool {
	j := skipSpaces(s, i)
	if j == i {
		return false
	}
	return hasHTTPPrefix(s[j:])
}

// scanLink reads the URL token up to the first separator or limit; the
// rest of the capture is the label.
func scanLink(s string, i, limit int) (Span, int) {
	j := skipSpaces(s, i)
	end := j
	for end < limit {
		r, size := utf8.DecodeRuneInString(s[end:])
		if isSeparator(r) {
			break
		}
		end += size
	}
	return Span{Arg: s[j:end]}, end
}

// colorStarts requires an opening parenthesis, optionally after spaces.
func colorStarts(s string, i int) bool {
	j := skipSpaces(s, i)
	_, ok := openParen(s[j:])
	return ok
}

// scanColor reads "(color)" and leaves the following text to the caller.
// A missing closing parenthesis before limit makes the span malformed and
// turns everything after the keyword into its text.
func scanColor(s string, i, limit int) (Span, int) {
	j := skipSpaces(s, i)
	pair, _ := openParen(s[j:])
	inner := j + len(pair.open)
	closeAt := matchingParen(s[inner:limit], pair)
	if closeAt < 0 {
		return Span{Malformed: true, Text: s[i:limit]}, limit
	}
	return Span{Arg: strings.TrimSpace(s[inner : inner+closeAt])}, inner + closeAt + len(pair.close)
}

type parenPair struct{ open, close string }

var parenPairs = []parenPair{{"(", ")"}, {"（", "）"}}

func openParen(s string) (parenPair, bool) {
	for _, p := range parenPairs {
		if strings.HasPrefix(s, p.open) {
			return p, true
		}
	}
	return parenPair{}, false
}

// matchingParen returns the offset of the closer balancing an already
// consumed opener, honoring nesting such as "rgb(0, 0, 0)".
func matchingParen(s string, p parenPair) int {
	depth := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], p.open):
			depth++
			i += len(p.open)
		case strings.HasPrefix(s[i:], p.close):
			if depth == 0 {
				return i
			}
			depth--
			i += len(p.close)
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
	}
	return -1
}

func hasHTTPPrefix(s string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// isSeparator reports the characters accepted between keywords and
// arguments: ASCII whitespace and the ideographic space.
func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '　'
}

func skipSpaces(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isSeparator(r) {
			break
		}
		i += size
	}
	return i
}

// ResolveInline renders inline text to HTML without recording diagnostics.
func ResolveInline(text string) HTML {
	st := &renderState{}
	return st.resolveInline(text)
}

func (st *renderState) resolveInline(text string) HTML {
	spans := ScanInline(text)
	parts := make([]HTML, 0, len(spans))
	for _, span := range spans {
		parts = append(parts, st.renderSpan(span))
	}
	return join(parts...)
}

const (
	linkAttrs   = ` target="_blank" rel="noopener noreferrer"`
	borderStyle = "border: 1px solid %s; padding: 0 4px; border-radius: 3px;"
)

func (st *renderState) renderSpan(span Span) HTML {
	switch span.Kind {
	case CodeSpan:
		return element("<code>", Escape(span.Text), "</code>")
	case LinkSpan:
		return st.renderLink(span)
	case ColorSpan, BorderSpan:
		return st.renderColored(span)
	default:
		return Escape(span.Text)
	}
}

func (st *renderState) renderLink(span Span) HTML {
	u, ok := ValidateURL(span.Arg)
	if !ok {
		st.report(InvalidURL, span.Arg)
		return withTrailingText(Escape(fmt.Sprintf(placeholderInvalidURL, span.Arg)), span.Text)
	}
	label := span.Text
	if label == "" {
		label = u.String()
	}
	return anchor(u, "", Escape(label))
}

func (st *renderState) renderColored(span Span) HTML {
	keyword := KeywordColor
	if span.Kind == BorderSpan {
		keyword = KeywordBorder
	}
	if span.Malformed || span.Text == "" {
		st.report(MalformedDirective, keyword)
		return withTrailingText(Escape(fmt.Sprintf(placeholderMalformed, keyword)), span.Text)
	}
	c, ok := NormalizeColor(span.Arg)
	if !ok {
		st.report(InvalidColor, span.Arg)
		return withTrailingText(Escape(fmt.Sprintf(placeholderInvalidColor, span.Arg)), span.Text)
	}
	style := "color: " + c.String() + ";"
	if span.Kind == BorderSpan {
		style += " " + fmt.Sprintf(borderStyle, c.String())
	}
	return element(`<span style="`+Escape(style).String()+`">`, Escape(span.Text), "</span>")
}

// anchor builds a link opening in a new browsing context. class may be empty.
func anchor(u URL, class string, label HTML) HTML {
	open := `<a`
	if class != "" {
		open += ` class="` + Escape(class).String() + `"`
	}
	open += ` href="` + Escape(u.String()).String() + `"` + linkAttrs + `>`
	return element(open, label, "</a>")
}

// withTrailingText appends escaped text after a placeholder, separated by
// a space.
func withTrailingText(placeholder HTML, text string) HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return placeholder
	}
	return join(placeholder, Escape(" "), Escape(text))
}
