package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Directive identifies the rule that rendered a line.
type Directive int

const (
	Background Directive = iota
	Title
	Heading
	SmallText
	CodeBlock
	Button
	Box
	Image
	LineBreak
	Blank
	Paragraph
)

var directiveNames = [...]string{
	Background: "background",
	Title:      "title",
	Heading:    "heading",
	SmallText:  "small",
	CodeBlock:  "code",
	Button:     "button",
	Box:        "box",
	Image:      "image",
	LineBreak:  "line break",
	Blank:      "blank",
	Paragraph:  "paragraph",
}

func (d Directive) String() string {
	if d >= 0 && int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}

// Line keywords. They are a stable protocol: stored documents are only
// re-rendered, never migrated.
const (
	KeywordBackground = "背景"
	KeywordTitle      = "タイトル"
	KeywordHeading    = "大"
	KeywordSmall      = "小"
	KeywordCopy       = "コピー"
	KeywordButton     = "ボタン"
	KeywordBox        = "ボックス"
	KeywordQuote      = "引用"
	KeywordImage      = "画像"
	KeywordBreak      = "改行"
)

// defaultImageCaption is used when an image line has no caption text.
const defaultImageCaption = "引用画像"

// Rule pairs a line predicate with its emitter. match returns the payload
// handed to emit.
type Rule struct {
	Directive Directive
	Keyword   string
	match     func(line string, index int) (payload string, ok bool)
	emit      func(st *renderState, keyword, payload string)
}

// Rules is the dispatch table, evaluated top to bottom; the first match
// wins. Paragraph matches every line.
var Rules = []Rule{
	{Directive: Background, Keyword: KeywordBackground, match: firstLineOnly(keywordLine(KeywordBackground)), emit: (*renderState).emitBackground},
	{Directive: Title, Keyword: KeywordTitle, match: keywordLine(KeywordTitle), emit: textBlock("<h1>", "</h1>")},
	{Directive: Heading, Keyword: KeywordHeading, match: keywordLine(KeywordHeading), emit: textBlock("<h3>", "</h3>")},
	{Directive: SmallText, Keyword: KeywordSmall, match: keywordLine(KeywordSmall), emit: textBlock(`<p class="small">`, "</p>")},
	{Directive: CodeBlock, Keyword: KeywordCopy, match: keywordLine(KeywordCopy), emit: (*renderState).emitCode},
	{Directive: Button, Keyword: KeywordButton, match: keywordLine(KeywordButton), emit: (*renderState).emitButton},
	{Directive: Box, Keyword: KeywordBox, match: keywordLine(KeywordBox), emit: (*renderState).emitBox},
	{Directive: Image, Keyword: KeywordQuote, match: keywordLine(KeywordQuote), emit: (*renderState).emitImage},
	{Directive: Image, Keyword: KeywordImage, match: keywordLine(KeywordImage), emit: (*renderState).emitImage},
	{Directive: LineBreak, Keyword: KeywordBreak, match: exactLine(KeywordBreak), emit: (*renderState).emitBreak},
	{Directive: Blank, match: blankLine, emit: (*renderState).emitBreak},
	{Directive: Paragraph, match: anyLine, emit: (*renderState).emitParagraph},
}

// Classify returns the rule that handles line at the given 0-based index.
func Classify(line string, index int) (Rule, string) {
	for _, r := range Rules {
		if payload, ok := r.match(line, index); ok {
			return r, payload
		}
	}
	// Unreachable: the last rule matches everything.
	return Rules[len(Rules)-1], line
}

// keywordLine matches "keyword<space>payload" at the start of the line.
func keywordLine(keyword string) func(string, int) (string, bool) {
	return func(line string, _ int) (string, bool) {
		rest, found := strings.CutPrefix(line, keyword)
		if !found {
			return "", false
		}
		r, size := utf8.DecodeRuneInString(rest)
		if size == 0 || !isSeparator(r) {
			return "", false
		}
		return strings.TrimSpace(rest[size:]), true
	}
}

func firstLineOnly(match func(string, int) (string, bool)) func(string, int) (string, bool) {
	return func(line string, index int) (string, bool) {
		if index != 0 {
			return "", false
		}
		return match(line, index)
	}
}

func exactLine(keyword string) func(string, int) (string, bool) {
	return func(line string, _ int) (string, bool) {
		return "", strings.TrimSpace(line) == keyword
	}
}

func blankLine(line string, _ int) (string, bool) {
	return "", strings.TrimSpace(line) == ""
}

func anyLine(line string, _ int) (string, bool) {
	return line, true
}

func (st *renderState) emitBackground(keyword, payload string) {
	token, _, _ := cutField(payload)
	if token == "" {
		st.report(MalformedDirective, keyword)
		return
	}
	c, ok := NormalizeColor(token)
	if !ok {
		st.report(InvalidColor, token)
		return
	}
	st.background = c
}

// textBlock emits escaped payload text between fixed tags.
func textBlock(open, closeTag string) func(*renderState, string, string) {
	return func(st *renderState, keyword, payload string) {
		if payload == "" {
			st.malformed(keyword)
			return
		}
		st.write(element(open, Escape(payload), closeTag))
	}
}

func (st *renderState) emitCode(keyword, payload string) {
	if payload == "" {
		st.malformed(keyword)
		return
	}
	if st.highlighter != nil {
		if code, ok := st.highlighter.Highlight(payload); ok {
			st.write(element(`<div class="code-box">`, code, "</div>"))
			return
		}
	}
	st.write(element(`<div class="code-box"><pre><code>`, Escape(payload), "</code></pre></div>"))
}

func (st *renderState) emitButton(keyword, payload string) {
	raw, label, _ := cutField(payload)
	if raw == "" {
		st.malformed(keyword)
		return
	}
	u, ok := ValidateURL(raw)
	if !ok {
		st.report(InvalidURL, raw)
		st.write(element("<p>", Escape(fmt.Sprintf(placeholderInvalidButton, raw)), "</p>"))
		return
	}
	if label == "" {
		label = u.String()
	}
	st.write(element("<p>", anchor(u, "button", Escape(label)), "</p>"))
}

func (st *renderState) emitBox(keyword, payload string) {
	pair, ok := openParen(payload)
	if !ok {
		st.malformed(keyword)
		return
	}
	inner := payload[len(pair.open):]
	closeAt := matchingParen(inner, pair)
	if closeAt < 0 {
		st.malformed(keyword)
		return
	}
	raw := strings.TrimSpace(inner[:closeAt])
	text := strings.TrimSpace(inner[closeAt+len(pair.close):])

	c, ok := NormalizeColor(raw)
	if !ok {
		st.report(InvalidColor, raw)
		body := Escape(fmt.Sprintf(placeholderInvalidColor, raw))
		if text != "" {
			body = join(body, Escape(" "), st.resolveInline(text))
		}
		st.write(element("<p>", body, "</p>"))
		return
	}
	style := fmt.Sprintf("background-color: %s; color: %s;", c, ContrastText(c))
	st.write(element(`<div class="box" style="`+Escape(style).String()+`">`, st.resolveInline(text), "</div>"))
}

func (st *renderState) emitImage(keyword, payload string) {
	raw, caption, _ := cutField(payload)
	if raw == "" {
		st.malformed(keyword)
		return
	}
	u, ok := ValidateURL(raw)
	if !ok {
		st.report(InvalidURL, raw)
		st.write(element("<p>", Escape(fmt.Sprintf(placeholderInvalidImage, raw)), "</p>"))
		return
	}
	if caption == "" {
		caption = defaultImageCaption
	}
	alt := Escape(caption)
	img := `<img src="` + Escape(u.String()).String() + `" alt="` + alt.String() + `" loading="lazy">`
	st.write(element("<figure>"+img+"<figcaption>", alt, "</figcaption></figure>"))
}

func (st *renderState) emitBreak(_, _ string) {
	st.write(voidElement("<br>"))
}

func (st *renderState) emitParagraph(_, line string) {
	st.write(element("<p>", st.resolveInline(line), "</p>"))
}

// malformed reports a directive with an unusable payload and renders the
// placeholder paragraph.
func (st *renderState) malformed(keyword string) {
	st.report(MalformedDirective, keyword)
	st.write(element("<p>", Escape(fmt.Sprintf(placeholderMalformed, keyword)), "</p>"))
}

// cutField splits s at the first separator run into a token and the
// trimmed remainder.
func cutField(s string) (token, rest string, found bool) {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if isSeparator(r) {
			return s[:i], strings.TrimSpace(s[i:]), true
		}
	}
	return s, "", false
}
