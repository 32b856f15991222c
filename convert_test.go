package markscript

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestConvert_Page(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		document       string
		wantTitle      string
		wantBackground string
		wantContain    []string
		wantNot        []string
	}{
		{
			name:           "empty document",
			document:       "",
			wantTitle:      "MarkScript Published Site",
			wantBackground: "#f9f9f9",
			wantContain:    []string{"<!DOCTYPE html>", `<html lang="ja">`, "background-color: #f9f9f9;"},
		},
		{
			name:           "title and background",
			document:       "背景 青\nタイトル お知らせ\n本文",
			wantTitle:      "お知らせ",
			wantBackground: "blue",
			wantContain:    []string{"<title>お知らせ</title>", "background-color: blue;", "<h1>お知らせ</h1>", "<p>本文</p>"},
		},
		{
			name:           "background on second line is text",
			document:       "タイトル T\n背景 赤",
			wantTitle:      "T",
			wantBackground: "#f9f9f9",
			wantContain:    []string{"<p>背景 赤</p>"},
			wantNot:        []string{"background-color: red;"},
		},
		{
			name:           "title text is plain",
			document:       "タイトル a & <b>",
			wantTitle:      "a & <b>",
			wantBackground: "#f9f9f9",
			wantContain:    []string{"<title>a &amp; &lt;b&gt;</title>"},
			wantNot:        []string{"&amp;amp;", "<b>"},
		},
		{
			name:           "box link uses the inline resolver",
			document:       "ボックス (purple) 埋め http://a.com click",
			wantTitle:      "MarkScript Published Site",
			wantBackground: "#f9f9f9",
			wantContain: []string{
				`<div class="box" style="background-color: purple; color: #fff;">`,
				`<a href="http://a.com/" target="_blank" rel="noopener noreferrer">click</a>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Convert(tt.document)
			if res.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", res.Title, tt.wantTitle)
			}
			if res.Background != tt.wantBackground {
				t.Errorf("Background = %q, want %q", res.Background, tt.wantBackground)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(res.HTML, want) {
					t.Errorf("HTML missing %q", want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(res.HTML, not) {
					t.Errorf("HTML unexpectedly contains %q", not)
				}
			}
			if !strings.Contains(res.HTML, res.Fragment) {
				t.Error("fragment is not part of the page")
			}
		})
	}
}

// scriptElements counts <script> start tags in a full page.
func scriptElements(t *testing.T, page string) int {
	t.Helper()

	n := 0
	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				t.Fatalf("tokenizing page: %v", z.Err())
			}
			return n
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "script" {
				n++
			}
		}
	}
}

func TestConvert_NoScriptSurvives(t *testing.T) {
	t.Parallel()

	payloads := []string{
		"<script>alert(1)</script>",
		`"><script>alert(1)</script>`,
		"</style><script>alert(1)</script>",
		"</title><script>alert(1)</script>",
	}
	templates := []string{
		"%s", "タイトル %s", "大 %s", "小 %s", "コピー %s", "ボタン https://x.com/ %s",
		"ボックス (red) %s", "引用 https://x.com/a.png %s", "色付 (red) %s",
		"枠文字 (red) %s", "埋め https://x.com/ %s", "`%s`", "背景 %s",
	}

	for _, tmpl := range templates {
		for _, payload := range payloads {
			doc := strings.ReplaceAll(tmpl, "%s", payload)
			if n := scriptElements(t, Convert(doc).HTML); n != 0 {
				t.Errorf("document %q produced %d script elements", doc, n)
			}
		}
	}
}

func TestConvert_Diagnostics(t *testing.T) {
	t.Parallel()

	res := Convert("ボタン ftp://x.com/ go\n色付 (nope!) t")
	if len(res.Diagnostics) != 2 {
		t.Fatalf("Diagnostics = %v, want 2", res.Diagnostics)
	}
	if res.Diagnostics[0].Kind != InvalidURL || res.Diagnostics[1].Kind != InvalidColor {
		t.Errorf("Diagnostics = %v", res.Diagnostics)
	}
	if !strings.Contains(res.HTML, "[無効なボタンURL: ftp://x.com/]") {
		t.Error("button placeholder missing from page")
	}
}

func TestConvert_Limits(t *testing.T) {
	t.Parallel()

	res := Convert(strings.Repeat("x\n", MaxLines+10))
	if got := strings.Count(res.Fragment, "<p>x</p>"); got != MaxLines {
		t.Errorf("rendered %d lines, want %d", got, MaxLines)
	}
}

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"赤", "red", true},
		{"#ABC", "#ABC", true},
		{"notacolor!", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeColor(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeColor(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"https://x.com/page", "https://x.com/page", true},
		{"http://x.com/a/../b", "", false},
		{"http://user:pw@x.com", "", false},
		{"ftp://x.com", "", false},
	}
	for _, tt := range tests {
		got, ok := ValidateURL(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ValidateURL(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	if got, want := EscapeHTML(`<a href="x">'&'</a>`), "&lt;a href=&#34;x&#34;&gt;&#39;&amp;&#39;&lt;/a&gt;"; got != want {
		t.Errorf("EscapeHTML() = %q, want %q", got, want)
	}
}
