package pipeline

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-markscript/internal/markup"
)

var firstHeading = cascadia.MustCompile("h1")

// fragmentContext is the element fragments are parsed under.
var fragmentContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ExtractTitle returns the text content of the first level 1 heading in
// fragment, with whitespace collapsed. ok is false when there is none or
// it holds no text.
func ExtractTitle(fragment markup.HTML) (title string, ok bool) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment.String()), fragmentContext)
	if err != nil {
		return "", false
	}

	for _, n := range nodes {
		h1 := firstHeading.MatchFirst(n)
		if h1 == nil {
			continue
		}
		title = strings.Join(strings.Fields(textContent(h1)), " ")
		return title, title != ""
	}
	return "", false
}

// textContent concatenates the text nodes below n, dropping markup.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
