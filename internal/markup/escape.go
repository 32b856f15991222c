package markup

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/microcosm-cc/bluemonday"
)

// HTML is a fragment of markup that is safe to emit verbatim. It can only
// be obtained from Escape, the builders in this package, or the safehtml
// package itself.
type HTML = safehtml.HTML

// Escape converts plain text to HTML by replacing & < > " and ' with
// character references. The result is valid both as element text and as a
// double-quoted attribute value.
func Escape(text string) HTML {
	return safehtml.HTMLEscaped(text)
}

// join concatenates fragments without inserting separators.
func join(parts ...HTML) HTML {
	return safehtml.HTMLConcat(parts...)
}

// element wraps inner in an opening and closing tag. The open tag must be
// a literal or built from escaped attribute values.
func element(open string, inner HTML, closeTag string) HTML {
	return join(
		uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(open),
		inner,
		uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(closeTag),
	)
}

// voidElement returns a tag that has no content, such as <br>.
func voidElement(tag string) HTML {
	return element(tag, HTML{}, "")
}

// codePolicy admits the markup chroma writes with inline styles and
// nothing else.
var codePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("pre", "code", "span")
	p.AllowAttrs("style").OnElements("pre", "span")
	return p
}()

// sanitizeCode filters highlighter output through codePolicy.
func sanitizeCode(raw string) HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(codePolicy.Sanitize(raw))
}
