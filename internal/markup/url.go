package markup

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// MaxURLLength is the maximum length of an accepted URL, before and after
// canonicalization.
const MaxURLLength = 2048

// hostProfile maps hosts for lookup like idna.Lookup but without the STD3
// restriction, so labels such as "my_host" are accepted.
var hostProfile = idna.New(idna.MapForLookup(), idna.BidiRule(), idna.StrictDomainName(false))

// URL is a validated absolute http or https URL in canonical form.
// It is produced only by ValidateURL.
type URL string

// String returns the canonical URL text.
func (u URL) String() string { return string(u) }

// ValidateURL checks a raw URL token and returns its canonical form.
//
// A URL is rejected when it contains whitespace, control characters or any
// of < > " ' `, fails to parse, uses a scheme other than http or https,
// carries credentials or an explicit port, has a ".." path segment, or is
// longer than MaxURLLength. The returned value is the parser's serialization,
// never the raw input.
func ValidateURL(raw string) (URL, bool) {
	if raw == "" || len(raw) > MaxURLLength {
		return "", false
	}
	if strings.ContainsFunc(raw, unsafeURLRune) {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Opaque != "" || u.User != nil {
		return "", false
	}
	if u.Port() != "" || strings.HasSuffix(u.Host, ":") {
		return "", false
	}
	if hasDotDotSegment(u.Path) || hasDotDotSegment(u.EscapedPath()) {
		return "", false
	}

	host, ok := canonicalHost(u.Hostname())
	if !ok {
		return "", false
	}
	u.Host = host
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	u.RawQuery = escapeNonASCII(u.RawQuery)

	canonical := u.String()
	if len(canonical) > MaxURLLength {
		return "", false
	}
	return URL(canonical), true
}

// unsafeURLRune reports characters that could break out of an attribute
// or tag, plus whitespace and control characters.
func unsafeURLRune(r rune) bool {
	switch r {
	case '<', '>', '"', '\'', '`':
		return true
	}
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

func hasDotDotSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// canonicalHost lowercases the host and converts internationalized names
// to their ASCII form. IP literals are returned as-is.
func canonicalHost(host string) (string, bool) {
	if host == "" {
		return "", false
	}
	if strings.Contains(host, ":") {
		// IPv6 literal; url.Parse already validated the brackets.
		return "[" + strings.ToLower(host) + "]", true
	}
	ascii, err := hostProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return "", false
	}
	return ascii, true
}

// escapeNonASCII percent-encodes bytes outside ASCII. Existing escapes and
// ASCII delimiters are left alone.
func escapeNonASCII(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}
