package markup

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a validated CSS color value. It is produced only by
// NormalizeColor and contains no characters that could leave a style
// attribute.
type Color string

// String returns the CSS text of the color.
func (c Color) String() string { return string(c) }

// MaxColorLength bounds the raw color token accepted by NormalizeColor.
const MaxColorLength = 64

// colorKeywords maps the authoring-language color names to CSS keywords.
// Read-only after initialization.
var colorKeywords = map[string]Color{
	"赤":    "red",
	"青":    "blue",
	"緑":    "green",
	"黄":    "yellow",
	"黄色":   "yellow",
	"黒":    "black",
	"白":    "white",
	"紫":    "purple",
	"橙":    "orange",
	"オレンジ": "orange",
	"桃":    "pink",
	"ピンク":  "pink",
	"灰":    "gray",
	"灰色":   "gray",
	"茶":    "brown",
	"茶色":   "brown",
	"水色":   "skyblue",
	"金":    "gold",
	"銀":    "silver",
	"紺":    "navy",
}

// Precompiled color patterns.
var (
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

	rgbColorPattern = regexp.MustCompile(
		`^rgba?\(\s*(\d{1,3}%?)\s*,\s*(\d{1,3}%?)\s*,\s*(\d{1,3}%?)\s*(?:,\s*(?:0|1|0?\.\d+|\d{1,3}%)\s*)?\)$`)

	hslColorPattern = regexp.MustCompile(
		`^hsla?\(\s*(\d{1,3})(?:deg)?\s*,\s*(\d{1,3})%\s*,\s*(\d{1,3})%\s*(?:,\s*(?:0|1|0?\.\d+|\d{1,3}%)\s*)?\)$`)

	keywordColorPattern = regexp.MustCompile(`^[a-z]+$`)
)

// NormalizeColor validates a raw color token. Localized names are looked
// up verbatim and mapped to their CSS keyword; hex, rgb(a), hsl(a), and
// bare lowercase keywords are returned unchanged. ok is false for anything
// else. No default is ever substituted.
func NormalizeColor(raw string) (Color, bool) {
	if raw == "" || len(raw) > MaxColorLength {
		return "", false
	}
	if c, found := colorKeywords[raw]; found {
		return c, true
	}
	switch {
	case hexColorPattern.MatchString(raw),
		rgbColorPattern.MatchString(raw),
		hslColorPattern.MatchString(raw),
		keywordColorPattern.MatchString(raw):
		return Color(raw), true
	}
	return "", false
}

// Text colors chosen for contrast against a box background.
const (
	darkText  Color = "#222"
	lightText Color = "#fff"
)

// ContrastText returns a readable text color for content drawn on c.
// Keywords unknown to the CSS named color table get dark text.
func ContrastText(c Color) Color {
	r, g, b, ok := rgbOf(c)
	if !ok {
		return darkText
	}
	if relativeLuminance(r, g, b) > 0.179 {
		return darkText
	}
	return lightText
}

// rgbOf resolves a validated color to 8-bit channels.
func rgbOf(c Color) (r, g, b uint8, ok bool) {
	s := string(c)
	switch {
	case hexColorPattern.MatchString(s):
		return parseHex(s[1:])
	case rgbColorPattern.MatchString(s):
		m := rgbColorPattern.FindStringSubmatch(s)
		return rgbChannel(m[1]), rgbChannel(m[2]), rgbChannel(m[3]), true
	case hslColorPattern.MatchString(s):
		m := hslColorPattern.FindStringSubmatch(s)
		h, _ := strconv.Atoi(m[1])
		sat, _ := strconv.Atoi(m[2])
		l, _ := strconv.Atoi(m[3])
		r, g, b := hslToRGB(float64(h%360), clampUnit(float64(sat)/100), clampUnit(float64(l)/100))
		return r, g, b, true
	}
	named, found := colornames.Map[s]
	if !found {
		return 0, 0, 0, false
	}
	return named.R, named.G, named.B, true
}

func parseHex(digits string) (r, g, b uint8, ok bool) {
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// rgbChannel converts "128" or "50%" to a clamped 8-bit channel.
func rgbChannel(s string) uint8 {
	if pct, found := strings.CutSuffix(s, "%"); found {
		n, _ := strconv.Atoi(pct)
		return uint8(math.Round(clampUnit(float64(n)/100) * 255))
	}
	n, _ := strconv.Atoi(s)
	return uint8(min(n, 255))
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return to8(rf), to8(gf), to8(bf)
}

// relativeLuminance implements the WCAG 2 definition.
func relativeLuminance(r, g, b uint8) float64 {
	lin := func(c uint8) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}
