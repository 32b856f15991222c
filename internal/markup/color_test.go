package markup

import "testing"

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   Color
		wantOK bool
	}{
		{name: "localized red", raw: "赤", want: "red", wantOK: true},
		{name: "localized blue", raw: "青", want: "blue", wantOK: true},
		{name: "localized katakana", raw: "オレンジ", want: "orange", wantOK: true},
		{name: "hex3 keeps case", raw: "#ABC", want: "#ABC", wantOK: true},
		{name: "hex6 lowercase", raw: "#a1b2c3", want: "#a1b2c3", wantOK: true},
		{name: "rgb", raw: "rgb(255, 0, 0)", want: "rgb(255, 0, 0)", wantOK: true},
		{name: "rgba with fraction", raw: "rgba(0,0,0,.5)", want: "rgba(0,0,0,.5)", wantOK: true},
		{name: "rgb percentages", raw: "rgb(100%, 50%, 0%)", want: "rgb(100%, 50%, 0%)", wantOK: true},
		{name: "hsl", raw: "hsl(120, 100%, 50%)", want: "hsl(120, 100%, 50%)", wantOK: true},
		{name: "hsla with deg", raw: "hsla(120deg, 50%, 50%, 1)", want: "hsla(120deg, 50%, 50%, 1)", wantOK: true},
		{name: "bare keyword", raw: "rebeccapurple", want: "rebeccapurple", wantOK: true},
		{name: "punctuation rejected", raw: "notacolor!"},
		{name: "empty rejected", raw: ""},
		{name: "hex4 rejected", raw: "#ABCD"},
		{name: "hex without hash rejected", raw: "ABC"},
		{name: "uppercase keyword rejected", raw: "Red"},
		{name: "keyword with digits rejected", raw: "red1"},
		{name: "style breakout rejected", raw: "red;background:url(x)"},
		{name: "quote breakout rejected", raw: `red" onclick="x`},
		{name: "rgb with expression rejected", raw: "rgb(expression(1),0,0)"},
		{name: "unknown localized name rejected", raw: "虹"},
		{name: "surrounding spaces rejected", raw: " red "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeColor(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeColor(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NormalizeColor(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeColor_LengthCap(t *testing.T) {
	t.Parallel()

	long := make([]byte, MaxColorLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, ok := NormalizeColor(string(long)); ok {
		t.Errorf("NormalizeColor accepted a %d-byte keyword", len(long))
	}
}

func TestContrastText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color Color
		want  Color
	}{
		{color: "purple", want: lightText},
		{color: "navy", want: lightText},
		{color: "black", want: lightText},
		{color: "yellow", want: darkText},
		{color: "white", want: darkText},
		{color: "#000", want: lightText},
		{color: "#FFFFFF", want: darkText},
		{color: "rgb(0, 0, 139)", want: lightText},
		{color: "rgb(100%, 100%, 100%)", want: darkText},
		{color: "hsl(60, 100%, 50%)", want: darkText},
		{color: "hsl(240, 100%, 25%)", want: lightText},
		{color: "notinthetable", want: darkText},
	}

	for _, tt := range tests {
		t.Run(string(tt.color), func(t *testing.T) {
			t.Parallel()

			if got := ContrastText(tt.color); got != tt.want {
				t.Errorf("ContrastText(%q) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestColorKeywordsAreValidCSS(t *testing.T) {
	t.Parallel()

	for name, c := range colorKeywords {
		if _, _, _, ok := rgbOf(c); !ok {
			t.Errorf("colorKeywords[%q] = %q is not a known CSS color", name, c)
		}
	}
}
