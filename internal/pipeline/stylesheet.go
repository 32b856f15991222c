package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// MaxStylesheetSize caps user CSS accepted by PrepareStylesheet.
const MaxStylesheetSize = 256 << 10

// Sentinel errors for stylesheet checks.
var (
	ErrInvalidCSS     = errors.New("invalid stylesheet")
	ErrCSSTooLarge    = errors.New("stylesheet too large")
	ErrCSSExternalRef = errors.New("stylesheet references external content")
)

// blockedAtRules load external content, which a self-contained page must not.
var blockedAtRules = map[string]bool{
	"import":    true,
	"namespace": true,
}

// blockedValueTokens are scriptable or fetching constructs in declaration
// values. data: URLs stay allowed.
var blockedValueTokens = []string{
	"expression(",
	"javascript:",
	"vbscript:",
	"-moz-binding",
}

// PrepareStylesheet parses user CSS, rejects rules that would pull in
// external content or script, and returns it ready for the page.
// An empty input returns an empty string.
func PrepareStylesheet(custom string) (string, error) {
	if strings.TrimSpace(custom) == "" {
		return "", nil
	}
	if len(custom) > MaxStylesheetSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrCSSTooLarge, len(custom), MaxStylesheetSize)
	}

	sheet, err := parser.Parse(custom)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCSS, err)
	}
	if err := checkRules(sheet.Rules); err != nil {
		return "", err
	}
	return sanitizeCSS(custom), nil
}

func checkRules(rules []*css.Rule) error {
	for _, rule := range rules {
		if rule.Kind == css.AtRule {
			name := strings.ToLower(strings.TrimPrefix(rule.Name, "@"))
			if blockedAtRules[name] {
				return fmt.Errorf("%w: @%s", ErrCSSExternalRef, name)
			}
		}
		for _, decl := range rule.Declarations {
			if err := checkValue(decl.Property, decl.Value); err != nil {
				return err
			}
		}
		if err := checkRules(rule.Rules); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(property, value string) error {
	lower := strings.ToLower(strings.Join(strings.Fields(value), ""))
	for _, token := range blockedValueTokens {
		if strings.Contains(lower, token) {
			return fmt.Errorf("%w: %s: %s", ErrInvalidCSS, property, value)
		}
	}
	if strings.ToLower(property) == "behavior" {
		return fmt.Errorf("%w: %s", ErrInvalidCSS, property)
	}
	for rest := lower; ; {
		i := strings.Index(rest, "url(")
		if i < 0 {
			return nil
		}
		rest = rest[i+len("url("):]
		target := strings.TrimLeft(rest, `"'`)
		if !strings.HasPrefix(target, "data:") && !strings.HasPrefix(target, "#") {
			return fmt.Errorf("%w: %s: %s", ErrCSSExternalRef, property, value)
		}
	}
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}
