// Package config loads the optional YAML configuration of the markscript
// CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-markscript/internal/fileutil"
	"github.com/alnah/go-markscript/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config directory searched for
// named configs.
const AppDir = "go-markscript"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleNameLength   = 64
	MaxLangLength        = 35 // BCP 47 tags in practice
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
	MaxTimeoutLength     = 20
	MaxInlineCSSLength   = 256 << 10
)

// Config holds the CLI defaults read from a config file.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	PDF    PDFConfig    `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// StyleConfig defines page styling.
type StyleConfig struct {
	Name      string `yaml:"name"`      // base style asset (empty = "default")
	CSS       string `yaml:"css"`       // extra CSS: path to a .css file or inline rules
	Highlight string `yaml:"highlight"` // chroma style for code blocks (empty = plain)
	Lang      string `yaml:"lang"`      // page lang attribute (empty = "ja")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines PDF export.
type PDFConfig struct {
	Enabled     bool    `yaml:"enabled"`
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
	Timeout     string  `yaml:"timeout"`     // Go duration, e.g. "45s" (default: 30s)
}

// TimeoutDuration returns the parsed PDF timeout, or 0 when unset.
// Validate has already rejected unparsable values.
func (p PDFConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(p.Timeout)
	return d
}

// Validate checks field lengths and enumerated values. Called by
// LoadConfig; callers that build a Config by hand should call it too.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style.name", c.Style.Name, MaxStyleNameLength},
		{"style.css", c.Style.CSS, MaxInlineCSSLength},
		{"style.highlight", c.Style.Highlight, MaxStyleNameLength},
		{"style.lang", c.Style.Lang, MaxLangLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
		{"pdf.orientation", c.PDF.Orientation, MaxOrientationLength},
		{"pdf.timeout", c.PDF.Timeout, MaxTimeoutLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Orientation != "" {
		switch strings.ToLower(c.PDF.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: pdf.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.PDF.Orientation)
		}
	}
	if c.PDF.Margin != 0 && (c.PDF.Margin < 0.25 || c.PDF.Margin > 3) {
		return fmt.Errorf("%w: pdf.margin %.2f (must be between 0.25 and 3)", ErrInvalidValue, c.PDF.Margin)
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.PDF.Timeout)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field falls back to
// the converter's own default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
