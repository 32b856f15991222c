package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-markscript/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MARKSCRIPT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MARKSCRIPT_CONFIG: config file name or path
	CSS        string // MARKSCRIPT_CSS: extra CSS file or inline rules
	Highlight  string // MARKSCRIPT_HIGHLIGHT: chroma style name
	InputDir   string // MARKSCRIPT_INPUT_DIR: default input directory
	OutputDir  string // MARKSCRIPT_OUTPUT_DIR: default output directory
	PageSize   string // MARKSCRIPT_PAGE_SIZE: letter, a4, legal
	Timeout    string // MARKSCRIPT_TIMEOUT: PDF timeout, checked with the config
	LogFormat  string // MARKSCRIPT_LOG_FORMAT: text, json
	Workers    int    // MARKSCRIPT_WORKERS: parallel workers
}

// knownEnvVars lists valid MARKSCRIPT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MARKSCRIPT_CONFIG":     true,
	"MARKSCRIPT_CSS":        true,
	"MARKSCRIPT_HIGHLIGHT":  true,
	"MARKSCRIPT_INPUT_DIR":  true,
	"MARKSCRIPT_OUTPUT_DIR": true,
	"MARKSCRIPT_PAGE_SIZE":  true,
	"MARKSCRIPT_TIMEOUT":    true,
	"MARKSCRIPT_LOG_FORMAT": true,
	"MARKSCRIPT_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable MARKSCRIPT_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MARKSCRIPT_CONFIG"),
		CSS:        getenv("MARKSCRIPT_CSS"),
		Highlight:  getenv("MARKSCRIPT_HIGHLIGHT"),
		InputDir:   getenv("MARKSCRIPT_INPUT_DIR"),
		OutputDir:  getenv("MARKSCRIPT_OUTPUT_DIR"),
		PageSize:   getenv("MARKSCRIPT_PAGE_SIZE"),
		Timeout:    getenv("MARKSCRIPT_TIMEOUT"),
		LogFormat:  getenv("MARKSCRIPT_LOG_FORMAT"),
	}
	if workers := getenv("MARKSCRIPT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars reports unrecognized MARKSCRIPT_* variables.
// Helps catch typos like MARKSCRIPT_HILIGHT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are merged afterwards, giving flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	fill := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	fill(&cfg.Style.CSS, env.CSS)
	fill(&cfg.Style.Highlight, env.Highlight)
	fill(&cfg.Input.DefaultDir, env.InputDir)
	fill(&cfg.Output.DefaultDir, env.OutputDir)
	fill(&cfg.PDF.PageSize, env.PageSize)
	fill(&cfg.PDF.Timeout, env.Timeout)
}
