package main

import (
	"fmt"

	"github.com/alnah/go-markscript/internal/yamlutil"
)

// runConfigCmd prints the configuration that convert would use, after
// the config file and MARKSCRIPT_* variables are applied.
func runConfigCmd(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := resolveConfig(&convertFlags{common: *flags}, envCfg)
	if err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
