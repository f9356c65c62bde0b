// Package config resolves command-line flags from an optional YAML file and
// loads .env files into the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/logger"
)

// Paths lists the config files consulted, lowest precedence last.
func Paths(extra ...string) []string {
	paths := make([]string, 0, len(extra)+1)
	for _, p := range extra {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return append(paths, constants.DefaultConfigFile)
}

// YAMLLoader is a kong.ConfigurationLoader. Top-level keys match flag names
// with dashes or underscores; dotted flag names may also be nested maps.
//
//	config: ~/.config/mindflow/mindflow.db
//	debug: true
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		return lookup(values, flag.Name), nil
	}
	return f, nil
}

func lookup(values map[string]any, name string) any {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := values[key]; ok {
			return v
		}
	}

	var raw any = values
	for _, part := range strings.Split(strings.ReplaceAll(name, "-", "_"), ".") {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil
		}
		if raw, ok = m[part]; !ok {
			return nil
		}
	}
	return raw
}

// LoadEnv reads the given .env files into the environment. Missing files are
// skipped and variables already set are left alone.
func LoadEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	logger.Debug("Loaded env files", "files", present)
	return nil
}
