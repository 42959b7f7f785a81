// Package cliconfig loads the optional .cypherro.yaml project config,
// searched for by walking upward from a starting directory the same way
// the teacher's own .scaf.yaml discovery does.
package cliconfig

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigNames are the file names FindConfig looks for, checked in
// order at each directory level.
var DefaultConfigNames = []string{".cypherro.yaml", ".cypherro.yml"}

// ErrConfigNotFound is returned by FindConfig/Load when no config file is
// found anywhere between dir and the filesystem root.
var ErrConfigNotFound = errors.New("cliconfig: no .cypherro.yaml found")

// Config is the shape of .cypherro.yaml.
type Config struct {
	// Rule is the default start rule for `cypherro parse` when --rule is
	// not given on the command line.
	Rule string `yaml:"rule,omitempty"`

	// Lint configures the `cypherro lint` subcommand's default directory
	// walk.
	Lint LintConfig `yaml:"lint,omitempty"`

	// Color forces colorized caret diagnostics on or off, overriding the
	// TTY auto-detection.
	Color *bool `yaml:"color,omitempty"`
}

// LintConfig holds `cypherro lint`'s defaults.
type LintConfig struct {
	Root     string   `yaml:"root,omitempty"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// Load searches upward from dir for a config file and parses it. It
// returns ErrConfigNotFound if nothing is found before the filesystem
// root.
func Load(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// FindConfig walks upward from dir looking for one of DefaultConfigNames.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", ErrConfigNotFound
		}
		d = parent
	}
}

// LoadFile parses a config file at an exact path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
