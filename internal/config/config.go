// Package config loads txml.yaml, the project configuration of txmlc.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-txml/internal/txml"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "txml.yaml"

// Config represents the txml.yaml configuration
type Config struct {
	// Directive namespaces, for example "tiki" in tiki:if
	Prefixes []string `yaml:"prefixes,omitempty"`

	// Component library native tags are imported from
	Library string `yaml:"library,omitempty"`

	// Package runtime helpers are imported from
	RuntimeLibrary string `yaml:"runtimeLibrary,omitempty"`

	// Host tags; every other tag is a custom component
	NativeTags []string `yaml:"nativeTags,omitempty"`

	// Tags resolved with getComponentClass, mapped to their class path
	CustomComponents map[string]string `yaml:"customComponents,omitempty"`

	// Oldest txmlc release able to build this project, e.g. "v0.2.0"
	MinVersion string `yaml:"minVersion,omitempty"`

	// Build configuration
	Build *BuildConfig `yaml:"build,omitempty"`

	// Watch mode configuration
	Dev *DevConfig `yaml:"dev,omitempty"`
}

// BuildConfig contains batch compilation settings
type BuildConfig struct {
	// Extension of generated files, including the dot
	OutExt string `yaml:"outExt,omitempty"`

	// Files compiled concurrently; 0 means one per CPU
	Jobs int `yaml:"jobs,omitempty"`
}

// DevConfig contains watch mode settings
type DevConfig struct {
	// Live reload server address, empty to disable
	Addr string `yaml:"addr,omitempty"`

	// Quiet period after a change before recompiling, in milliseconds
	DebounceMS int `yaml:"debounceMs,omitempty"`
}

// Load reads the configuration at path. path is either a txml.yaml file or a
// directory holding one. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	configPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		configPath = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the configuration to txml.yaml in dir.
func Save(cfg *Config, dir string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	opts := txml.DefaultOptions()
	return &Config{
		Prefixes:         opts.Prefixes,
		Library:          opts.Library,
		RuntimeLibrary:   opts.RuntimeLibrary,
		NativeTags:       opts.NativeTags,
		CustomComponents: opts.CustomComponents,
		Build: &BuildConfig{
			OutExt: ".js",
		},
		Dev: &DevConfig{
			DebounceMS: 100,
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if len(cfg.Prefixes) == 0 {
		cfg.Prefixes = defaults.Prefixes
	}
	if cfg.Library == "" {
		cfg.Library = defaults.Library
	}
	if cfg.RuntimeLibrary == "" {
		cfg.RuntimeLibrary = defaults.RuntimeLibrary
	}
	if len(cfg.NativeTags) == 0 {
		cfg.NativeTags = defaults.NativeTags
	}
	if cfg.CustomComponents == nil {
		cfg.CustomComponents = defaults.CustomComponents
	}

	if cfg.Build == nil {
		cfg.Build = defaults.Build
	} else if cfg.Build.OutExt == "" {
		cfg.Build.OutExt = defaults.Build.OutExt
	}

	if cfg.Dev == nil {
		cfg.Dev = defaults.Dev
	} else if cfg.Dev.DebounceMS == 0 {
		cfg.Dev.DebounceMS = defaults.Dev.DebounceMS
	}
}

// Validate checks the configuration against the running txmlc version.
func (c *Config) Validate(version string) error {
	for _, p := range c.Prefixes {
		if p == "" || strings.ContainsAny(p, ": \t") {
			return fmt.Errorf("invalid directive prefix %q", p)
		}
	}
	if !strings.HasPrefix(c.Build.OutExt, ".") {
		return fmt.Errorf("build.outExt must start with a dot, got %q", c.Build.OutExt)
	}
	if c.Build.OutExt == ".txml" {
		return errors.New("build.outExt cannot be .txml")
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("build.jobs must not be negative, got %d", c.Build.Jobs)
	}
	if c.Dev.DebounceMS < 0 {
		return fmt.Errorf("dev.debounceMs must not be negative, got %d", c.Dev.DebounceMS)
	}

	if c.MinVersion == "" {
		return nil
	}
	if !semver.IsValid(c.MinVersion) {
		return fmt.Errorf("minVersion %q is not a semantic version", c.MinVersion)
	}
	// Development builds carry no release version and are not gated.
	if !semver.IsValid(version) {
		return nil
	}
	if semver.Compare(version, c.MinVersion) < 0 {
		return fmt.Errorf("project requires txmlc %s or newer, running %s", c.MinVersion, version)
	}
	return nil
}

// Options converts the configuration to compiler options.
func (c *Config) Options() *txml.Options {
	return &txml.Options{
		Prefixes:         c.Prefixes,
		Library:          c.Library,
		RuntimeLibrary:   c.RuntimeLibrary,
		NativeTags:       c.NativeTags,
		CustomComponents: c.CustomComponents,
	}
}
