package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/tmscope/internal"
	tt "github.com/gnolang/tmscope/internal/types"
)

// DefaultConfigFile is read when no configuration path is given.
const DefaultConfigFile = ".tmscope.yaml"

// Config represents the overall configuration of a tmscope run.
type Config struct {
	Name string `yaml:"name"`
	// Grammars are extra grammar documents loaded after the built-in ones.
	Grammars  []string `yaml:"grammars,omitempty"`
	Style     string   `yaml:"style,omitempty"`
	Formatter string   `yaml:"formatter,omitempty"`
	// MatchTimeout bounds a single pattern search. Zero means no limit.
	MatchTimeout time.Duration `yaml:"matchTimeout,omitempty"`
	// MaxCaptureDepth bounds nested capture tokenization; unset keeps the tokenizer default.
	MaxCaptureDepth *int                     `yaml:"maxCaptureDepth,omitempty"`
	CacheDir        string                   `yaml:"cacheDir,omitempty"`
	Rules           map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig is the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:         "tmscope",
		Style:        "monokai",
		Formatter:    "terminal256",
		MatchTimeout: 2 * time.Second,
		Rules:        internal.DefaultRules(),
	}
}

// LoadConfig reads a configuration file over the defaults. An empty path
// reads DefaultConfigFile if it exists.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	optional := path == ""
	if optional {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if optional && errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return config, nil
}

// Write encodes the configuration as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
