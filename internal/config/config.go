package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"
)

// DefaultFilename is the config file looked up when none is given.
const DefaultFilename = "swiftgraph.yml"

// Config is the parsed config file.
type Config struct {
	// Schema and Queries are glob patterns for the schema definition files
	// and the operation documents.
	Schema  []string `yaml:"schema"`
	Queries []string `yaml:"queries"`

	// Output is the generated Swift file; empty means standard output.
	Output string `yaml:"output,omitempty"`

	Swift SwiftConfig `yaml:"swift,omitempty"`
	Otel  OtelConfig  `yaml:"otel,omitempty"`
}

// SwiftConfig holds the options steering the generated Swift surface.
type SwiftConfig struct {
	Namespace                string `yaml:"namespace,omitempty"`
	PassthroughCustomScalars bool   `yaml:"passthrough_custom_scalars,omitempty"`
	CustomScalarsPrefix      string `yaml:"custom_scalars_prefix,omitempty"`
	OperationIDs             bool   `yaml:"operation_ids,omitempty"`
}

// OtelConfig enables trace export when Endpoint is set.
type OtelConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Service  string `yaml:"service,omitempty"`
}

// Load reads and parses the config file. Environment variable references in
// the file are expanded before parsing, and unknown keys are rejected.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(content)))), yaml.DisallowUnknownField())
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", filename, err)
	}

	return &c, nil
}

// Validate checks the config after any command-line overrides are applied.
func (c *Config) Validate() error {
	if len(c.Schema) == 0 {
		return errors.New("'schema' not specified; list at least one schema file or glob")
	}
	if len(c.Queries) == 0 {
		return errors.New("'queries' not specified; list at least one operation document or glob")
	}
	return nil
}

// SchemaFiles expands the schema globs into a deduplicated, ordered file
// list. A pattern matching nothing is an error.
func (c *Config) SchemaFiles() ([]string, error) {
	return expandGlobs(c.Schema)
}

// QueryFiles expands the query globs the same way.
func (c *Config) QueryFiles() ([]string, error) {
	return expandGlobs(c.Queries)
}

func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}
