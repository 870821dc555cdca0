// Package config provides YAML configuration parsing for PlotBoard.
//
// This package enables running PlotBoard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// Every field is optional; an empty file yields the same setup as
// plotboard.New() with no options.
//
// Example configuration:
//
//	title: Candy Power Ranking
//	port: 8050
//	debug: false
//
//	dataset:
//	  path: ${DATA_DIR:-.}/candy.gob
//	  x: sugarpercent
//	  y: 1
//	  label: competitorname
//	  hover: [pricepercent]
//
//	axes:
//	  x_title: Sugar
//	  y_title: Win %
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/plotboard"
)

// Log formats accepted by the log_format field.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the root configuration structure for PlotBoard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load], [Parse] or [Default] to create a Config.
type Config struct {
	// Title is the chart and page title. Defaults to "Interactive Scatter Plot".
	Title string `yaml:"title"`

	// Host is the listen interface. Defaults to 127.0.0.1.
	Host string `yaml:"host"`

	// Port is the HTTP server port. Defaults to 8050.
	Port int `yaml:"port"`

	// Debug enables request logging and debug-level logs. Defaults to true;
	// set "debug: false" to turn it off.
	Debug bool `yaml:"debug"`

	// LogFormat is "text" (default) or "json".
	LogFormat string `yaml:"log_format"`

	// PlotlyURL overrides the Plotly script location.
	PlotlyURL string `yaml:"plotly_url"`

	// Dataset selects the input file and its columns.
	Dataset DatasetConfig `yaml:"dataset"`

	// Axes sets the axis titles.
	Axes AxesConfig `yaml:"axes"`
}

// DatasetConfig selects the dataset file and which columns to plot.
type DatasetConfig struct {
	// Path is the dataset file. Defaults to "plotly_data.gob".
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Path string `yaml:"path"`

	// X is the X axis column, by index or name. Defaults to 0.
	X ColumnRef `yaml:"x"`

	// Y is the Y axis column, by index or name. Defaults to 1.
	Y ColumnRef `yaml:"y"`

	// Label is the hover label column. Defaults to "competitorname".
	Label ColumnRef `yaml:"label"`

	// Hover lists extra columns shown on hover after the label.
	Hover []ColumnRef `yaml:"hover"`
}

// AxesConfig sets the axis titles.
type AxesConfig struct {
	XTitle string `yaml:"x_title"`
	YTitle string `yaml:"y_title"`
}

// ColumnRef is a column reference that accepts either an integer index or a
// column name in YAML:
//
//	x: 0
//	x: sugarpercent
//
// A quoted number ("0") is treated as a name.
type ColumnRef struct {
	Index int
	Name  string
	set   bool
}

// IsSet reports whether the reference appeared in the configuration.
func (c ColumnRef) IsSet() bool {
	return c.set
}

// String returns the name, or the index for positional references.
func (c ColumnRef) String() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(c.Index)
}

// Ref converts the reference to its SDK form.
func (c ColumnRef) Ref() plotboard.ColumnRef {
	if c.Name != "" {
		return plotboard.ColumnNamed(c.Name)
	}
	return plotboard.ColumnAt(c.Index)
}

// UnmarshalYAML implements yaml.Unmarshaler for ColumnRef.
func (c *ColumnRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("column must be an index or a name, got %v", node.Kind)
	}

	if node.Tag == "!!int" {
		var i int
		if err := node.Decode(&i); err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("column index cannot be negative, got %d", i)
		}
		*c = ColumnRef{Index: i, set: true}
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("column name cannot be empty")
	}
	*c = ColumnRef{Name: s, set: true}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return submatches[3]
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := newConfig()
	cfg.applyDefaults()
	return &cfg
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies defaults and validates.
//
// Unknown fields are rejected so that typos do not silently fall back to
// defaults.
func Parse(data []byte) (*Config, error) {
	// fields absent from the document keep their seeded values
	cfg := newConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document decodes to io.EOF and means "all defaults"
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newConfig returns a Config holding the defaults whose zero value is a
// legitimate setting.
func newConfig() Config {
	return Config{Debug: true}
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = plotboard.DefaultTitle
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8050
	}
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	if c.PlotlyURL == "" {
		c.PlotlyURL = plotboard.DefaultPlotlyURL
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = plotboard.DefaultDatasetPath
	}
	if !c.Dataset.X.IsSet() {
		c.Dataset.X = ColumnRef{Index: 0, set: true}
	}
	if !c.Dataset.Y.IsSet() {
		c.Dataset.Y = ColumnRef{Index: 1, set: true}
	}
	if !c.Dataset.Label.IsSet() {
		c.Dataset.Label = ColumnRef{Name: plotboard.DefaultLabelColumn, set: true}
	}
	if c.Axes.XTitle == "" {
		c.Axes.XTitle = "X-axis"
	}
	if c.Axes.YTitle == "" {
		c.Axes.YTitle = "Y-axis"
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat)
	}

	if _, err := url.Parse(c.PlotlyURL); err != nil {
		return fmt.Errorf("plotly_url: %w", err)
	}

	expanded, err := expandEnvVars(c.Dataset.Path)
	if err != nil {
		return fmt.Errorf("dataset.path: %w", err)
	}
	if expanded == "" {
		return errors.New("dataset.path is empty after environment expansion")
	}
	c.Dataset.Path = expanded

	return nil
}
