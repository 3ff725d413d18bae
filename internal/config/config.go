// Package config holds the run configuration of the fagen command. Values
// come from an optional YAML file and are then overridden by flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/fagen/internal/codegen"
)

type (
	// Config describes one fagen run
	Config struct {
		Automaton   string   `yaml:"automaton"`
		Words       []string `yaml:"words,omitempty"`
		Separator   string   `yaml:"separator,omitempty"`
		Determinize bool     `yaml:"determinize,omitempty"`
		Powerset    bool     `yaml:"powerset,omitempty"`
		Analyze     bool     `yaml:"analyze,omitempty"`
		DFAOutput   string   `yaml:"dfa_output,omitempty"`
		Strict      bool     `yaml:"strict,omitempty"`
		MaxStates   int      `yaml:"max_states,omitempty"`
		Verbose     bool     `yaml:"verbose,omitempty"`

		Generate Generate `yaml:"generate,omitempty"`
	}

	// Generate configures Go code generation for the determinized automaton
	Generate struct {
		Output  string `yaml:"output,omitempty"`
		Name    string `yaml:"name,omitempty"`
		Package string `yaml:"package,omitempty"`
		Test    bool   `yaml:"test,omitempty"`
	}
)

const (
	DefaultName    = "Automaton"
	DefaultPackage = "automaton"
	MaxMaxStates   = 1 << 24
)

// Validation errors returned by Validate
var (
	ErrMissingAutomaton = errors.New("automaton file is required")
	ErrInvalidMaxStates = errors.New("max states must be between 0 and 16777216")
	ErrInvalidName      = errors.New("generated name must be a non-reserved Go identifier")
	ErrInvalidPackage   = errors.New("generated package must be a Go identifier")
)

// NewDefaultConfig returns a configuration with defaults for every
// optional setting
func NewDefaultConfig() *Config {
	return &Config{
		Generate: Generate{
			Name:    DefaultName,
			Package: DefaultPackage,
		},
	}
}

// Load reads a YAML run file on top of the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := NewDefaultConfig()
	if err := cfg.Decode(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML data into c
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml decode: %w", err)
	}
	return nil
}

// Encode renders c as YAML
func (c *Config) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if c.Automaton == "" {
		return ErrMissingAutomaton
	}
	if c.MaxStates < 0 || c.MaxStates > MaxMaxStates {
		return ErrInvalidMaxStates
	}
	if c.Generate.Output != "" {
		if !token.IsIdentifier(c.Generate.Name) || codegen.IsReserved(c.Generate.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, c.Generate.Name)
		}
		if !token.IsIdentifier(c.Generate.Package) {
			return fmt.Errorf("%w: %q", ErrInvalidPackage, c.Generate.Package)
		}
	}
	return nil
}

// Determinizes reports whether the run needs a DFA
func (c *Config) Determinizes() bool {
	return c.Determinize || c.Powerset || c.DFAOutput != "" || c.Generate.Output != ""
}
