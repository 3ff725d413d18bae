package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/fagen/internal/config"
)

func TestConfigValidation(t *testing.T) {
	valid := func() *config.Config {
		cfg := config.NewDefaultConfig()
		cfg.Automaton = "nfa.txt"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name      string
		configMod func(*config.Config)
		wantErr   error
	}{
		{
			name:      "missing_automaton",
			configMod: func(c *config.Config) { c.Automaton = "" },
			wantErr:   config.ErrMissingAutomaton,
		},
		{
			name:      "negative_max_states",
			configMod: func(c *config.Config) { c.MaxStates = -1 },
			wantErr:   config.ErrInvalidMaxStates,
		},
		{
			name:      "huge_max_states",
			configMod: func(c *config.Config) { c.MaxStates = config.MaxMaxStates + 1 },
			wantErr:   config.ErrInvalidMaxStates,
		},
		{
			name: "bad_generated_name",
			configMod: func(c *config.Config) {
				c.Generate.Output = "out.go"
				c.Generate.Name = "has space"
			},
			wantErr: config.ErrInvalidName,
		},
		{
			name: "reserved_generated_name",
			configMod: func(c *config.Config) {
				c.Generate.Output = "out.go"
				c.Generate.Name = "word"
			},
			wantErr: config.ErrInvalidName,
		},
		{
			name: "bad_generated_package",
			configMod: func(c *config.Config) {
				c.Generate.Output = "out.go"
				c.Generate.Package = "1pkg"
			},
			wantErr: config.ErrInvalidPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.configMod(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestUncommonGeneratedNames(t *testing.T) {
	for _, name := range []string{"_x", "Élan"} {
		cfg := config.NewDefaultConfig()
		cfg.Automaton = "nfa.txt"
		cfg.Generate.Output = "out.go"
		cfg.Generate.Name = name
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestNameIgnoredWithoutOutput(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Automaton = "nfa.txt"
	cfg.Generate.Name = "not valid"
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
automaton: testdata/nfa.txt
words: [abba, ab]
separator: ""
determinize: true
max_states: 64
generate:
  output: gen/matcher.go
  name: Matcher
  test: true
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testdata/nfa.txt", cfg.Automaton)
	assert.Equal(t, []string{"abba", "ab"}, cfg.Words)
	assert.True(t, cfg.Determinize)
	assert.Equal(t, 64, cfg.MaxStates)
	assert.Equal(t, "gen/matcher.go", cfg.Generate.Output)
	assert.Equal(t, "Matcher", cfg.Generate.Name)
	assert.Equal(t, config.DefaultPackage, cfg.Generate.Package, "defaults survive partial files")
	assert.True(t, cfg.Generate.Test)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("automaton: a.txt\nwordz: [x]\n"), 0o644))
	_, err = config.Load(unknown)
	assert.ErrorContains(t, err, "wordz")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("automaton: [unterminated\n"), 0o644))
	_, err = config.Load(broken)
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Automaton = "nfa.txt"
	cfg.Words = []string{"ab"}
	cfg.Strict = true

	data, err := cfg.Encode()
	require.NoError(t, err)

	back := &config.Config{}
	require.NoError(t, back.Decode(data))
	assert.Equal(t, cfg, back)
}

func TestDeterminizes(t *testing.T) {
	cfg := config.NewDefaultConfig()
	assert.False(t, cfg.Determinizes())

	cfg.DFAOutput = "dfa.txt"
	assert.True(t, cfg.Determinizes())

	cfg = config.NewDefaultConfig()
	cfg.Generate.Output = "m.go"
	assert.True(t, cfg.Determinizes())
}

func TestDecodeEmpty(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NoError(t, cfg.Decode(nil))
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}
