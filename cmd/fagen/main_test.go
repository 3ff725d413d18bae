package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"abba"},
			expected: "abba",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"abba", "a b", "x,y"},
			expected: "abba, a b, x,y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	if err := flags.Set("abba"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != "abba" {
		t.Errorf("Set() = %v, want [\"abba\"]", flags)
	}

	if err := flags.Set(""); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "" {
		t.Errorf("Set() = %v, want [\"abba\", \"\"]", flags)
	}
}

const scenario = `a b
q0 q1
q1
q0
q0 a q1
q1 b q1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunWords(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	stdout, _, err := runCLI(t, "-automaton", path, "-word", "ab", "-word", "a", "-word", "b", "-word", "ac", "abbb")
	require.NoError(t, err)
	assert.Equal(t, "ab: ACCEPTED\na: ACCEPTED\nb: REJECTED\nac: INVALID\nabbb: ACCEPTED\n", stdout)
}

func TestRunSeparator(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	stdout, _, err := runCLI(t, "-automaton", path, "-sep", ",", "-word", "a,b,b", "-word", "ab")
	require.NoError(t, err)
	assert.Equal(t, "a,b,b: ACCEPTED\nab: INVALID\n", stdout)
}

func TestRunDeterminize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	stdout, _, err := runCLI(t, "-automaton", path, "-determinize")
	require.NoError(t, err)

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "a b", lines[0])
	assert.Equal(t, "{q1}", lines[2])
	assert.Equal(t, "{q0}", lines[3])
	assert.Contains(t, stdout, "{q0} a {q1}\n")
	assert.Contains(t, stdout, "{q0} b {}\n")
	assert.Contains(t, stdout, "{} a {}\n")
}

func TestRunDFAOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nfa.txt", "a\np q r\nq r\np\np a q\np a r\n")
	out := filepath.Join(dir, "dfa.txt")

	stdout, _, err := runCLI(t, "-automaton", path, "-dfa-out", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	dfa, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(dfa), "{p} a {q,r}\n")

	// the written DFA loads back and accepts the same words
	stdout, _, err = runCLI(t, "-automaton", out, "-word", "a", "-word", "aa")
	require.NoError(t, err)
	assert.Equal(t, "a: ACCEPTED\naa: REJECTED\n", stdout)
}

func TestRunPowerset(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	stdout, _, err := runCLI(t, "-automaton", path, "-powerset")
	require.NoError(t, err)
	assert.Contains(t, stdout, "{q0,q1} a {q1}\n")
}

func TestRunMaxStates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	_, _, err := runCLI(t, "-automaton", path, "-determinize", "-max-states", "2")
	assert.ErrorContains(t, err, "state limit")
}

func TestRunDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario+"q1 b\n")

	stdout, stderr, err := runCLI(t, "-automaton", path, "-word", "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab: ACCEPTED\n", stdout)
	assert.Contains(t, stderr, "warning: line 7")

	_, _, err = runCLI(t, "-automaton", path, "-strict", "-word", "ab")
	assert.Error(t, err)
}

func TestRunVerbose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	_, stderr, err := runCLI(t, "-automaton", path, "-verbose", "-word", "ac", "-determinize")
	require.NoError(t, err)
	assert.Contains(t, stderr, "=== Loading ===")
	assert.Contains(t, stderr, "2 states, 2 symbols, 2 transitions")
	assert.Contains(t, stderr, `"c" is not in the alphabet`)
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nfa.txt", scenario)
	output := filepath.Join(dir, "matcher.go")

	_, stderr, err := runCLI(t, "-automaton", path, "-output", output, "-name", "Scenario", "-package", "matchers", "-test", "-word", "ab")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generated "+output)

	src, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package matchers")
	assert.Contains(t, string(src), "type Scenario struct{}")

	_, err = os.Stat(filepath.Join(dir, "matcher_test.go"))
	assert.NoError(t, err)
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nfa.txt", scenario)
	cfg := writeFile(t, dir, "run.yaml", "automaton: "+path+"\nwords: [ab, b]\n")

	stdout, _, err := runCLI(t, "-config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "ab: ACCEPTED\nb: REJECTED\n", stdout)

	stdout, _, err = runCLI(t, "-config", cfg, "-word", "a")
	require.NoError(t, err)
	assert.Equal(t, "ab: ACCEPTED\nb: REJECTED\na: ACCEPTED\n", stdout, "flag words follow config words")
}

func TestRunErrors(t *testing.T) {
	_, stderr, err := runCLI(t)
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage: fagen")

	_, _, err = runCLI(t, "-automaton", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = runCLI(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)

	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)
	_, _, err = runCLI(t, "-automaton", path, "-output", "x.go", "-name", "not valid")
	assert.Error(t, err)
}

func TestRunAnalyze(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nfa.txt", scenario)

	stdout, _, err := runCLI(t, "-automaton", path, "-analyze")
	require.NoError(t, err)
	assert.Equal(t, "states: 2\nsymbols: 2\ntransitions: 2\ndfa states: 3\nlabels: Deterministic, Partial\n", stdout)
}
