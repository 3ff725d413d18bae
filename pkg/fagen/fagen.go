// Package fagen loads finite automata, runs words through them, converts
// NFAs to DFAs with the subset construction and generates Go matchers for
// the result.
package fagen

import (
	"fmt"
	"io"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/compiler"
	"github.com/KromDaniel/fagen/internal/description"
	"github.com/KromDaniel/fagen/internal/engine"
	"github.com/KromDaniel/fagen/internal/logger"
)

type (
	// Automaton is an immutable finite automaton.
	Automaton = automaton.Automaton
	// Definition is the raw material for New.
	Definition = automaton.Definition
	// State identifies an automaton state.
	State = automaton.State
	// Symbol is an alphabet token.
	Symbol = automaton.Symbol
	// Transition is one (origin, symbol, destination) rule.
	Transition = automaton.Transition
	// StateSet is an immutable set of states.
	StateSet = automaton.StateSet
	// Verdict is the outcome of processing a word.
	Verdict = engine.Verdict
	// Run is a processed word with its intermediate state sets.
	Run = engine.Run
	// DFA is the result of a subset construction.
	DFA = engine.DFA
	// Diagnostic is a non-fatal problem found while parsing a description.
	Diagnostic = description.Diagnostic
)

const (
	Accepted = engine.Accepted
	Rejected = engine.Rejected
	Invalid  = engine.Invalid
)

var (
	ErrStateExplosion       = engine.ErrStateExplosion
	ErrStartNotInStates     = automaton.ErrStartNotInStates
	ErrAcceptingNotInStates = automaton.ErrAcceptingNotInStates
	ErrTruncatedHeader      = description.ErrTruncatedHeader
	ErrNotDeterministic     = compiler.ErrNotDeterministic
	ErrReservedName         = compiler.ErrReservedName
)

// New builds an automaton from a definition.
func New(def Definition) (*Automaton, error) {
	return automaton.New(def)
}

// Load reads an automaton description file. Skipped or suspicious
// transition lines are returned as diagnostics.
func Load(path string) (*Automaton, []Diagnostic, error) {
	return description.ParseFile(path)
}

// Parse reads an automaton description.
func Parse(r io.Reader) (*Automaton, []Diagnostic, error) {
	return description.Parse(r)
}

// Encode writes an automaton in the description format.
func Encode(w io.Writer, a *Automaton) error {
	return description.Encode(w, a)
}

// Process runs word through a.
func Process(a *Automaton, word []Symbol) Verdict {
	return engine.Process(a, word)
}

// ProcessString splits text into symbols with sep (one symbol per
// character when sep is empty) and runs it through a.
func ProcessString(a *Automaton, text, sep string) Verdict {
	return engine.Process(a, engine.SplitWord(text, sep))
}

// Trace runs word through a, keeping every intermediate state set.
func Trace(a *Automaton, word []Symbol) Run {
	return engine.Trace(a, word)
}

// Determinize builds the reachable part of the subset construction.
// maxStates bounds the result; 0 means unlimited.
func Determinize(a *Automaton, maxStates int) (*DFA, error) {
	return engine.Determinize(a, engine.Options{MaxStates: maxStates})
}

// Powerset builds the full subset construction over every subset of the
// declared states.
func Powerset(a *Automaton, maxStates int) (*DFA, error) {
	return engine.Powerset(a, engine.Options{MaxStates: maxStates})
}

// Options configures the automaton compilation process.
type Options struct {
	// AutomatonFile is the description to compile
	AutomatonFile string

	// Name is the generated matcher type (e.g., "EndsWithAB" generates "EndsWithAB.Process")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Strict fails on any description diagnostic instead of skipping the line
	Strict bool

	// MaxStates bounds the determinized automaton (0 = unlimited)
	MaxStates int

	// Verbose logs loading, determinization and generation to stderr
	Verbose bool

	// GenerateTestFile generates a test file checking TestWords (default: true if TestWords provided)
	GenerateTestFile bool

	// TestWords are the words checked by the generated test file
	TestWords []string

	// Separator splits TestWords into symbols; empty means one symbol per character
	Separator string
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.AutomatonFile == "" {
		return fmt.Errorf("automaton file cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	return nil
}

// Compile loads the automaton, determinizes it and generates a Go matcher.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	log := logger.New(opts.Verbose)

	a, diags, err := description.ParseFile(opts.AutomatonFile)
	if err != nil {
		return fmt.Errorf("failed to load automaton: %w", err)
	}
	for _, d := range diags {
		log.Warn("%s", d)
	}
	if opts.Strict {
		if err := description.Strict(diags); err != nil {
			return err
		}
	}

	dfa, err := engine.Determinize(a, engine.Options{MaxStates: opts.MaxStates, Logger: log})
	if err != nil {
		return fmt.Errorf("failed to determinize: %w", err)
	}

	testWords := make([][]automaton.Symbol, len(opts.TestWords))
	for i, w := range opts.TestWords {
		testWords[i] = engine.SplitWord(w, opts.Separator)
	}

	c := compiler.New(compiler.Config{
		Name:             opts.Name,
		Package:          opts.Package,
		OutputFile:       opts.OutputFile,
		Source:           opts.AutomatonFile,
		Automaton:        dfa.Automaton(),
		GenerateTestFile: opts.GenerateTestFile || len(opts.TestWords) > 0,
		TestWords:        testWords,
		Logger:           log,
	})
	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
