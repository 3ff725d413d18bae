// Command fagen loads a finite automaton description, checks words against
// it, converts it to a DFA and generates Go matchers.
//
// Usage:
//
//	fagen -automaton nfa.txt -word abba -word ab
//	fagen -automaton nfa.txt -determinize -dfa-out dfa.txt
//	fagen -automaton nfa.txt -output matcher.go -name EndsWithAB -package matchers -test
//	fagen -config run.yaml -verbose
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/compiler"
	"github.com/KromDaniel/fagen/internal/config"
	"github.com/KromDaniel/fagen/internal/description"
	"github.com/KromDaniel/fagen/internal/engine"
	"github.com/KromDaniel/fagen/internal/logger"
	"github.com/KromDaniel/fagen/pkg/fagen"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, ", ")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fagen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var words arrayFlags
	var (
		configFile    = fs.String("config", "", "YAML run file; flags override its values")
		automatonFile = fs.String("automaton", "", "Automaton description file (required)")
		sep           = fs.String("sep", "", "Symbol separator for words (default: one symbol per character)")
		determinize   = fs.Bool("determinize", false, "Convert the automaton to a DFA (reachable subsets)")
		powerset      = fs.Bool("powerset", false, "Convert the automaton to a DFA over every subset of states")
		analyze       = fs.Bool("analyze", false, "Print a structural summary of the automaton")
		dfaOut        = fs.String("dfa-out", "", "Write the DFA to this file instead of stdout")
		output        = fs.String("output", "", "Generate a Go matcher for the DFA into this file")
		name          = fs.String("name", config.DefaultName, "Name of the generated matcher type")
		pkg           = fs.String("package", config.DefaultPackage, "Package of the generated matcher")
		genTest       = fs.Bool("test", false, "Generate a test file checking the -word inputs")
		maxStates     = fs.Int("max-states", 0, "Maximum number of DFA states (0 = unlimited)")
		strict        = fs.Bool("strict", false, "Fail on any description diagnostic")
		verbose       = fs.Bool("verbose", false, "Log loading, determinization and word traces to stderr")
	)
	fs.Var(&words, "word", "Word to process (can be repeated)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fagen -automaton FILE [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.NewDefaultConfig()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "automaton":
			cfg.Automaton = *automatonFile
		case "word":
			cfg.Words = append(cfg.Words, words...)
		case "sep":
			cfg.Separator = *sep
		case "determinize":
			cfg.Determinize = *determinize
		case "powerset":
			cfg.Powerset = *powerset
		case "analyze":
			cfg.Analyze = *analyze
		case "dfa-out":
			cfg.DFAOutput = *dfaOut
		case "output":
			cfg.Generate.Output = *output
		case "name":
			cfg.Generate.Name = *name
		case "package":
			cfg.Generate.Package = *pkg
		case "test":
			cfg.Generate.Test = *genTest
		case "max-states":
			cfg.MaxStates = *maxStates
		case "strict":
			cfg.Strict = *strict
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	cfg.Words = append(cfg.Words, fs.Args()...)

	if err := cfg.Validate(); err != nil {
		fs.Usage()
		return err
	}
	return execute(cfg, stdout, stderr)
}

func execute(cfg *config.Config, stdout, stderr io.Writer) error {
	log := logger.New(cfg.Verbose)
	log.SetOutput(stderr)

	log.Section("Loading")
	a, diags, err := fagen.Load(cfg.Automaton)
	if err != nil {
		return err
	}
	for _, d := range diags {
		fmt.Fprintf(stderr, "warning: %s\n", d)
	}
	if cfg.Strict {
		if err := description.Strict(diags); err != nil {
			return err
		}
	}
	log.Log("Loaded %s: %d states, %d symbols, %d transitions",
		cfg.Automaton, a.Size(), len(a.Alphabet()), len(a.Transitions()))

	if cfg.Analyze {
		if err := printAnalysis(stdout, a, cfg.MaxStates); err != nil {
			return err
		}
	}

	for _, text := range cfg.Words {
		word := engine.SplitWord(text, cfg.Separator)
		trace := engine.Trace(a, word)
		if log.Enabled() {
			traceWord(log, word, trace)
		}
		fmt.Fprintf(stdout, "%s: %s\n", text, trace.Verdict)
	}

	if !cfg.Determinizes() {
		return nil
	}

	opts := engine.Options{MaxStates: cfg.MaxStates, Logger: log}
	var dfa *engine.DFA
	if cfg.Powerset {
		dfa, err = engine.Powerset(a, opts)
	} else {
		dfa, err = engine.Determinize(a, opts)
	}
	if err != nil {
		return err
	}

	switch {
	case cfg.DFAOutput != "":
		if err := description.EncodeFile(cfg.DFAOutput, dfa.Automaton()); err != nil {
			return err
		}
		log.Log("Wrote DFA to %s", cfg.DFAOutput)
	case cfg.Determinize || cfg.Powerset:
		if err := description.Encode(stdout, dfa.Automaton()); err != nil {
			return err
		}
	}

	if cfg.Generate.Output == "" {
		return nil
	}

	testWords := make([][]fagen.Symbol, len(cfg.Words))
	for i, text := range cfg.Words {
		testWords[i] = engine.SplitWord(text, cfg.Separator)
	}
	c := compiler.New(compiler.Config{
		Name:             cfg.Generate.Name,
		Package:          cfg.Generate.Package,
		OutputFile:       cfg.Generate.Output,
		Source:           cfg.Automaton,
		Automaton:        dfa.Automaton(),
		GenerateTestFile: cfg.Generate.Test,
		TestWords:        testWords,
		Logger:           log,
	})
	if err := c.Generate(); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Generated %s\n", cfg.Generate.Output)
	if cfg.Generate.Test {
		fmt.Fprintf(stderr, "Generated %s\n", c.TestFile())
	}
	return nil
}

func traceWord(log *logger.Logger, word []fagen.Symbol, run engine.Run) {
	log.Log("word %q", word)
	for i, set := range run.Steps {
		log.Log("  %q -> %s", word[i], set)
	}
	if run.InvalidAt >= 0 {
		log.Log("  %q is not in the alphabet", word[run.InvalidAt])
	}
}

func printAnalysis(w io.Writer, a *fagen.Automaton, maxStates int) error {
	if maxStates == 0 {
		maxStates = 500
	}
	result, err := fagen.AnalyzeWithLimit(a, maxStates)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "states: %d\n", result.States)
	fmt.Fprintf(w, "symbols: %d\n", result.Symbols)
	fmt.Fprintf(w, "transitions: %d\n", result.Transitions)
	if result.DFAStates > 0 {
		fmt.Fprintf(w, "dfa states: %d\n", result.DFAStates)
	}
	if len(result.Unreachable) > 0 {
		fmt.Fprintf(w, "unreachable: %s\n", automaton.NewStateSet(result.Unreachable...))
	}
	fmt.Fprintf(w, "labels: %s\n", strings.Join(result.Labels, ", "))
	return nil
}
