// Package description reads and writes the line-oriented automaton format:
//
//	line 1: alphabet symbols
//	line 2: states
//	line 3: accepting states
//	line 4: start state
//	line 5+: "<origin> <symbol> <destination>" triples
//
// Tokens are separated by whitespace. Transition lines that are not exactly
// three tokens are skipped and reported as diagnostics.
package description

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/fagen/internal/automaton"
)

// HeaderLines is the number of lines before the transition triples.
const HeaderLines = 4

var (
	// ErrTruncatedHeader is returned for input with fewer than HeaderLines lines.
	ErrTruncatedHeader  = errors.New("description header is incomplete")
	// ErrInvalidStartLine is returned when the start line does not hold one token.
	ErrInvalidStartLine = errors.New("start line must hold exactly one state")
	// ErrDiagnostics is wrapped by Strict when any diagnostic was reported.
	ErrDiagnostics      = errors.New("description has problems")
)

// DiagnosticKind classifies a problem found while parsing.
type DiagnosticKind int

const (
	// MalformedTransition is a transition line without exactly three tokens.
	// The line is skipped.
	MalformedTransition DiagnosticKind = iota
	// UnknownSymbol is a transition on a symbol outside the alphabet. The
	// transition is kept.
	UnknownSymbol
	// UnknownState is a transition naming an undeclared state. The
	// transition is kept.
	UnknownState
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedTransition:
		return "malformed transition"
	case UnknownSymbol:
		return "unknown symbol"
	case UnknownState:
		return "unknown state"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a non-fatal problem tied to a line of the description.
type Diagnostic struct {
	Line int
	Kind DiagnosticKind
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Kind, d.Text)
}

// ParseFile parses the description stored at path.
func ParseFile(path string) (*automaton.Automaton, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	a, diags, err := Parse(f)
	if err != nil {
		return nil, diags, fmt.Errorf("parse %s: %w", path, err)
	}
	return a, diags, nil
}

// Parse reads a description. Problems with individual transition lines are
// returned as diagnostics; only an unusable header or an inconsistent
// automaton is an error.
func Parse(r io.Reader) (*automaton.Automaton, []Diagnostic, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header [HeaderLines][]string
	lineNo := 0
	for lineNo < HeaderLines && scanner.Scan() {
		header[lineNo] = strings.Fields(scanner.Text())
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read description: %w", err)
	}
	if lineNo < HeaderLines {
		return nil, nil, fmt.Errorf("%w: got %d of %d lines", ErrTruncatedHeader, lineNo, HeaderLines)
	}
	if len(header[3]) != 1 {
		return nil, nil, fmt.Errorf("%w: line 4 has %d tokens", ErrInvalidStartLine, len(header[3]))
	}

	b := automaton.NewBuilder().
		AddSymbols(toSymbols(header[0])...).
		AddStates(toStates(header[1])...).
		AddAccepting(toStates(header[2])...).
		SetStart(automaton.State(header[3][0]))

	symbols := set(header[0])
	states := set(header[1])

	var diags []Diagnostic
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		parts := strings.Fields(text)
		if len(parts) != 3 {
			diags = append(diags, Diagnostic{Line: lineNo, Kind: MalformedTransition, Text: text})
			continue
		}

		origin, symbol, destination := parts[0], parts[1], parts[2]
		if !symbols[symbol] {
			diags = append(diags, Diagnostic{Line: lineNo, Kind: UnknownSymbol, Text: text})
		}
		if !states[origin] || !states[destination] {
			diags = append(diags, Diagnostic{Line: lineNo, Kind: UnknownState, Text: text})
		}
		b.AddTransition(automaton.State(origin), automaton.Symbol(symbol), automaton.State(destination))
	}
	if err := scanner.Err(); err != nil {
		return nil, diags, fmt.Errorf("read description: %w", err)
	}

	a, err := b.Build()
	if err != nil {
		return nil, diags, fmt.Errorf("invalid automaton: %w", err)
	}
	return a, diags, nil
}

// Strict converts diagnostics into an error, for callers that do not accept
// best-effort input.
func Strict(diags []Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return fmt.Errorf("%w: %s", ErrDiagnostics, strings.Join(lines, "; "))
}

func toSymbols(tokens []string) []automaton.Symbol {
	out := make([]automaton.Symbol, len(tokens))
	for i, t := range tokens {
		out[i] = automaton.Symbol(t)
	}
	return out
}

func toStates(tokens []string) []automaton.State {
	out := make([]automaton.State, len(tokens))
	for i, t := range tokens {
		out[i] = automaton.State(t)
	}
	return out
}

func set(tokens []string) map[string]bool {
	out := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		out[t] = true
	}
	return out
}
