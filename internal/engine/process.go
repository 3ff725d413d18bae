// Package engine implements word processing and NFA to DFA conversion.
//
// Both operations treat the input automaton as read-only; they may be called
// concurrently on the same *automaton.Automaton.
package engine

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/fagen/internal/automaton"
)

// Verdict is the outcome of running a word through an automaton.
type Verdict int

const (
	Rejected Verdict = iota
	Accepted
	Invalid
)

var verdictNames = map[Verdict]string{
	Accepted: "ACCEPTED",
	Rejected: "REJECTED",
	Invalid:  "INVALID",
}

func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	if _, ok := verdictNames[v]; !ok {
		return nil, fmt.Errorf("unknown verdict %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict parses the textual form of a verdict, ignoring case.
func ParseVerdict(s string) (Verdict, error) {
	for v, name := range verdictNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return Rejected, fmt.Errorf("unknown verdict %q", s)
}

// Run records how a word travelled through an automaton.
type Run struct {
	Verdict Verdict
	// Steps holds the set of current states after each consumed symbol.
	Steps []automaton.StateSet
	// InvalidAt is the index of the first out-of-alphabet symbol, or -1.
	InvalidAt int
}

// Process runs word through a, tracking every state reachable at once. It
// stops at the first symbol outside the alphabet and reports Invalid.
func Process(a *automaton.Automaton, word []automaton.Symbol) Verdict {
	current := automaton.NewStateSet(a.Start())
	for _, sym := range word {
		if !a.HasSymbol(sym) {
			return Invalid
		}
		current = a.Step(current, sym)
	}
	return verdictFor(a, current)
}

// Trace is Process with the intermediate state sets kept.
func Trace(a *automaton.Automaton, word []automaton.Symbol) Run {
	run := Run{InvalidAt: -1}
	current := automaton.NewStateSet(a.Start())
	for i, sym := range word {
		if !a.HasSymbol(sym) {
			run.Verdict = Invalid
			run.InvalidAt = i
			return run
		}
		current = a.Step(current, sym)
		run.Steps = append(run.Steps, current)
	}
	run.Verdict = verdictFor(a, current)
	return run
}

func verdictFor(a *automaton.Automaton, current automaton.StateSet) Verdict {
	if current.Intersects(a.Accepting()) {
		return Accepted
	}
	return Rejected
}

// SplitWord turns text into symbols. An empty separator yields one symbol
// per character; otherwise text is split on sep and empty pieces are
// dropped.
func SplitWord(text, sep string) []automaton.Symbol {
	var out []automaton.Symbol
	if sep == "" {
		for _, r := range text {
			out = append(out, automaton.Symbol(string(r)))
		}
		return out
	}
	for _, part := range strings.Split(text, sep) {
		if part != "" {
			out = append(out, automaton.Symbol(part))
		}
	}
	return out
}
