// Package automaton holds the finite automaton model shared by the word
// processor, the determinizer and the code generator.
//
// An Automaton is immutable once built: every accessor returns a copy, so a
// single value may be used from many goroutines without coordination.
package automaton

import (
	"errors"
	"fmt"
	"sort"
)

type (
	// State identifies a state of an automaton.
	State string

	// Symbol is a token of an automaton's alphabet.
	Symbol string

	// Transition is a single (origin, symbol, destination) rule.
	Transition struct {
		From   State
		Symbol Symbol
		To     State
	}

	// Definition is the raw material an Automaton is built from.
	Definition struct {
		States      []State
		Alphabet    []Symbol
		Accepting   []State
		Start       State
		Transitions []Transition
	}

	// Automaton is a finite automaton. A (state, symbol) pair may lead to any
	// number of states; an absent pair simply leads nowhere.
	Automaton struct {
		states      []State
		stateIndex  map[State]struct{}
		alphabet    []Symbol
		symbolIndex map[Symbol]struct{}
		accepting   StateSet
		start       State
		delta       map[State]map[Symbol]StateSet
	}
)

var (
	// ErrEmptyStart is returned when no start state is given.
	ErrEmptyStart           = errors.New("start state is empty")
	// ErrStartNotInStates is returned when the start state is not declared.
	ErrStartNotInStates     = errors.New("start state is not a declared state")
	// ErrAcceptingNotInStates is returned when an accepting state is not declared.
	ErrAcceptingNotInStates = errors.New("accepting state is not a declared state")
)

// New validates a definition and builds an immutable Automaton from it.
// Duplicate states, symbols and transitions are folded together.
func New(def Definition) (*Automaton, error) {
	b := NewBuilder()
	b.AddStates(def.States...)
	b.AddSymbols(def.Alphabet...)
	b.AddAccepting(def.Accepting...)
	b.SetStart(def.Start)
	for _, t := range def.Transitions {
		b.AddTransition(t.From, t.Symbol, t.To)
	}
	return b.Build()
}

// MustNew is like New but panics on an invalid definition. Intended for
// tests and package-level fixtures.
func MustNew(def Definition) *Automaton {
	a, err := New(def)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Automaton) validate() error {
	if a.start == "" {
		return ErrEmptyStart
	}
	if !a.HasState(a.start) {
		return fmt.Errorf("%w: %q", ErrStartNotInStates, a.start)
	}
	for _, s := range a.accepting.members {
		if !a.HasState(s) {
			return fmt.Errorf("%w: %q", ErrAcceptingNotInStates, s)
		}
	}
	return nil
}

// States returns the declared states in declaration order.
func (a *Automaton) States() []State {
	out := make([]State, len(a.states))
	copy(out, a.states)
	return out
}

// Alphabet returns the alphabet in declaration order.
func (a *Automaton) Alphabet() []Symbol {
	out := make([]Symbol, len(a.alphabet))
	copy(out, a.alphabet)
	return out
}

// Start returns the start state.
func (a *Automaton) Start() State {
	return a.start
}

// Accepting returns the set of accepting states.
func (a *Automaton) Accepting() StateSet {
	return a.accepting
}

// Size returns the number of declared states.
func (a *Automaton) Size() int {
	return len(a.states)
}

// HasState reports whether s is a declared state.
func (a *Automaton) HasState(s State) bool {
	_, ok := a.stateIndex[s]
	return ok
}

// HasSymbol reports whether sym belongs to the alphabet.
func (a *Automaton) HasSymbol(sym Symbol) bool {
	_, ok := a.symbolIndex[sym]
	return ok
}

// IsAccepting reports whether s is an accepting state.
func (a *Automaton) IsAccepting(s State) bool {
	return a.accepting.Contains(s)
}

// Next returns the destinations of (s, sym); the empty set when none is
// defined.
func (a *Automaton) Next(s State, sym Symbol) StateSet {
	return a.delta[s][sym]
}

// Step returns the union of Next over every member of from.
func (a *Automaton) Step(from StateSet, sym Symbol) StateSet {
	out := EmptySet
	for _, s := range from.members {
		out = out.Union(a.Next(s, sym))
	}
	return out
}

// Transitions lists every rule, sorted by origin, symbol and destination.
func (a *Automaton) Transitions() []Transition {
	var out []Transition
	for from, bySym := range a.delta {
		for sym, to := range bySym {
			for _, dst := range to.members {
				out = append(out, Transition{From: from, Symbol: sym, To: dst})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].To < out[j].To
	})
	return out
}

// IsDeterministic reports whether every (state, symbol) pair has at most
// one destination.
func (a *Automaton) IsDeterministic() bool {
	for _, bySym := range a.delta {
		for _, to := range bySym {
			if to.Len() > 1 {
				return false
			}
		}
	}
	return true
}
