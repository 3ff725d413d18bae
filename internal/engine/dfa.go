package engine

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/logger"
)

// MaxPowersetStates is the largest declared state count Powerset expands
// without an explicit MaxStates bound.
const MaxPowersetStates = 20

// ErrStateExplosion is returned when a subset construction would exceed its
// state limit.
var ErrStateExplosion = errors.New("determinization exceeded the state limit")

// Options tunes the subset construction.
type Options struct {
	// MaxStates caps the number of DFA states produced (0 = unlimited).
	MaxStates int
	// Logger receives progress and blow-up warnings. May be nil.
	Logger *logger.Logger
}

// DFA is the result of a subset construction. Every state of the
// underlying automaton stands for a set of states of the source automaton.
type DFA struct {
	automaton *automaton.Automaton
	subsets   map[automaton.State]automaton.StateSet
	byKey     map[string]automaton.State
	order     []automaton.State
}

// Automaton returns the deterministic automaton. It can be processed or
// determinized again like any other automaton.
func (d *DFA) Automaton() *automaton.Automaton {
	return d.automaton
}

// Subset returns the source states behind a DFA state.
func (d *DFA) Subset(s automaton.State) (automaton.StateSet, bool) {
	set, ok := d.subsets[s]
	return set, ok
}

// StateOf returns the DFA state standing for set, if it was produced.
func (d *DFA) StateOf(set automaton.StateSet) (automaton.State, bool) {
	s, ok := d.byKey[set.Key()]
	return s, ok
}

// Len returns the number of DFA states.
func (d *DFA) Len() int {
	return len(d.order)
}

// States returns the DFA states in discovery order, start state first.
func (d *DFA) States() []automaton.State {
	out := make([]automaton.State, len(d.order))
	copy(out, d.order)
	return out
}

// dfaBuilder assigns labels to subsets and collects the resulting
// automaton. Labels come from the sorted members; the rare collision
// between distinct subsets gets a numeric suffix.
type dfaBuilder struct {
	nfa     *automaton.Automaton
	opts    Options
	build   *automaton.Builder
	subsets map[automaton.State]automaton.StateSet
	byKey   map[string]automaton.State
	order   []automaton.State
}

func newDFABuilder(nfa *automaton.Automaton, opts Options) *dfaBuilder {
	return &dfaBuilder{
		nfa:     nfa,
		opts:    opts,
		build:   automaton.NewBuilder().AddSymbols(nfa.Alphabet()...),
		subsets: map[automaton.State]automaton.StateSet{},
		byKey:   map[string]automaton.State{},
	}
}

// state returns the DFA state for set, creating it when new. added is true
// for newly created states.
func (b *dfaBuilder) state(set automaton.StateSet) (s automaton.State, added bool, err error) {
	if s, ok := b.byKey[set.Key()]; ok {
		return s, false, nil
	}
	if b.opts.MaxStates > 0 && len(b.order) >= b.opts.MaxStates {
		return "", false, fmt.Errorf("%w: more than %d states", ErrStateExplosion, b.opts.MaxStates)
	}

	label := automaton.State(set.String())
	for n := 1; ; n++ {
		if _, taken := b.subsets[label]; !taken {
			break
		}
		label = automaton.State(fmt.Sprintf("%s#%d", set.String(), n))
	}

	b.subsets[label] = set
	b.byKey[set.Key()] = label
	b.order = append(b.order, label)
	b.build.AddStates(label)
	if set.Intersects(b.nfa.Accepting()) {
		b.build.AddAccepting(label)
	}
	return label, true, nil
}

func (b *dfaBuilder) lookup(set automaton.StateSet) (automaton.State, bool) {
	s, ok := b.byKey[set.Key()]
	return s, ok
}

func (b *dfaBuilder) finish(start automaton.State) (*DFA, error) {
	b.build.SetStart(start)
	a, err := b.build.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build DFA: %w", err)
	}
	return &DFA{
		automaton: a,
		subsets:   b.subsets,
		byKey:     b.byKey,
		order:     b.order,
	}, nil
}
