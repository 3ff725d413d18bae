package engine

import (
	"fmt"
	"math/bits"

	"github.com/KromDaniel/fagen/internal/automaton"
)

// Powerset converts nfa into a DFA whose states are every subset of the
// declared states, reachable or not, including the empty one. It is the
// reference construction; Determinize produces the reachable part of it.
func Powerset(nfa *automaton.Automaton, opts Options) (*DFA, error) {
	log := opts.Logger
	log.Section("Powerset")

	states := nfa.States()
	limit := MaxPowersetStates
	if opts.MaxStates > 0 {
		limit = bitsFor(opts.MaxStates)
	}
	if len(states) > limit {
		log.Warn("powerset of %d states would produce 2^%d subsets", len(states), len(states))
		return nil, fmt.Errorf("%w: powerset of %d states", ErrStateExplosion, len(states))
	}
	log.Log("Enumerating %d subsets of %d states", 1<<len(states), len(states))

	b := newDFABuilder(nfa, opts)
	subsets := make([]automaton.StateSet, 0, 1<<len(states))
	for mask := 0; mask < 1<<len(states); mask++ {
		var members []automaton.State
		for i, s := range states {
			if mask&(1<<i) != 0 {
				members = append(members, s)
			}
		}
		set := automaton.NewStateSet(members...)
		if _, _, err := b.state(set); err != nil {
			return nil, err
		}
		subsets = append(subsets, set)
	}

	// Transitions into undeclared states yield subsets the enumeration
	// missed; those are appended and expanded as well.
	for i := 0; i < len(subsets); i++ {
		set := subsets[i]
		from, _ := b.lookup(set)
		for _, sym := range nfa.Alphabet() {
			nextSet := nfa.Step(set, sym)
			next, added, err := b.state(nextSet)
			if err != nil {
				return nil, err
			}
			if added {
				subsets = append(subsets, nextSet)
			}
			b.build.AddTransition(from, sym, next)
		}
	}

	start, _ := b.lookup(automaton.NewStateSet(nfa.Start()))
	log.Log("Powerset DFA constructed with %d states", len(b.order))
	return b.finish(start)
}

// bitsFor returns the largest n with 2^n <= limit. limit must be positive.
func bitsFor(limit int) int {
	return bits.Len(uint(limit)) - 1
}
