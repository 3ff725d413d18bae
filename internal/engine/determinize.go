package engine

import (
	"github.com/KromDaniel/fagen/internal/automaton"
)

// Determinize converts nfa into an equivalent DFA using the subset
// construction, exploring only subsets reachable from {start}. Every
// produced state has a transition on every alphabet symbol; the empty
// subset is the dead state and appears only when reachable.
func Determinize(nfa *automaton.Automaton, opts Options) (*DFA, error) {
	log := opts.Logger
	log.Section("Determinize")
	log.Log("NFA states: %d, alphabet: %d", nfa.Size(), len(nfa.Alphabet()))

	b := newDFABuilder(nfa, opts)
	alphabet := nfa.Alphabet()

	startSet := automaton.NewStateSet(nfa.Start())
	start, _, err := b.state(startSet)
	if err != nil {
		return nil, err
	}

	// Worklist of DFA states whose transitions are not yet computed
	worklist := []automaton.State{start}
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		set := b.subsets[current]

		for _, sym := range alphabet {
			nextSet := nfa.Step(set, sym)
			next, added, err := b.state(nextSet)
			if err != nil {
				log.Warn("subset construction stopped after %d states", len(b.order))
				return nil, err
			}
			if added {
				worklist = append(worklist, next)
			}
			b.build.AddTransition(current, sym, next)
		}
	}

	log.Log("DFA constructed with %d reachable states", len(b.order))
	return b.finish(start)
}
