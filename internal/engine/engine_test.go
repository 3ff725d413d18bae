package engine

import (
	"github.com/KromDaniel/fagen/internal/automaton"
)

// scenarioDFA accepts a b*.
func scenarioDFA() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:    []automaton.State{"q0", "q1"},
		Alphabet:  []automaton.Symbol{"a", "b"},
		Accepting: []automaton.State{"q1"},
		Start:     "q0",
		Transitions: []automaton.Transition{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q1", Symbol: "b", To: "q1"},
		},
	})
}

// forkNFA branches on a from q0 into q1 and q2.
func forkNFA() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:    []automaton.State{"q0", "q1", "q2", "q3"},
		Alphabet:  []automaton.Symbol{"a", "b"},
		Accepting: []automaton.State{"q3"},
		Start:     "q0",
		Transitions: []automaton.Transition{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "a", To: "q2"},
			{From: "q1", Symbol: "b", To: "q3"},
			{From: "q2", Symbol: "a", To: "q3"},
			{From: "q3", Symbol: "a", To: "q0"},
		},
	})
}

// endsWithABNFA accepts every word over {a,b} ending in "ab".
func endsWithABNFA() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:    []automaton.State{"s", "x", "y"},
		Alphabet:  []automaton.Symbol{"a", "b"},
		Accepting: []automaton.State{"y"},
		Start:     "s",
		Transitions: []automaton.Transition{
			{From: "s", Symbol: "a", To: "s"},
			{From: "s", Symbol: "b", To: "s"},
			{From: "s", Symbol: "a", To: "x"},
			{From: "x", Symbol: "b", To: "y"},
		},
	})
}

// allWords lists every word over alphabet up to maxLen symbols, the empty
// word included.
func allWords(alphabet []automaton.Symbol, maxLen int) [][]automaton.Symbol {
	words := [][]automaton.Symbol{{}}
	frontier := [][]automaton.Symbol{{}}
	for n := 0; n < maxLen; n++ {
		var next [][]automaton.Symbol
		for _, w := range frontier {
			for _, sym := range alphabet {
				ext := make([]automaton.Symbol, len(w)+1)
				copy(ext, w)
				ext[len(w)] = sym
				next = append(next, ext)
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}

func symbols(s ...string) []automaton.Symbol {
	out := make([]automaton.Symbol, len(s))
	for i, v := range s {
		out[i] = automaton.Symbol(v)
	}
	return out
}
