package fagen

import (
	"errors"
	"sort"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/engine"
)

// Analysis describes the shape of an automaton without generating code.
type Analysis struct {
	States      int
	Symbols     int
	Transitions int

	// Unreachable lists declared states no word can reach from the start.
	Unreachable []State

	// DFAStates is the size of the reachable subset construction, or 0 when
	// it exceeded the limit.
	DFAStates int

	// Labels summarise the automaton, sorted alphabetically:
	// "Deterministic" or "Nondeterministic", "Complete" or "Partial",
	// and optionally "AcceptsEmpty", "Unreachable", "StateExplosion".
	Labels []string
}

// Analyze inspects a and determinizes it with a limit of 500 DFA states.
//
// Example:
//
//	a, _, _ := fagen.Load("nfa.txt")
//	result, err := fagen.Analyze(a)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Labels) // ["Nondeterministic", "Partial"]
func Analyze(a *Automaton) (*Analysis, error) {
	return AnalyzeWithLimit(a, 500)
}

// AnalyzeWithLimit is Analyze with a custom DFA state limit (0 = unlimited).
// Exceeding the limit is reported through the "StateExplosion" label, not as
// an error.
func AnalyzeWithLimit(a *Automaton, maxStates int) (*Analysis, error) {
	result := &Analysis{
		States:      a.Size(),
		Symbols:     len(a.Alphabet()),
		Transitions: len(a.Transitions()),
		Unreachable: unreachable(a),
	}

	if a.IsDeterministic() {
		result.Labels = append(result.Labels, "Deterministic")
	} else {
		result.Labels = append(result.Labels, "Nondeterministic")
	}
	if complete(a) {
		result.Labels = append(result.Labels, "Complete")
	} else {
		result.Labels = append(result.Labels, "Partial")
	}
	if a.IsAccepting(a.Start()) {
		result.Labels = append(result.Labels, "AcceptsEmpty")
	}
	if len(result.Unreachable) > 0 {
		result.Labels = append(result.Labels, "Unreachable")
	}

	dfa, err := engine.Determinize(a, engine.Options{MaxStates: maxStates})
	switch {
	case errors.Is(err, engine.ErrStateExplosion):
		result.Labels = append(result.Labels, "StateExplosion")
	case err != nil:
		return nil, err
	default:
		result.DFAStates = dfa.Len()
	}

	sort.Strings(result.Labels)
	return result, nil
}

// complete reports whether every declared state has a transition on every
// symbol.
func complete(a *automaton.Automaton) bool {
	for _, s := range a.States() {
		for _, sym := range a.Alphabet() {
			if a.Next(s, sym).IsEmpty() {
				return false
			}
		}
	}
	return true
}

func unreachable(a *automaton.Automaton) []State {
	seen := map[State]bool{a.Start(): true}
	queue := []State{a.Start()}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, sym := range a.Alphabet() {
			for _, next := range a.Next(s, sym).Members() {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	var out []State
	for _, s := range a.States() {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
