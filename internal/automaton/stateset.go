package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// StateSet is an immutable, sorted set of states. Two sets are equal when
// they hold the same members, regardless of the order they were built in.
type StateSet struct {
	members []State
}

// EmptySet is the set with no members (the dead state of a determinized
// automaton).
var EmptySet = StateSet{}

// NewStateSet builds a set from the given states, dropping duplicates.
func NewStateSet(states ...State) StateSet {
	if len(states) == 0 {
		return EmptySet
	}
	sorted := make([]State, len(states))
	copy(sorted, states)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return StateSet{members: out}
}

// Len returns the number of members.
func (s StateSet) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members.
func (s StateSet) IsEmpty() bool {
	return len(s.members) == 0
}

// Members returns a copy of the members in ascending order.
func (s StateSet) Members() []State {
	out := make([]State, len(s.members))
	copy(out, s.members)
	return out
}

// Contains reports whether state is a member.
func (s StateSet) Contains(state State) bool {
	i := sort.Search(len(s.members), func(i int) bool { return s.members[i] >= state })
	return i < len(s.members) && s.members[i] == state
}

// Intersects reports whether the two sets share at least one member.
func (s StateSet) Intersects(other StateSet) bool {
	i, j := 0, 0
	for i < len(s.members) && j < len(other.members) {
		switch {
		case s.members[i] == other.members[j]:
			return true
		case s.members[i] < other.members[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Union returns a new set holding the members of both sets.
func (s StateSet) Union(other StateSet) StateSet {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	out := make([]State, 0, len(s.members)+len(other.members))
	i, j := 0, 0
	for i < len(s.members) && j < len(other.members) {
		switch {
		case s.members[i] == other.members[j]:
			out = append(out, s.members[i])
			i++
			j++
		case s.members[i] < other.members[j]:
			out = append(out, s.members[i])
			i++
		default:
			out = append(out, other.members[j])
			j++
		}
	}
	out = append(out, s.members[i:]...)
	out = append(out, other.members[j:]...)
	return StateSet{members: out}
}

// Equal reports whether both sets hold the same members.
func (s StateSet) Equal(other StateSet) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for i := range s.members {
		if s.members[i] != other.members[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of the set, usable as a map key.
// Members are length-prefixed so distinct sets never share a key.
func (s StateSet) Key() string {
	var b strings.Builder
	for _, m := range s.members {
		b.WriteString(strconv.Itoa(len(m)))
		b.WriteByte(':')
		b.WriteString(string(m))
	}
	return b.String()
}

// String renders the set as {a,b,c}.
func (s StateSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range s.members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(m))
	}
	b.WriteByte('}')
	return b.String()
}
