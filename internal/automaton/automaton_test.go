package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleDefinition() Definition {
	return Definition{
		States:    []State{"q0", "q1", "q2"},
		Alphabet:  []Symbol{"a", "b"},
		Accepting: []State{"q2"},
		Start:     "q0",
		Transitions: []Transition{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "a", To: "q2"},
			{From: "q1", Symbol: "b", To: "q2"},
		},
	}
}

func TestNew(t *testing.T) {
	a, err := New(exampleDefinition())
	require.NoError(t, err)

	assert.Equal(t, []State{"q0", "q1", "q2"}, a.States())
	assert.Equal(t, []Symbol{"a", "b"}, a.Alphabet())
	assert.Equal(t, State("q0"), a.Start())
	assert.True(t, a.IsAccepting("q2"))
	assert.False(t, a.IsAccepting("q0"))
	assert.True(t, a.HasSymbol("a"))
	assert.False(t, a.HasSymbol("c"))
	assert.Equal(t, 3, a.Size())
	assert.False(t, a.IsDeterministic())

	assert.True(t, a.Next("q0", "a").Equal(NewStateSet("q1", "q2")))
	assert.True(t, a.Next("q0", "b").IsEmpty())
	assert.True(t, a.Next("missing", "a").IsEmpty())
}

func TestNewDeduplicates(t *testing.T) {
	def := exampleDefinition()
	def.States = append(def.States, "q1", "q0")
	def.Alphabet = append(def.Alphabet, "a")
	def.Accepting = append(def.Accepting, "q2")
	def.Transitions = append(def.Transitions, Transition{From: "q0", Symbol: "a", To: "q1"})

	a, err := New(def)
	require.NoError(t, err)
	assert.Equal(t, []State{"q0", "q1", "q2"}, a.States())
	assert.Equal(t, []Symbol{"a", "b"}, a.Alphabet())
	assert.Equal(t, 1, a.Accepting().Len())
	assert.Equal(t, 2, a.Next("q0", "a").Len())
	assert.Len(t, a.Transitions(), 3)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Definition)
		wantErr error
	}{
		{
			name:    "empty start",
			modify:  func(d *Definition) { d.Start = "" },
			wantErr: ErrEmptyStart,
		},
		{
			name:    "undeclared start",
			modify:  func(d *Definition) { d.Start = "q9" },
			wantErr: ErrStartNotInStates,
		},
		{
			name:    "undeclared accepting",
			modify:  func(d *Definition) { d.Accepting = []State{"q2", "q7"} },
			wantErr: ErrAcceptingNotInStates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := exampleDefinition()
			tt.modify(&def)
			_, err := New(def)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransitionsSorted(t *testing.T) {
	a := MustNew(exampleDefinition())
	assert.Equal(t, []Transition{
		{From: "q0", Symbol: "a", To: "q1"},
		{From: "q0", Symbol: "a", To: "q2"},
		{From: "q1", Symbol: "b", To: "q2"},
	}, a.Transitions())
}

func TestStep(t *testing.T) {
	a := MustNew(exampleDefinition())
	got := a.Step(NewStateSet("q0", "q1"), "b")
	assert.True(t, got.Equal(NewStateSet("q2")))

	got = a.Step(EmptySet, "a")
	assert.True(t, got.IsEmpty())
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := MustNew(exampleDefinition())
	states := a.States()
	states[0] = "changed"
	alphabet := a.Alphabet()
	alphabet[0] = "z"

	assert.Equal(t, State("q0"), a.States()[0])
	assert.Equal(t, Symbol("a"), a.Alphabet()[0])
}

func TestBuilderIsIndependent(t *testing.T) {
	b := NewBuilder().
		AddStates("s").
		AddSymbols("x").
		SetStart("s").
		AddTransition("s", "x", "s")
	a, err := b.Build()
	require.NoError(t, err)

	b.AddStates("t").AddTransition("s", "x", "t")
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, 1, a.Next("s", "x").Len())
	assert.True(t, a.IsDeterministic())
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(Definition{States: []State{"a"}, Start: "b"})
	})
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().AddStates("a").AddAccepting("z").SetStart("a").MustBuild()
	})
	assert.NotPanics(t, func() {
		NewBuilder().AddStates("a").SetStart("a").MustBuild()
	})
}
