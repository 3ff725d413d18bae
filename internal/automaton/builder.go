package automaton

// Builder accumulates the parts of an automaton. It is not safe for
// concurrent use; Build hands out an independent, immutable Automaton.
type Builder struct {
	states      []State
	stateIndex  map[State]struct{}
	alphabet    []Symbol
	symbolIndex map[Symbol]struct{}
	accepting   []State
	start       State
	delta       map[State]map[Symbol][]State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		stateIndex:  map[State]struct{}{},
		symbolIndex: map[Symbol]struct{}{},
		delta:       map[State]map[Symbol][]State{},
	}
}

// AddStates declares states, ignoring ones already declared.
func (b *Builder) AddStates(states ...State) *Builder {
	for _, s := range states {
		if _, ok := b.stateIndex[s]; ok {
			continue
		}
		b.stateIndex[s] = struct{}{}
		b.states = append(b.states, s)
	}
	return b
}

// AddSymbols extends the alphabet, ignoring symbols already present.
func (b *Builder) AddSymbols(symbols ...Symbol) *Builder {
	for _, sym := range symbols {
		if _, ok := b.symbolIndex[sym]; ok {
			continue
		}
		b.symbolIndex[sym] = struct{}{}
		b.alphabet = append(b.alphabet, sym)
	}
	return b
}

// AddAccepting marks states as accepting.
func (b *Builder) AddAccepting(states ...State) *Builder {
	b.accepting = append(b.accepting, states...)
	return b
}

// SetStart sets the start state.
func (b *Builder) SetStart(s State) *Builder {
	b.start = s
	return b
}

// AddTransition adds to as a destination of (from, sym). Repeated calls for
// the same pair accumulate destinations.
func (b *Builder) AddTransition(from State, sym Symbol, to State) *Builder {
	bySym, ok := b.delta[from]
	if !ok {
		bySym = map[Symbol][]State{}
		b.delta[from] = bySym
	}
	bySym[sym] = append(bySym[sym], to)
	return b
}

// Build validates the accumulated parts and returns the Automaton.
func (b *Builder) Build() (*Automaton, error) {
	a := &Automaton{
		states:      make([]State, len(b.states)),
		stateIndex:  make(map[State]struct{}, len(b.states)),
		alphabet:    make([]Symbol, len(b.alphabet)),
		symbolIndex: make(map[Symbol]struct{}, len(b.alphabet)),
		accepting:   NewStateSet(b.accepting...),
		start:       b.start,
		delta:       make(map[State]map[Symbol]StateSet, len(b.delta)),
	}
	copy(a.states, b.states)
	copy(a.alphabet, b.alphabet)
	for s := range b.stateIndex {
		a.stateIndex[s] = struct{}{}
	}
	for sym := range b.symbolIndex {
		a.symbolIndex[sym] = struct{}{}
	}
	for from, bySym := range b.delta {
		out := make(map[Symbol]StateSet, len(bySym))
		for sym, to := range bySym {
			out[sym] = NewStateSet(to...)
		}
		a.delta[from] = out
	}

	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustBuild is like Build but panics if the automaton is inconsistent.
func (b *Builder) MustBuild() *Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
