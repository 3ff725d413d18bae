package compiler

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/codegen"
)

// tables is the integer-indexed view of an automaton. The start state is
// always row 0.
type tables struct {
	states      []automaton.State
	symbols     []automaton.Symbol
	transitions [][]int // transitions[state][symbol] = next state (-1 = none)
	accepting   []bool
}

func buildTables(a *automaton.Automaton) *tables {
	t := &tables{symbols: a.Alphabet()}
	index := map[automaton.State]int{}
	add := func(s automaton.State) int {
		if i, ok := index[s]; ok {
			return i
		}
		index[s] = len(t.states)
		t.states = append(t.states, s)
		return index[s]
	}

	add(a.Start())
	for _, s := range a.States() {
		add(s)
	}

	// add may grow t.states here; undeclared destinations get rows too
	for i := 0; i < len(t.states); i++ {
		row := make([]int, len(t.symbols))
		for j, sym := range t.symbols {
			next := a.Next(t.states[i], sym)
			if next.IsEmpty() {
				row[j] = codegen.DeadStateValue
				continue
			}
			row[j] = add(next.Members()[0])
		}
		t.transitions = append(t.transitions, row)
	}

	t.accepting = make([]bool, len(t.states))
	for i, s := range t.states {
		t.accepting[i] = a.IsAccepting(s)
	}
	return t
}

// generateTypes emits the matcher struct, its instance and the verdict
// constants.
func (c *Compiler) generateTypes() {
	name := c.config.Name

	c.file.Commentf("%s matches words against a %d-state deterministic automaton.", name, len(c.tables.states))
	c.file.Type().Id(name).Struct()
	c.file.Line()

	c.file.Var().Id(fmt.Sprintf("Compiled%s", name)).Op("=").Id(name).Values()
	c.file.Line()

	c.file.Const().Defs(
		jen.Id(codegen.VerdictConst(name, "Accepted")).Op("=").Lit(codegen.AcceptedText),
		jen.Id(codegen.VerdictConst(name, "Rejected")).Op("=").Lit(codegen.RejectedText),
		jen.Id(codegen.VerdictConst(name, "Invalid")).Op("=").Lit(codegen.InvalidText),
	)
	c.file.Line()
}

// generateTables emits the symbol index, transition and accepting tables.
func (c *Compiler) generateTables() {
	name := c.config.Name
	numStates := len(c.tables.states)
	numSymbols := len(c.tables.symbols)

	c.file.Var().Id(codegen.SymbolsVar(name)).Op("=").Map(jen.String()).Int().Values(jen.DictFunc(func(d jen.Dict) {
		for i, sym := range c.tables.symbols {
			d[jen.Lit(string(sym))] = jen.Lit(i)
		}
	}))
	c.file.Line()

	rows := make([]jen.Code, numStates)
	for i, row := range c.tables.transitions {
		entries := make([]jen.Code, len(row))
		for j, next := range row {
			entries[j] = jen.Lit(next)
		}
		rows[i] = jen.Values(entries...)
	}

	c.file.Comment("Rows follow the automaton states:")
	for i, s := range c.tables.states {
		c.file.Commentf("  %d: %q", i, string(s))
	}
	c.file.Var().Id(codegen.TransitionsVar(name)).Op("=").
		Index(jen.Lit(numStates)).Index(jen.Lit(numSymbols)).Int().Values(rows...)
	c.file.Line()

	accepting := make([]jen.Code, numStates)
	for i, ok := range c.tables.accepting {
		accepting[i] = jen.Lit(ok)
	}
	c.file.Var().Id(codegen.AcceptingVar(name)).Op("=").Index(jen.Lit(numStates)).Bool().Values(accepting...)
	c.file.Line()
}

// generateProcess emits Process, which returns one of the verdict
// constants.
func (c *Compiler) generateProcess() {
	name := c.config.Name
	state := jen.Id(codegen.StateName)

	c.file.Comment("Process runs word through the automaton. A symbol outside the alphabet")
	c.file.Commentf("stops processing and yields %s.", codegen.VerdictConst(name, "Invalid"))
	c.method("Process").
		Params(jen.Id(codegen.WordName).Index().String()).
		String().
		Block(
			state.Clone().Op(":=").Lit(0),
			jen.For(jen.List(jen.Id("_"), jen.Id(codegen.SymbolName)).Op(":=").Range().Id(codegen.WordName)).Block(
				jen.List(jen.Id(codegen.IndexName), jen.Id(codegen.OkName)).Op(":=").
					Id(codegen.SymbolsVar(name)).Index(jen.Id(codegen.SymbolName)),
				jen.If(jen.Op("!").Id(codegen.OkName)).Block(
					jen.Return(jen.Id(codegen.VerdictConst(name, "Invalid"))),
				),
				jen.If(state.Clone().Op("!=").Lit(codegen.DeadStateValue)).Block(
					state.Clone().Op("=").Id(codegen.TransitionsVar(name)).
						Index(state.Clone()).Index(jen.Id(codegen.IndexName)),
				),
			),
			jen.If(
				state.Clone().Op("!=").Lit(codegen.DeadStateValue).
					Op("&&").Id(codegen.AcceptingVar(name)).Index(state.Clone()),
			).Block(
				jen.Return(jen.Id(codegen.VerdictConst(name, "Accepted"))),
			),
			jen.Return(jen.Id(codegen.VerdictConst(name, "Rejected"))),
		)
	c.file.Line()
}

// generateAccepts emits Accepts as a boolean shorthand for Process.
func (c *Compiler) generateAccepts() {
	name := c.config.Name

	c.file.Comment("Accepts reports whether word is accepted.")
	c.method("Accepts").
		Params(jen.Id(codegen.WordName).Index().String()).
		Bool().
		Block(
			jen.Return(
				jen.Id(name).Values().Dot("Process").Call(jen.Id(codegen.WordName)).
					Op("==").Id(codegen.VerdictConst(name, "Accepted")),
			),
		)
}
