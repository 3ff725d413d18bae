package compiler

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/fagen/internal/codegen"
	"github.com/KromDaniel/fagen/internal/engine"
)

// generateTestFile writes a test that checks the generated matcher against
// the verdicts the engine computes for the configured words.
func (c *Compiler) generateTestFile() error {
	name := c.config.Name
	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by fagen for automaton: %s. DO NOT EDIT.", c.source()))

	cases := make([]jen.Code, 0, len(c.config.TestWords))
	for _, word := range c.config.TestWords {
		verdict := engine.Process(c.config.Automaton, word)
		symbols := make([]jen.Code, len(word))
		for i, sym := range word {
			symbols[i] = jen.Lit(string(sym))
		}
		cases = append(cases, jen.Values(
			jen.Index().String().Values(symbols...),
			jen.Id(verdictConstFor(name, verdict)),
		))
	}

	tt := jen.Id("tt")
	f.Func().Id(fmt.Sprintf("Test%sProcess", codegen.UpperFirst(name))).
		Params(jen.Id("t").Op("*").Qual("testing", "T")).
		Block(
			jen.Id("tests").Op(":=").Index().Struct(
				jen.Id(codegen.WordName).Index().String(),
				jen.Id("want").String(),
			).Values(cases...),
			jen.Line(),
			jen.For(jen.List(jen.Id("_"), tt.Clone()).Op(":=").Range().Id("tests")).Block(
				jen.If(
					jen.Id("got").Op(":=").Id(fmt.Sprintf("Compiled%s", name)).Dot("Process").Call(tt.Clone().Dot(codegen.WordName)),
					jen.Id("got").Op("!=").Add(tt.Clone()).Dot("want"),
				).Block(
					jen.Id("t").Dot("Errorf").Call(
						jen.Lit("Process(%q) = %s, want %s"),
						tt.Clone().Dot(codegen.WordName),
						jen.Id("got"),
						tt.Clone().Dot("want"),
					),
				),
			),
		)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sProcess", codegen.UpperFirst(name))).
		Params(jen.Id("b").Op("*").Qual("testing", "B")).
		Block(
			jen.Id("words").Op(":=").Index().Index().String().ValuesFunc(func(g *jen.Group) {
				for _, word := range c.config.TestWords {
					g.Index().String().ValuesFunc(func(w *jen.Group) {
						for _, sym := range word {
							w.Lit(string(sym))
						}
					})
				}
			}),
			jen.Id("b").Dot("ResetTimer").Call(),
			jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
				jen.For(jen.List(jen.Id("_"), jen.Id(codegen.WordName)).Op(":=").Range().Id("words")).Block(
					jen.Id(fmt.Sprintf("Compiled%s", name)).Dot("Process").Call(jen.Id(codegen.WordName)),
				),
			),
		)

	path := c.TestFile()
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format test file: %w", err)
	}
	c.logger.Log("Wrote %s with %d cases", path, len(cases))
	return nil
}

func verdictConstFor(name string, v engine.Verdict) string {
	switch v {
	case engine.Accepted:
		return codegen.VerdictConst(name, "Accepted")
	case engine.Invalid:
		return codegen.VerdictConst(name, "Invalid")
	default:
		return codegen.VerdictConst(name, "Rejected")
	}
}
