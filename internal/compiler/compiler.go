// Package compiler generates Go source for deterministic automata.
//
// The generated matcher is table driven: a symbol index map, a
// [states][symbols]int transition table and an accepting table, with
// Process and Accepts methods on an empty struct type.
package compiler

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/fagen/internal/automaton"
	"github.com/KromDaniel/fagen/internal/codegen"
	"github.com/KromDaniel/fagen/internal/logger"
)

var (
	// ErrNotDeterministic is returned for automata with more than one
	// destination for some (state, symbol) pair.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
	// ErrReservedName is returned for matcher names that clash with
	// identifiers of the generated code.
	ErrReservedName = errors.New("name is reserved in generated code")
)

// Config holds the configuration for code generation.
type Config struct {
	Name             string               // Matcher type name, e.g. "EndsWithAB"
	Package          string               // Package of the generated file
	OutputFile       string               // Path of the generated file
	Source           string               // Where the automaton came from, for the header comment
	Automaton        *automaton.Automaton // Deterministic automaton to compile
	GenerateTestFile bool                 // Generate a _test.go next to OutputFile
	TestWords        [][]automaton.Symbol // Words checked by the generated test
	Verbose          bool                 // Enable verbose logging
	Logger           *logger.Logger       // Overrides the logger built from Verbose
}

// Validate checks the configuration before generation.
func (c Config) Validate() error {
	if !token.IsIdentifier(c.Name) {
		return fmt.Errorf("name %q is not a Go identifier", c.Name)
	}
	if codegen.IsReserved(c.Name) {
		return fmt.Errorf("%w: %q", ErrReservedName, c.Name)
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a Go identifier", c.Package)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.Automaton == nil {
		return fmt.Errorf("automaton cannot be nil")
	}
	if !c.Automaton.IsDeterministic() {
		return ErrNotDeterministic
	}
	return nil
}

// Compiler generates a Go matcher for a deterministic automaton.
type Compiler struct {
	config Config
	file   *jen.File
	logger *logger.Logger
	tables *tables
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	log := config.Logger
	if log == nil {
		log = logger.New(config.Verbose)
	}
	return &Compiler{
		config: config,
		logger: log,
	}
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// TestFile returns the path of the generated test file.
func (c *Compiler) TestFile() string {
	return strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.logger.Section("Code Generation")
	c.build()
	c.logger.Log("Matcher %s: %d states, %d symbols", c.config.Name, len(c.tables.states), len(c.tables.symbols))

	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// Render returns the generated matcher source without writing any file.
func (c *Compiler) Render() ([]byte, error) {
	cfg := c.config
	if cfg.OutputFile == "" {
		cfg.OutputFile = "-"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c.build()

	var b strings.Builder
	if err := c.file.Render(&b); err != nil {
		return nil, err
	}
	return format.Source([]byte(b.String()))
}

// build renders the matcher declarations into a fresh file.
func (c *Compiler) build() {
	c.file = jen.NewFile(c.config.Package)
	c.tables = buildTables(c.config.Automaton)
	c.file.HeaderComment(fmt.Sprintf("Code generated by fagen for automaton: %s. DO NOT EDIT.", c.source()))

	c.generateTypes()
	c.generateTables()
	c.generateProcess()
	c.generateAccepts()
}

func (c *Compiler) source() string {
	if c.config.Source == "" {
		return "<memory>"
	}
	return c.config.Source
}

func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
