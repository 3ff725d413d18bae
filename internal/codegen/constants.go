// Package codegen provides code generation helpers and constants.
package codegen

import (
	"fmt"
	"go/types"
	"unicode"
	"unicode/utf8"
)

// Variable names used in generated code
const (
	WordName       = "word"
	SymbolName     = "symbol"
	StateName      = "state"
	IndexName      = "idx"
	OkName         = "ok"
	DeadStateValue = -1
)

// reserved holds identifiers the generated files declare or import besides
// the per-matcher names.
var reserved = map[string]bool{
	WordName: true, SymbolName: true, StateName: true, IndexName: true, OkName: true,
	"tests": true, "tt": true, "got": true, "want": true, "words": true,
	"t": true, "b": true, "i": true, "testing": true, "_": true,
}

// IsReserved reports whether name would clash with an identifier of the
// generated code, predeclared Go identifiers included.
func IsReserved(name string) bool {
	return reserved[name] || types.Universe.Lookup(name) != nil
}

// Verdict strings returned by generated Process methods.
const (
	AcceptedText = "ACCEPTED"
	RejectedText = "REJECTED"
	InvalidText  = "INVALID"
)

// SymbolsVar returns the name of the symbol index table for a matcher.
func SymbolsVar(name string) string {
	return fmt.Sprintf("%sSymbols", LowerFirst(name))
}

// TransitionsVar returns the name of the transition table for a matcher.
func TransitionsVar(name string) string {
	return fmt.Sprintf("%sTransitions", LowerFirst(name))
}

// AcceptingVar returns the name of the accepting table for a matcher.
func AcceptingVar(name string) string {
	return fmt.Sprintf("%sAccepting", LowerFirst(name))
}

// VerdictConst returns the exported constant holding a verdict string,
// e.g. VerdictConst("Even", "Accepted") = "EvenAccepted".
func VerdictConst(name, verdict string) string {
	return UpperFirst(name) + verdict
}

// LowerFirst converts the first character of a string to lowercase.
// Characters without case, such as '_', are left alone.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
