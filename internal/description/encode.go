package description

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/KromDaniel/fagen/internal/automaton"
)

// Encode writes a in the description format. Transitions are written in
// sorted order so the output is stable.
func Encode(w io.Writer, a *automaton.Automaton) error {
	for _, s := range a.States() {
		if !encodable(string(s)) {
			return fmt.Errorf("state %q cannot be encoded", s)
		}
	}
	for _, sym := range a.Alphabet() {
		if !encodable(string(sym)) {
			return fmt.Errorf("symbol %q cannot be encoded", sym)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, joinSymbols(a.Alphabet()))
	fmt.Fprintln(bw, joinStates(a.States()))
	fmt.Fprintln(bw, joinStates(a.Accepting().Members()))
	fmt.Fprintln(bw, a.Start())
	for _, t := range a.Transitions() {
		fmt.Fprintf(bw, "%s %s %s\n", t.From, t.Symbol, t.To)
	}
	return bw.Flush()
}

// EncodeFile writes a to path, replacing any existing file.
func EncodeFile(path string, a *automaton.Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func joinSymbols(symbols []automaton.Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

func joinStates(states []automaton.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// encodable reports whether token survives a round trip through
// strings.Fields.
func encodable(token string) bool {
	return token != "" && !strings.ContainsFunc(token, unicode.IsSpace)
}
