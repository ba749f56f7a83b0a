package automaton

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// OmitEmpty skips symbols whose action is the default in every state.
	OmitEmpty bool
}

// Dump writes the transition table to w: one row per symbol, one column per
// state, each cell "(next,delta)". The format is for humans and may change.
func (f *FSM) Dump(w io.Writer, opts DumpOptions) error {
	ew := &errWriter{w: w}
	table := tablewriter.NewWriter(ew)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	header := make([]string, 0, len(f.columns)+1)
	header = append(header, "sym")
	for s := range f.columns {
		header = append(header, strconv.Itoa(s))
	}
	table.SetHeader(header)

	for sym := 0; sym < AlphabetSize; sym++ {
		if opts.OmitEmpty && f.emptyRow(sym) {
			continue
		}
		row := make([]string, 0, len(f.columns)+1)
		row = append(row, SymbolName(sym))
		for s := range f.columns {
			a := f.columns[s][sym]
			row = append(row, fmt.Sprintf("(%d,%d)", a.Next, a.Delta))
		}
		table.Append(row)
	}
	table.Render()
	return ew.err
}

func (f *FSM) emptyRow(sym int) bool {
	for s := range f.columns {
		if f.columns[s][sym] != (Action{}) {
			return false
		}
	}
	return true
}

// SymbolName returns a printable label for an alphabet slot.
func SymbolName(sym int) string {
	switch {
	case sym == EndOfInput:
		return "EOI"
	case sym == ' ':
		return "SP"
	case sym == 127:
		return "DEL"
	case sym > ' ' && sym < 127:
		return string(rune(sym))
	default:
		return fmt.Sprintf("0x%02x", sym)
	}
}

// errWriter remembers the first write error; tablewriter drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
