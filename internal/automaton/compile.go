package automaton

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

var (
	ErrPatternTooLong  = errors.New("pattern exceeds maximum length")
	ErrNothingToRepeat = errors.New("'*' has nothing to repeat")
)

// Compile compiles pattern with DefaultOptions.
//
// The dialect is deliberately small: '.' matches any printable ASCII byte,
// '$' matches only the end of input, '*' repeats the preceding atom zero or
// more times, and every other byte matches itself.
func Compile(pattern string) (*FSM, error) {
	return CompileWithOptions(pattern, DefaultOptions())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *FSM {
	f, err := Compile(pattern)
	if err != nil {
		panic(`automaton: Compile(` + pattern + `): ` + err.Error())
	}
	return f
}

// CompileWithOptions compiles pattern into an FSM.
func CompileWithOptions(pattern string, opts Options) (*FSM, error) {
	if opts.MaxPatternLength > 0 && len(pattern) > opts.MaxPatternLength {
		return nil, errors.Wrapf(ErrPatternTooLong, "%d > %d bytes", len(pattern), opts.MaxPatternLength)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &compiler{columns: make([]Column, 1, len(pattern)+1)}
	for i := 0; i < len(pattern); i++ {
		if err := c.emit(pattern[i]); err != nil {
			return nil, errors.Wrapf(err, "compile %q at offset %d", pattern, i)
		}
	}

	logger.Debug("compiled pattern", "pattern", pattern, "states", len(c.columns))
	return &FSM{pattern: pattern, columns: c.columns}, nil
}

// compiler accumulates columns. columns[0] is always the sink.
type compiler struct {
	columns []Column
	// repeatable is set when the last column holds an atom that '*' may
	// rewrite.
	repeatable bool
}

func (c *compiler) emit(sym byte) error {
	switch sym {
	case '*':
		if !c.repeatable {
			return ErrNothingToRepeat
		}
		c.repeatable = false
		return c.repeatLast()
	case '.':
		var col Column
		next := c.nextIndex()
		for b := printableLo; b < printableHi; b++ {
			col[b] = Action{Next: next, Delta: 1}
		}
		c.push(col, true)
	case '$':
		var col Column
		col[EndOfInput] = Action{Next: c.nextIndex(), Delta: 1}
		c.push(col, false)
	default:
		var col Column
		// Bytes past the table have no slot. The column stays empty and
		// can never match, like the input bytes it would have named.
		if int(sym) < EndOfInput {
			col[sym] = Action{Next: c.nextIndex(), Delta: 1}
		}
		c.push(col, true)
	}
	return nil
}

// nextIndex is the state a column appended now would advance to on match.
func (c *compiler) nextIndex() State {
	return State(len(c.columns) + 1)
}

func (c *compiler) push(col Column, repeatable bool) {
	c.columns = append(c.columns, col)
	c.repeatable = repeatable
}

// repeatLast rewrites the last column in place: a match loops back onto the
// column, and a miss falls through to the following state without
// consuming input.
func (c *compiler) repeatLast() error {
	n := State(len(c.columns))
	last := &c.columns[n-1]
	for sym := range last {
		switch a := last[sym]; a.Next {
		case n:
			last[sym].Next = n - 1
		case DeadState:
			last[sym] = Action{Next: n, Delta: 0}
		default:
			return errors.AssertionFailedf(
				"state %d symbol %d: unexpected transition to %d while repeating (want 0 or %d)",
				n-1, sym, a.Next, n)
		}
	}
	return nil
}
