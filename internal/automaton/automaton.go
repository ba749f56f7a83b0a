package automaton

// State is the index of a column in a compiled FSM.
type State uint32

// DeadState is the sink state. No transition is defined out of it, and
// every unset action points at it.
const DeadState State = 0

// Alphabet layout.
const (
	// AlphabetSize is the number of symbols each column maps.
	AlphabetSize = 130

	// EndOfInput is the reserved slot consulted once real input is
	// exhausted. Input bytes never address it.
	EndOfInput = AlphabetSize - 1

	// Wildcard range, inclusive of printableLo, exclusive of printableHi.
	printableLo = 32
	printableHi = 128
)

// Action is the transition taken for one (state, symbol) pair.
type Action struct {
	// Next is the state to move to. DeadState means "no transition".
	Next State
	// Delta is how far the input head moves: 1 to consume a symbol,
	// 0 to fall through to Next without consuming.
	Delta int8
}

// Column maps every symbol of the alphabet to an Action. The zero value
// fails on every symbol.
type Column [AlphabetSize]Action

// FSM is a compiled pattern. Column 0 is the sink; real columns start at 1.
// Reaching State(NumStates()) accepts.
//
// An FSM is immutable once returned by Compile and is safe for concurrent
// use.
type FSM struct {
	pattern string
	columns []Column
}

// Pattern returns the source text the FSM was compiled from.
func (f *FSM) Pattern() string {
	return f.pattern
}

// String returns the source pattern.
func (f *FSM) String() string {
	return f.pattern
}

// NumStates returns the number of columns including the sink.
func (f *FSM) NumStates() int {
	return len(f.columns)
}

// accept is the virtual state one past the last column.
func (f *FSM) accept() State {
	return State(len(f.columns))
}

// Column returns a copy of column s. The second result is false if s is not
// a column of f.
func (f *FSM) Column(s State) (Column, bool) {
	if int(s) >= len(f.columns) {
		return Column{}, false
	}
	return f.columns[s], true
}

// step returns the action for symbol b in state s. Symbols outside the
// table, and states outside the live range, resolve to the failure action.
func (f *FSM) step(s State, b byte) Action {
	if int(b) >= EndOfInput || s == DeadState || int(s) >= len(f.columns) {
		return Action{}
	}
	return f.columns[s][b]
}
