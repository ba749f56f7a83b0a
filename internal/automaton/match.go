package automaton

// MatchString reports whether s is accepted by the FSM as a whole.
func (f *FSM) MatchString(s string) bool {
	return run(f, s)
}

// Match reports whether b is accepted by the FSM as a whole.
func (f *FSM) Match(b []byte) bool {
	return run(f, b)
}

// run drives the table over input in two phases: a consume loop while both
// pattern and input remain, then an end-of-input probe if the pattern is
// still live when input runs out.
//
// Every zero-delta action targets a strictly later state and every
// self-loop consumes, so each iteration advances either head or state.
func run[T string | []byte](f *FSM, input T) bool {
	accept := f.accept()
	state, head := State(1), 0

	for state != DeadState && state < accept && head < len(input) {
		a := f.step(state, input[head])
		state = a.Next
		head += int(a.Delta)
	}
	if state == DeadState {
		return false
	}
	if state < accept {
		state = f.probeEnd(state)
	}
	// Reaching accept with input left over is a reject: patterns match
	// whole inputs.
	return state >= accept && head >= len(input)
}

// probeEnd follows the end-of-input marker from s. Fall-throughs left by
// '*' are chained until a consuming action fires or s leaves the live range.
func (f *FSM) probeEnd(s State) State {
	accept := f.accept()
	for s != DeadState && s < accept {
		a := f.columns[s][EndOfInput]
		s = a.Next
		if a.Delta != 0 {
			break
		}
	}
	return s
}
