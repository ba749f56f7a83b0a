package automaton

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func FuzzCompileMatch(f *testing.F) {
	f.Add("a*bc", "aaabc")
	f.Add(".bc$", "abc")
	f.Add("", "")
	f.Add("*", "x")
	f.Add(".*$", "\x81\xff")
	f.Add("a**", "aa")
	f.Add("$*", "")

	f.Fuzz(func(t *testing.T, pattern, input string) {
		fsm, err := Compile(pattern)
		if err != nil {
			if errors.HasAssertionFailure(err) {
				t.Fatalf("Compile(%q): %v", pattern, err)
			}
			return // Rejected pattern is acceptable.
		}

		// Run should not panic and must agree across entry points.
		got := fsm.MatchString(input)
		if got != fsm.Match([]byte(input)) {
			t.Fatalf("MatchString and Match disagree for pattern=%q input=%q", pattern, input)
		}
		for s := 0; s < fsm.NumStates(); s++ {
			col, _ := fsm.Column(State(s))
			for sym, a := range col {
				if int(a.Next) > fsm.NumStates() {
					t.Fatalf("state %d symbol %d: next %d out of range", s, sym, a.Next)
				}
			}
		}
	})
}
