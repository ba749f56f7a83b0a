package testutil

import (
	"testing"

	"GoMatch/internal/automaton"
)

// Scenario is one pattern/input pair with its expected verdict.
type Scenario struct {
	Pattern string
	Input   string
	Match   bool
}

// Scenarios returns the reference verdicts shared by integration tests and
// benchmarks.
func Scenarios() []Scenario {
	return []Scenario{
		{Pattern: "abc", Input: "abc", Match: true},
		{Pattern: "abc", Input: "abcd", Match: false},
		{Pattern: "a*bc", Input: "bc", Match: true},
		{Pattern: "a*bc", Input: "abc", Match: true},
		{Pattern: "a*bc", Input: "aaabc", Match: true},
		{Pattern: "a*bc", Input: "cbc", Match: false},
		{Pattern: ".bc$", Input: "abc", Match: true},
		{Pattern: ".bc$", Input: "abcd", Match: false},
		{Pattern: "", Input: "", Match: true},
		{Pattern: "", Input: "x", Match: false},
		{Pattern: "a*$", Input: "", Match: true},
		{Pattern: "h.*", Input: "hello, world", Match: true},
	}
}

// MustCompile compiles pattern or fails the test.
func MustCompile(t testing.TB, pattern string) *automaton.FSM {
	t.Helper()
	f, err := automaton.Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return f
}
