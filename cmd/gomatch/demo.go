package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"GoMatch/internal/automaton"
)

// demoCases are the pattern/input pairs shown by "gomatch demo".
var demoCases = []struct {
	pattern string
	inputs  []string
}{
	{"abc", []string{"abc", "abcd"}},
	{"a*bc", []string{"bc", "abc", "aaabc", "cbc"}},
	{".bc$", []string{"abc", "abcd"}},
	{"", []string{"", "x"}},
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run built-in examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range demoCases {
				fsm, err := automaton.Compile(c.pattern)
				if err != nil {
					return err
				}
				for _, input := range c.inputs {
					fmt.Fprintf(out, "%-6q %-8q %v\n", c.pattern, input, fsm.MatchString(input))
				}
			}
			return nil
		},
	}
}
