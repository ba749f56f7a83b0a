package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"GoMatch/internal/automaton"
)

func newMatchCmd(flags *rootFlags) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "match PATTERN [INPUT...]",
		Short: "Match inputs against a pattern",
		Long:  "Match each INPUT against PATTERN. Without inputs, every line read\nfrom stdin is matched until EOF.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())
			fsm, err := automaton.CompileWithOptions(args[0], cfg.CompileOptions(logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if quiet {
				out = io.Discard
			}
			allMatched := true
			report := func(input string) {
				verdict := "match"
				if !fsm.MatchString(input) {
					verdict = "no match"
					allMatched = false
				}
				fmt.Fprintf(out, "%s\t%s\n", input, verdict)
			}

			if len(args) > 1 {
				for _, input := range args[1:] {
					report(input)
				}
			} else {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					report(sc.Text())
				}
				if err := sc.Err(); err != nil {
					return errors.Wrap(err, "read stdin")
				}
			}

			if quiet && !allMatched {
				return errNoMatch
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing; exit 1 unless every input matches")
	return cmd
}
