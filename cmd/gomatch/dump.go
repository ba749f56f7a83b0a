package main

import (
	"github.com/spf13/cobra"

	"GoMatch/internal/automaton"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "dump PATTERN",
		Short: "Print the compiled transition table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			fsm, err := automaton.CompileWithOptions(args[0], cfg.CompileOptions(newLogger(cfg, cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			return fsm.Dump(cmd.OutOrStdout(), automaton.DumpOptions{OmitEmpty: !all})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include symbols with no transitions")
	return cmd
}
