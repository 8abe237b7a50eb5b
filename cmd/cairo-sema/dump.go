package main

import (
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <module>",
		Short: "Run the pipeline and print a structured dump of the resulting program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prg, err := runPipeline(flags, args[0])
			if err != nil {
				return err
			}
			_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", prg)
			return err
		},
	}
}
