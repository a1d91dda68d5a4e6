package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/dslogic/pkg/dsp"
)

var unparseCmd = &cobra.Command{
	Use:   "unparse [file]",
	Short: "Convert canonical Ds text into Dsp surface syntax",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input, err := readInput(path)
		if err != nil {
			return fmt.Errorf("ds unparse: %w", err)
		}
		out, err := dsp.Unparse(string(input))
		if err != nil {
			return fmt.Errorf("ds unparse: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unparseCmd)
}
