package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/dslogic/pkg/dsp"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Convert Dsp surface syntax into canonical Ds text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input, err := readInput(path)
		if err != nil {
			return fmt.Errorf("ds parse: %w", err)
		}
		out, err := dsp.Parse(string(input))
		if err != nil {
			return fmt.Errorf("ds parse: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
