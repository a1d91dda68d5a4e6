package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ds",
	Short: "Parse, unparse, and forward-search the ds term language",
	Long: `ds operates the symbolic deduction engine and its surface bridge:
- parse/unparse translate between Dsp surface syntax and canonical Ds text.
- search runs forward-chaining resolution over a set of rules and facts.
- egraph drives a congruence-closure e-graph from a small directive script.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
