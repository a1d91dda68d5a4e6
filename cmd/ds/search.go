package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/gitrdm/dslogic/pkg/ds"
	"github.com/gitrdm/dslogic/pkg/search"
)

var (
	searchLimitSize  int
	searchBufferSize int
)

var searchCmd = &cobra.Command{
	Use:   "search [file]",
	Short: "Run forward-chaining search over a set of rules and facts",
	Long: `search reads one rule or fact per blank-line-separated block (a fact
is a single term; a rule is its premises, a dash separator line, and its
conclusion) from a file or stdin, admits them, and prints every derivation
forward chaining produces.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input, err := readInput(path)
		if err != nil {
			return fmt.Errorf("ds search: %w", err)
		}
		s := search.New(searchLimitSize, searchBufferSize)
		var parseErrs *multierror.Error
		for _, block := range strings.Split(strings.TrimSpace(string(input)), "\n\n") {
			block = strings.TrimSpace(block)
			if block == "" {
				continue
			}
			if _, err := ds.ParseRule(block); err != nil {
				parseErrs = multierror.Append(parseErrs, err)
				continue
			}
			s.Add(block)
		}
		if err := parseErrs.ErrorOrNil(); err != nil {
			return fmt.Errorf("ds search: %w", err)
		}
		s.Execute(func(r ds.Rule) bool {
			fmt.Fprintln(cmd.OutOrStdout(), r.String())
			return false
		})
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimitSize, "limit-size", 0, "maximum number of admitted rules/facts (0 = unbounded)")
	searchCmd.Flags().IntVar(&searchBufferSize, "buffer-size", 0, "serialisation budget used for admission deduplication (0 = ambient default)")
	rootCmd.AddCommand(searchCmd)
}
