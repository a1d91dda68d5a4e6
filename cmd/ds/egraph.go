package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/dslogic/pkg/ds"
	"github.com/gitrdm/dslogic/pkg/egraph"
)

var egraphCmd = &cobra.Command{
	Use:   "egraph [file]",
	Short: "Drive an e-graph from a small directive script",
	Long: `egraph reads one directive per line from a file or stdin:

  add <ds-term>    add a Ds term, printing its e-class id
  merge <a> <b>    union the e-classes with the given ids, printing the result
  rebuild          drain the repair worklist to a fixed point
  find <id>        print the canonical representative of an e-class id`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input, err := readInput(path)
		if err != nil {
			return fmt.Errorf("ds egraph: %w", err)
		}
		g := egraph.New()
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(bytes.NewReader(input))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if err := runEgraphDirective(g, line, out); err != nil {
				return fmt.Errorf("ds egraph: %w", err)
			}
		}
		return scanner.Err()
	},
}

func runEgraphDirective(g *egraph.EGraph, line string, out interface{ Write([]byte) (int, error) }) error {
	fields := strings.SplitN(line, " ", 2)
	switch fields[0] {
	case "add":
		if len(fields) != 2 {
			return fmt.Errorf("add requires a term argument")
		}
		t, err := ds.ParseTerm(fields[1])
		if err != nil {
			return err
		}
		id := g.AddTerm(t)
		fmt.Fprintf(out, "%d\n", id)
	case "merge":
		parts := strings.Fields(strings.TrimPrefix(line, "merge"))
		if len(parts) != 2 {
			return fmt.Errorf("merge requires two e-class ids")
		}
		a, err := parseClassID(parts[0])
		if err != nil {
			return err
		}
		b, err := parseClassID(parts[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\n", g.Merge(a, b))
	case "rebuild":
		g.Rebuild()
	case "find":
		if len(fields) != 2 {
			return fmt.Errorf("find requires an e-class id")
		}
		id, err := parseClassID(fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\n", g.Find(id))
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
	return nil
}

func parseClassID(s string) (egraph.EClassID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid e-class id %q: %w", s, err)
	}
	return egraph.EClassID(n), nil
}

func init() {
	rootCmd.AddCommand(egraphCmd)
}
