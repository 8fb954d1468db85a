package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/ast"
)

var parseSexp bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a script",
	Long: `Parses a script and prints its syntax tree, one node per line.

Examples:
  bushel parse hello.bushel
  bushel parse --sexp hello.bushel`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseSexp, "sexp", false, "print a single s-expression instead of a tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, prog, err := s.parseFile(args[0])
	if err != nil {
		return err
	}
	if parseSexp {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ast.Sexp(prog.AST))
		return err
	}
	return ast.Fprint(cmd.OutOrStdout(), prog.AST)
}

// absPath is the canonical path a script is ignored under when it requires
// itself.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
