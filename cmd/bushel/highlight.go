package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/highlight"
)

var highlightPlain bool

var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Print a script with syntax highlighting",
	Long: `Parses a script and prints it with each term styled by its role.

Examples:
  bushel highlight hello.bushel
  bushel highlight --plain hello.bushel   # list annotations instead`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().BoolVar(&highlightPlain, "plain", false, "list source annotations with their positions")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	src, prog, err := s.parseFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if highlightPlain {
		return highlight.List(out, src, prog.Elements)
	}
	theme := highlight.Theme{}
	if *cfg.Highlight.Color {
		theme = highlight.DefaultTheme()
	}
	_, err = fmt.Fprint(out, highlight.Render(src, prog.Elements, theme))
	return err
}
