package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/errors"
)

var (
	fixWrite  bool
	fixChoice int
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Apply a suggested fix for the first parse error",
	Long: `Parses a script and, if it fails, applies one of the fixes suggested
for the error. The fixed script is printed unless -w is given.

Examples:
  bushel fix broken.bushel
  bushel fix -w --choice 2 broken.bushel`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().BoolVarP(&fixWrite, "write", "w", false, "write the result back to the file")
	fixCmd.Flags().IntVar(&fixChoice, "choice", 1, "which suggested fix to apply, starting at 1")
}

func runFix(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	src, _, err := s.parseFile(args[0])
	if err == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: no errors\n", args[0])
		return nil
	}
	fixed, fix, err := applyFix(src, err, fixChoice)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "applied: %s\n", fix.DescribeInContext(src))

	if fixWrite {
		return os.WriteFile(args[0], []byte(fixed), 0o644)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), fixed)
	return err
}

// applyFix applies the choice-th fix (1-based) suggested by parseErr.
func applyFix(src string, parseErr error, choice int) (string, errors.Fix, error) {
	var located errors.Located
	if !stderrors.As(parseErr, &located) {
		return "", nil, parseErr
	}
	fixes := located.SourceFixes()
	if len(fixes) == 0 {
		return "", nil, fmt.Errorf("no fix suggested: %w", parseErr)
	}
	if choice < 1 || choice > len(fixes) {
		return "", nil, fmt.Errorf("fix %d out of range, %d suggested", choice, len(fixes))
	}
	fix := fixes[choice-1]
	fixed, err := errors.Apply(src, fix)
	if err != nil {
		return "", nil, fmt.Errorf("apply fix: %w", err)
	}
	return fixed, fix, nil
}
