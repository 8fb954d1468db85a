package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/english"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/parser"
)

const (
	promptMain = "bushel> "
	promptCont = "   ...> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse statements interactively",
	Long: `Reads statements line by line and prints their syntax trees. Terms
defined by earlier statements stay visible. An unfinished statement, such
as the first line of a block, continues until an empty line. Ctrl+D exits.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.REPL.History); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(cfg.REPL.History); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := newREPLSession(s.parser, s.parser())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Bushel REPL. Ctrl+C cancels input, Ctrl+D exits.")
	for {
		chunk, ok := readChunk(ln, sess)
		if !ok {
			return nil
		}
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		ln.AppendHistory(chunk)
		prog, err := sess.Accept(chunk)
		if err != nil {
			fmt.Fprint(out, english.Render(sess.Source()+chunk, "", err))
			continue
		}
		fmt.Fprintln(out, ast.Sexp(prog.AST))
	}
}

// readChunk reads one line, or when that line leaves a construct
// unfinished, every following line up to an empty one.
func readChunk(ln *liner.State, sess *replSession) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
			b.WriteString(line)
			continue
		}
		b.WriteString(line)
		if !sess.Incomplete(line) {
			return line, true
		}
	}
}

// replSession feeds accepted input to one long-lived parser. Each chunk is
// first checked on a fresh parser over everything accepted so far, so a
// failed chunk never reaches the long-lived parser's source or lexicon.
type replSession struct {
	probe  func() *parser.Parser
	parser *parser.Parser
	src    string
}

func newREPLSession(probe func() *parser.Parser, p *parser.Parser) *replSession {
	return &replSession{probe: probe, parser: p}
}

// Source returns the accepted input.
func (r *replSession) Source() string { return r.src }

// Incomplete reports whether chunk ends inside an unfinished construct,
// so reading should continue on another line.
func (r *replSession) Incomplete(chunk string) bool {
	src := r.src + chunk
	_, err := r.probe().Parse(src)
	return incomplete(src, err)
}

// Accept parses chunk after the accepted input and returns only its
// program.
func (r *replSession) Accept(chunk string) (*parser.Program, error) {
	if _, err := r.probe().Parse(r.src + chunk); err != nil {
		return nil, err
	}
	prog, err := r.parser.ContinueParsing(chunk + "\n")
	if err != nil {
		return nil, err
	}
	r.src += chunk + "\n"
	return prog, nil
}

// incomplete reports whether err is a missing-element error at the very end
// of src.
func incomplete(src string, err error) bool {
	var pe *errors.ParseError
	if err == nil || !stderrors.As(err, &pe) || pe.Kind != errors.KindMissing {
		return false
	}
	return strings.TrimSpace(src[min(pe.Location.Hi, len(src)):]) == "" &&
		pe.Location.Lo >= len(strings.TrimRight(src, " \t\r\n"))-1
}
