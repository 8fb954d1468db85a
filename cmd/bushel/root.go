package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btouchard/bushel/internal/compiler/catalog"
	"github.com/btouchard/bushel/internal/compiler/english"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/resolver"
)

var (
	cfgFile string
	verbose bool

	cfg    *Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bushel",
	Short: "Bushel script front end",
	Long: `bushel parses scripts written in the English Bushel language.

Commands:
  parse      print the syntax tree of a script
  highlight  print a script with syntax highlighting
  fix        apply a suggested fix for the first parse error
  repl       parse statements interactively
  catalog    import and list application vocabularies`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = LoadConfig(cfgFile); err != nil {
			return err
		}
		logger = newLogger(cfg.LogLevel, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func newLogger(level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// session holds what one command needs to parse scripts.
type session struct {
	store    *catalog.Store
	resolver *resolver.Resolver
}

// openSession opens the configured catalog, if any, and builds a resolver
// over it.
func openSession() (*session, error) {
	s := &session{}
	opts := []resolver.Option{resolver.WithSearchPath(cfg.Libraries.Paths...)}
	if cfg.Catalog.DSN != "" {
		store, err := catalog.Open(cfg.Catalog.DSN, logger)
		if err != nil {
			return nil, err
		}
		s.store = store
		opts = append(opts, resolver.WithCatalog(store))
	}
	if cfg.Catalog.System != "" {
		opts = append(opts, resolver.WithSystemName(cfg.Catalog.System))
	}
	s.resolver = resolver.New(newParser, logger, opts...)
	return s, nil
}

func newParser(r parser.Resolver) *parser.Parser {
	return english.New(r, parser.WithLogger(logger))
}

func (s *session) parser() *parser.Parser { return newParser(s.resolver) }

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// parseFile reads and parses path. Parse errors are returned rendered
// against the source.
func (s *session) parseFile(path string) (string, *parser.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	src := string(data)
	prog, err := s.parser().Parse(src, absPath(path))
	if err != nil {
		return src, nil, &renderedError{src: src, file: path, err: err}
	}
	return src, prog, nil
}

// renderedError prints as a full diagnostic and unwraps to the parse error.
type renderedError struct {
	src, file string
	err       error
}

func (e *renderedError) Error() string {
	return fmt.Sprintf("parse failed\n%s", strings.TrimSuffix(english.Render(e.src, e.file, e.err), "\n"))
}

func (e *renderedError) Unwrap() error { return e.err }
