package parser

import (
	stderrors "errors"
	"log/slog"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/lexicon"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Program is the result of a parse.
type Program struct {
	AST      *ast.Expression
	Elements *source.Set
	Source   string
	RootTerm *term.Term
	Pool     *term.Pool
}

// Parser turns source text into a Program using the vocabulary of a
// language Config. A Parser keeps its lexicon between ContinueParsing calls
// and must not be used from several goroutines.
type Parser struct {
	cfg    Config
	logger *slog.Logger
	pool   *term.Pool
	state  *State
}

type Option func(*Parser)

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithPool registers new terms in pool instead of term.DefaultPool.
func WithPool(pool *term.Pool) Option {
	return func(p *Parser) { p.pool = pool }
}

func New(cfg Config, opts ...Option) *Parser {
	cfg.withDefaults()
	p := &Parser{cfg: cfg, logger: cfg.Logger}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	p.logger = p.logger.With(slog.String("component", "parser"))

	lex := lexicon.New(nil, p.pool)
	lex.Add(
		term.New(term.RoleParameter, DirectParameterURI, term.Name{}),
		term.New(term.RoleParameter, TargetParameterURI, term.Name{}),
	)
	if p.cfg.Core != nil {
		lex.Add(p.cfg.Core)
	}
	p.state = newState(&p.cfg, lex, p.logger)
	return p
}

// Lexicon exposes the scope stack, mainly for inspection and tests.
func (p *Parser) Lexicon() *lexicon.Lexicon { return p.state.lex }

// Parse parses src from the start. Libraries whose canonical paths are in
// ignoringImports are treated as already imported.
func (p *Parser) Parse(src string, ignoringImports ...string) (*Program, error) {
	st := p.state
	st.cur = lexer.New(src)
	st.ignoring = make(map[string]bool, len(ignoringImports))
	for _, path := range ignoringImports {
		st.ignoring[path] = true
	}
	return p.parseDocument(0)
}

// ContinueParsing appends more to the source and parses only the new text.
// Terms defined by earlier input stay visible.
func (p *Parser) ContinueParsing(more string) (*Program, error) {
	st := p.state
	start := len(st.Source())
	st.cur.Append(more)
	st.cur.Seek(start)
	return p.parseDocument(start)
}

func (p *Parser) parseDocument(start int) (*Program, error) {
	st := p.state
	st.nesting = -1
	st.exprStarts = []int{start}
	st.allowSuffix = nil
	st.awaiting = nil
	st.lastEndKeyword = nil
	st.elements.Reset()

	if st.Source() == "" {
		return p.program(ast.New(&ast.Sequence{}, st.CurrentLocation())), nil
	}

	st.buildTraversalTables()
	depth := st.lex.Depth()
	seq, err := st.ParseSequence()
	if err != nil {
		return nil, p.formatError(err)
	}
	st.eatTrivia(true, true)
	if d := st.lex.Depth(); d != depth {
		p.logger.Warn("unbalanced lexicon", slog.Int("before", depth), slog.Int("after", d))
	}
	return p.program(seq), nil
}

// ParseExpression parses src as one primary expression, without sequence
// handling or indentation markers.
func (p *Parser) ParseExpression(src string) (*Program, error) {
	st := p.state
	st.cur = lexer.New(src)
	st.nesting = 0
	st.exprStarts = []int{0}
	st.allowSuffix = nil
	st.awaiting = nil
	st.elements.Reset()
	st.buildTraversalTables()

	st.EatCommentsAndNewlines()
	e, err := st.ParsePrimary()
	if err != nil {
		return nil, p.formatError(err)
	}
	st.EatCommentsAndNewlines()
	if !st.AtEnd() {
		loc := st.restOfLineLocation()
		return nil, p.formatError(errors.New(errors.KindUndefinedTerm, loc, st.suggestTerms(loc)...))
	}
	if e == nil {
		e = ast.New(&ast.Empty{}, st.CurrentLocation())
	}
	return p.program(e), nil
}

func (p *Parser) program(e *ast.Expression) *Program {
	return &Program{
		AST:      e,
		Elements: p.state.elements,
		Source:   p.state.Source(),
		RootTerm: p.state.lex.Bottom(),
		Pool:     p.state.lex.Pool(),
	}
}

// formatError clamps the error into the source and attaches a message.
func (p *Parser) formatError(err error) error {
	var located errors.Located
	if !stderrors.As(err, &located) {
		return err
	}
	n := len(p.state.Source())
	if loc := located.SourceLocation(); n > 0 && (loc.Lo < 0 || loc.Lo >= n) {
		located.SetSourceLocation(source.Span(n-1, n))
	}
	return errors.Format(p.cfg.Formatter, located)
}
