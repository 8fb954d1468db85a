package parser

import (
	"log/slog"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/lexicon"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
	"github.com/btouchard/bushel/internal/compiler/traversal"
)

// State is the mutable machine of one parser. Keyword, type and command
// handlers receive it and drive the parse through its methods.
type State struct {
	cfg    *Config
	logger *slog.Logger

	cur      *lexer.Cursor
	lex      *lexicon.Lexicon
	elements *source.Set

	nesting        int
	exprStarts     []int
	allowSuffix    []bool
	awaiting       [][]term.Name
	lastEndKeyword *term.Name
	termNameStart  int
	ignoring       map[string]bool

	keywords     *traversal.Table
	keywordByKey map[string]string
	prefixOps    *traversal.Table
	prefixByKey  map[string]string
	postfixOps   *traversal.Table
	postfixByKey map[string]string
	infixOps     *traversal.Table
	infixByKey   map[string]string
}

func newState(cfg *Config, lex *lexicon.Lexicon, logger *slog.Logger) *State {
	return &State{
		cfg:      cfg,
		logger:   logger,
		cur:      lexer.New(""),
		lex:      lex,
		elements: source.NewSet(),
		ignoring: make(map[string]bool),
	}
}

func (st *State) buildTraversalTables() {
	var names []term.Name
	names, st.keywordByKey = sortedNames(st.cfg.Keywords)
	st.keywords = traversal.Build(names)
	names, st.prefixByKey = sortedNames(st.cfg.Operators.Prefix)
	st.prefixOps = traversal.Build(names)
	names, st.postfixByKey = sortedNames(st.cfg.Operators.Postfix)
	st.postfixOps = traversal.Build(names)
	names, st.infixByKey = sortedNames(st.cfg.Operators.Infix)
	st.infixOps = traversal.Build(names)
	st.logger.Debug("built traversal tables",
		slog.Int("keywords", st.keywords.Len()),
		slog.Int("prefix", st.prefixOps.Len()),
		slog.Int("postfix", st.postfixOps.Len()),
		slog.Int("infix", st.infixOps.Len()),
	)
}

func (st *State) Config() *Config                  { return st.cfg }
func (st *State) Logger() *slog.Logger             { return st.logger }
func (st *State) Lexicon() *lexicon.Lexicon        { return st.lex }
func (st *State) Elements() *source.Set            { return st.elements }
func (st *State) Source() string                   { return st.cur.Source() }
func (st *State) Offset() int                      { return st.cur.Offset() }
func (st *State) Rest() string                     { return st.cur.Rest() }
func (st *State) RestOfLine() string               { return st.cur.RestOfLine() }
func (st *State) AtEnd() bool                      { return st.cur.AtEnd() }
func (st *State) NestingLevel() int                { return st.nesting }
func (st *State) CurrentLocation() source.Location { return source.At(st.cur.Offset()) }

// AtEndOfLine reports whether the next character is a line break or the
// input is exhausted.
func (st *State) AtEndOfLine() bool {
	return st.cur.AtEnd() || lexer.IsNewline(st.cur.Current())
}

// ExpressionStart is the offset at which the innermost primary began.
func (st *State) ExpressionStart() int {
	if len(st.exprStarts) == 0 {
		return 0
	}
	return st.exprStarts[len(st.exprStarts)-1]
}

// ExpressionLocation spans from the innermost primary's start to here.
func (st *State) ExpressionLocation() source.Location {
	return st.LocationFrom(st.ExpressionStart())
}

// TermNameLocation spans the last term name parsed eagerly or lazily.
func (st *State) TermNameLocation() source.Location {
	return st.LocationFrom(st.termNameStart)
}

// LocationFrom spans from start to the current offset.
func (st *State) LocationFrom(start int) source.Location {
	return source.Span(start, st.cur.Offset())
}

// LastEndKeyword returns the keyword that ended the most recent sequence.
func (st *State) LastEndKeyword() (term.Name, bool) {
	if st.lastEndKeyword == nil {
		return term.Name{}, false
	}
	return *st.lastEndKeyword, true
}

// SuffixSpecifierAllowed reports whether the innermost primary may take a
// suffix specifier.
func (st *State) SuffixSpecifierAllowed() bool {
	if len(st.allowSuffix) == 0 {
		return true
	}
	return st.allowSuffix[len(st.allowSuffix)-1]
}

// IgnoresImport reports whether the resource at path must not be imported
// again by this parse.
func (st *State) IgnoresImport(path string) bool { return st.ignoring[path] }

type checkpoint struct {
	offset  int
	mark    int
	lastEnd *term.Name
	termAt  int
}

func (st *State) save() checkpoint {
	return checkpoint{offset: st.cur.Offset(), mark: st.elements.Mark(), lastEnd: st.lastEndKeyword, termAt: st.termNameStart}
}

func (st *State) restore(c checkpoint) {
	st.cur.Seek(c.offset)
	st.elements.Rollback(c.mark)
	st.lastEndKeyword = c.lastEnd
	st.termNameStart = c.termAt
}

// Attempt runs fn and undoes everything it consumed when it reports false.
// This is the parser's only backtracking primitive.
func (st *State) Attempt(fn func() bool) bool {
	c := st.save()
	if fn() {
		return true
	}
	st.restore(c)
	return false
}

// Awaiting runs fn while markers may end an expression. A primary that
// meets one of them yields nothing instead of failing.
func (st *State) Awaiting(markers []term.Name, fn func() (*ast.Expression, error)) (*ast.Expression, error) {
	st.awaiting = append(st.awaiting, markers)
	defer func() { st.awaiting = st.awaiting[:len(st.awaiting)-1] }()
	return fn()
}

// WithScope parses inside a fresh anonymous scope and wraps the result.
func (st *State) WithScope(fn func() (*ast.Expression, error)) (*ast.Expression, error) {
	st.lex.PushUnnamedDictionary()
	inner, err := func() (*ast.Expression, error) {
		defer st.lex.Pop()
		return fn()
	}()
	if err != nil {
		return nil, err
	}
	return ast.New(&ast.Scoped{Inner: inner}, st.ExpressionLocation()), nil
}

// WithTerminology runs fn with t's dictionary as the innermost frame.
func (st *State) WithTerminology(t *term.Term, fn func() error) error {
	st.lex.Push(t)
	defer st.lex.Pop()
	return fn()
}

// WithTerminologyOf is WithTerminology for the principal term of e, or a
// plain call of fn when e has none.
func (st *State) WithTerminologyOf(e *ast.Expression, fn func() error) error {
	if t := e.PrincipalTerm(); t != nil {
		return st.WithTerminology(t, fn)
	}
	return fn()
}

// StylingFor maps a term role to its highlighting category.
func StylingFor(role term.Role) source.Styling {
	switch role {
	case term.RoleDictionary:
		return source.StylingDictionary
	case term.RoleType:
		return source.StylingType
	case term.RoleProperty:
		return source.StylingProperty
	case term.RoleConstant:
		return source.StylingConstant
	case term.RoleCommand:
		return source.StylingCommand
	case term.RoleParameter:
		return source.StylingParameter
	case term.RoleVariable:
		return source.StylingVariable
	}
	return source.StylingResource
}
