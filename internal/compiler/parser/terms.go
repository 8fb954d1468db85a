package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// URIs of the two parameters every command accepts without a name.
var (
	DirectParameterURI = term.IDURI(".direct")
	TargetParameterURI = term.IDURI(".target")
)

// Lookup resolves a term name, as Lexicon.Term and Dictionary.TermNamed do.
type Lookup func(term.Name) *term.Term

// EatTerm eats the longest term name defined in the lexicon, a qualified
// name "lhs : rhs", or a raw form term "#role [uri]".
func (st *State) EatTerm() (*term.Term, error) {
	return st.EatTermFrom(st.lex.Term, nil)
}

// EatTermOrThrow is EatTerm failing with a missing-term error in ctx.
func (st *State) EatTermOrThrow(ctx errors.Context) (*term.Term, error) {
	t, err := st.EatTerm()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Missing([]errors.Expected{errors.TermOfRole(nil)}, ctx, st.CurrentLocation())
	}
	return t, nil
}

// EatTermFrom eats a term from lookup. With a role, only terms of that role
// match and qualification is not attempted.
func (st *State) EatTermFrom(lookup Lookup, role *term.Role) (*term.Term, error) {
	t, err := st.eatDefinedTerm(lookup, role)
	if err != nil || t != nil {
		return t, err
	}
	return st.eatRawFormTerm()
}

type foundTerm struct {
	text string
	term *term.Term
}

// findTerm looks for the longest defined name at the cursor without
// consuming it.
func (st *State) findTerm(lookup Lookup) (*foundTerm, error) {
	st.EatCommentsAndWhitespace()
	line := st.RestOfLine()

	if strings.HasPrefix(line, "|") {
		end := strings.IndexByte(line[1:], '|')
		if end < 0 {
			return nil, errors.New(errors.KindMismatchedPipe, st.ExpressionLocation())
		}
		text := line[:end+2]
		t := lookup(term.NewName(text[1 : len(text)-1]))
		if t == nil {
			return nil, nil
		}
		return &foundTerm{text: text, term: t}, nil
	}

	text := line[:termRunLen(line)]
	for {
		i := strings.LastIndexFunc(text, func(r rune) bool { return !term.IsWordBreaking(r) })
		if i < 0 {
			return nil, nil
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		text = text[:i+size]
		name := term.NewName(text)
		if t := lookup(name); t != nil {
			return &foundTerm{text: text, term: t}, nil
		}
		text = strings.TrimSuffix(text, name.Last())
	}
}

// termRunLen returns the length of the leading run of s that may hold a
// term name: non-breaking characters, whitespace and the scope separator.
func termRunLen(s string) int {
	for i, r := range s {
		if term.IsWordBreaking(r) && !unicode.IsSpace(r) && string(r) != term.ScopeSeparator {
			return i
		}
	}
	return len(s)
}

func (st *State) eatFound(f *foundTerm) {
	st.AddingElement(StylingFor(f.term.Role()), source.SpacingLeftRight, func() { st.cur.Advance(len(f.text)) })
}

func (st *State) eatDefinedTerm(lookup Lookup, role *term.Role) (*term.Term, error) {
	found, err := st.findTerm(lookup)
	if err != nil || found == nil {
		return nil, err
	}
	if role != nil && found.term.Role() != *role {
		return nil, nil
	}
	st.eatFound(found)
	t := found.term
	if role != nil {
		return t, nil
	}

	// lhs : rhs is only a qualified name when rhs is defined in lhs.
	for {
		var qualified *foundTerm
		var ferr error
		st.Attempt(func() bool {
			if !st.TryEatingPrefix(term.ScopeSeparator) {
				return false
			}
			qualified, ferr = st.findTerm(t.Dictionary().TermNamed)
			return ferr == nil && qualified != nil
		})
		if ferr != nil {
			return nil, ferr
		}
		if qualified == nil {
			return t, nil
		}
		st.eatFound(qualified)
		st.EatCommentsAndWhitespace()
		t = qualified.term
	}
}

func (st *State) eatRawFormTerm() (*term.Term, error) {
	if !st.TryEatingPrefixStyled("#", source.StylingKeyword, source.SpacingLeft) {
		return nil, nil
	}
	st.EatCommentsAndWhitespace()
	role, ok := st.EatTermRoleName()
	if !ok {
		return nil, errors.New(errors.KindInvalidTermRole, st.CurrentLocation())
	}
	st.EatCommentsAndWhitespace()

	uri, ok, err := st.EatTermURI(StylingFor(role))
	if err != nil {
		return nil, err
	}
	if !ok {
		uri = st.lex.MakeUniqueURI()
	}
	id := term.ID{Role: role, URI: uri}
	if t := st.lex.TermByID(id); t != nil {
		return t, nil
	}
	return term.NewWithID(id, term.Name{}, true), nil
}

// EatTermRoleName eats a role name such as "type" or "command".
func (st *State) EatTermRoleName() (term.Role, bool) {
	st.EatCommentsAndWhitespace()
	word, ok := term.NextWord(st.Rest())
	if !ok {
		return 0, false
	}
	role, ok := term.ParseRole(word)
	if !ok {
		return 0, false
	}
	st.AddingElement(source.StylingKeyword, source.SpacingLeftRight, func() { st.cur.Advance(len(word)) })
	return role, true
}

// EatTermURI eats "[uri]", "[direct]" or "[target]".
func (st *State) EatTermURI(styling source.Styling) (term.URI, bool, error) {
	if !st.TryEatingPrefixStyled("[", source.StylingKeyword, source.SpacingLeft) {
		return term.URI{}, false, nil
	}
	var uri term.URI
	switch {
	case st.TryEatingPrefix("direct"):
		uri = DirectParameterURI
	case st.TryEatingPrefix("target"):
		uri = TargetParameterURI
	default:
		st.EatCommentsAndWhitespace()
		end := strings.Index(st.Rest(), "]")
		if end < 0 {
			return term.URI{}, false, errors.Missing([]errors.Expected{errors.TermURIAndRawFormEndMarker}, errors.NoContext, st.CurrentLocation())
		}
		parsed, ok := term.ParseURI(st.Rest()[:end])
		if !ok {
			return term.URI{}, false, errors.Missing([]errors.Expected{errors.TermURI}, errors.NoContext, st.CurrentLocation())
		}
		uri = parsed
		st.AddingElement(styling, source.SpacingNone, func() { st.cur.Advance(end) })
	}
	if err := st.eatOrThrowStyled("]", source.SpacingRight); err != nil {
		return term.URI{}, false, err
	}
	return uri, true, nil
}

// ParseTermNameEagerly takes every word up to the end of the line or the
// first stop word. A leading pipe switches to lazy parsing.
func (st *State) ParseTermNameEagerly(stoppingAt []string, styling source.Styling) (term.Name, error) {
	st.EatCommentsAndWhitespace()
	start := st.Offset()
	all := term.Words(st.RestOfLine())
	if len(all) == 0 {
		return term.Name{}, nil
	}
	if all[0] == "|" {
		return st.ParseTermNameLazily(styling)
	}
	var words []string
	for _, w := range all {
		if contains(stoppingAt, w) {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return term.Name{}, nil
	}
	st.eatWords(words, styling)
	st.termNameStart = start
	return term.NameOf(words...), nil
}

// ParseTermNameEagerlyOrThrow fails with a missing-term-name error in ctx.
func (st *State) ParseTermNameEagerlyOrThrow(stoppingAt []string, styling source.Styling, ctx errors.Context) (term.Name, error) {
	name, err := st.ParseTermNameEagerly(stoppingAt, styling)
	if err != nil {
		return term.Name{}, err
	}
	if name.IsEmpty() {
		return term.Name{}, errors.Missing([]errors.Expected{errors.TermName}, ctx, st.CurrentLocation())
	}
	return name, nil
}

// ParseTermNameLazily takes a single word, or every word between two pipes.
func (st *State) ParseTermNameLazily(styling source.Styling) (term.Name, error) {
	st.EatCommentsAndWhitespace()
	start := st.Offset()
	words := term.Words(st.RestOfLine())
	if len(words) == 0 {
		return term.Name{}, nil
	}
	st.eatWords(words[:1], styling)
	if words[0] != "|" {
		st.termNameStart = start
		return term.NameOf(words[0]), nil
	}
	for i := 1; i < len(words); i++ {
		if words[i] == "|" {
			inner := words[1:i]
			st.eatWords(append(append([]string(nil), inner...), "|"), styling)
			st.termNameStart = start
			return term.NameOf(inner...), nil
		}
	}
	return term.Name{}, errors.New(errors.KindMismatchedPipe, st.LocationFrom(start))
}

func (st *State) eatWords(words []string, styling source.Styling) {
	for _, w := range words {
		st.cur.SkipWhitespace(false)
		st.AddingElement(styling, source.SpacingLeftRight, func() { st.cur.Advance(len(w)) })
	}
}

// ParseVariableTerm parses a variable name into a new, undefined term.
func (st *State) ParseVariableTerm(stoppingAt ...string) (*term.Term, error) {
	name, err := st.ParseTermNameEagerly(stoppingAt, source.StylingVariable)
	if err != nil || name.IsEmpty() {
		return nil, err
	}
	return term.New(term.RoleVariable, st.lex.MakeIDURI(name), name), nil
}

// ParseVariableTermOrThrow fails with a missing-variable-name error in ctx.
func (st *State) ParseVariableTermOrThrow(ctx errors.Context, stoppingAt ...string) (*term.Term, error) {
	t, err := st.ParseVariableTerm(stoppingAt...)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Missing([]errors.Expected{errors.VariableName}, ctx, st.CurrentLocation())
	}
	return t, nil
}

// ParseTypeTerm eats a term and keeps it only when it is a type.
func (st *State) ParseTypeTerm() (*term.Term, error) {
	t, err := st.EatTerm()
	if err != nil || t == nil || t.Role() != term.RoleType {
		return nil, err
	}
	return t, nil
}

// ParseTypeTermOrThrow fails with a missing-type error in ctx.
func (st *State) ParseTypeTermOrThrow(ctx errors.Context) (*term.Term, error) {
	t, err := st.ParseTypeTerm()
	if err != nil {
		return nil, err
	}
	if t == nil {
		role := term.RoleType
		return nil, errors.Missing([]errors.Expected{errors.TermOfRole(&role)}, ctx, st.CurrentLocation())
	}
	return t, nil
}

func contains(words []string, w string) bool {
	for _, s := range words {
		if s == w {
			return true
		}
	}
	return false
}

// restOfLineLocation spans from the cursor to the next line break.
func (st *State) restOfLineLocation() source.Location {
	return source.Span(st.Offset(), st.Offset()+lexer.LineEnd(st.Rest()))
}
