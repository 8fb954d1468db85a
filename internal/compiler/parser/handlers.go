package parser

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// HandleRequire parses "require <type> <name>" and adds the resolved
// resource term to the lexicon.
func HandleRequire(st *State) (ast.Kind, error) {
	st.EatCommentsAndWhitespace()

	types := append([]ResourceType(nil), st.cfg.ResourceTypes...)
	sort.SliceStable(types, func(i, j int) bool {
		return strings.ToLower(types[i].Name.Normalized()) > strings.ToLower(types[j].Name.Normalized())
	})
	var rt *ResourceType
	for i := range types {
		if st.TryEating(types[i].Name) {
			rt = &types[i]
			break
		}
	}
	if rt == nil {
		valid := make([]term.Name, len(types))
		for i, t := range types {
			valid[len(types)-1-i] = t.Name
		}
		return nil, errors.InvalidResourceType(valid, source.Span(st.Offset(), len(st.Source())))
	}

	st.EatCommentsAndWhitespace()
	if st.IsNextQuote() {
		return nil, errors.New(errors.KindQuotedResourceTerm, st.CurrentLocation())
	}

	name := rt.Name
	if rt.HasName {
		var err error
		name, err = st.ParseTermNameEagerly(rt.StoppingAt, source.StylingResource)
		if err != nil {
			return nil, err
		}
		if name.IsEmpty() {
			return nil, errors.Missing([]errors.Expected{errors.ResourceName}, errors.NoContext, st.CurrentLocation())
		}
	} else {
		st.termNameStart = st.Offset()
	}
	loc := st.TermNameLocation()
	st.EatCommentsAndWhitespace()

	t, err := st.cfg.Resolver.Resolve(ResourceRequest{Type: *rt, Name: name, Ignoring: st.ignoring, Location: loc})
	if err != nil {
		return nil, errors.ImportFailure(err, loc)
	}
	if t == nil {
		return nil, errors.ImportFailure(&errors.ResourceNotFound{Kind: rt.Kind, Name: name.Normalized()}, loc)
	}
	if t.Resource != nil && t.Resource.Path != "" {
		st.ignoring[t.Resource.Path] = true
	}
	st.logger.Debug("required resource", slog.String("resource", t.URI().String()), slog.String("kind", rt.Kind))
	st.lex.Add(t)
	return &ast.Require{Resource: t}, nil
}

// IsNextQuote reports whether a string literal opens at the cursor.
func (st *State) IsNextQuote() bool {
	for _, d := range st.cfg.Delimiters.String {
		if st.IsNextName(d.Begin) {
			return true
		}
	}
	return false
}

func HandleUse(st *State) (ast.Kind, error) {
	module, err := st.ParsePrimaryOrThrow(errors.NoContext)
	if err != nil {
		return nil, err
	}
	return &ast.Use{Module: module}, nil
}

// HandleReturn parses "return" with an optional value on the same line.
func HandleReturn(st *State) (ast.Kind, error) {
	st.EatCommentsAndWhitespace()
	if st.AtEndOfLine() {
		return &ast.Return{}, nil
	}
	value, err := st.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

func HandleRaise(st *State) (ast.Kind, error) {
	st.EatCommentsAndWhitespace()
	e, err := st.ParsePrimaryOrThrow(errors.NoContext)
	if err != nil {
		return nil, err
	}
	return &ast.Raise{Error: e}, nil
}

func HandleThat(*State) (ast.Kind, error)        { return &ast.That{}, nil }
func HandleIt(*State) (ast.Kind, error)          { return &ast.It{}, nil }
func HandleNull(*State) (ast.Kind, error)        { return &ast.Null{}, nil }
func HandleMissing(*State) (ast.Kind, error)     { return &ast.Missing{}, nil }
func HandleUnspecified(*State) (ast.Kind, error) { return &ast.Unspecified{}, nil }

func HandleRef(st *State) (ast.Kind, error) {
	e, err := st.ParsePrimaryOrThrow(errors.NoContext)
	if err != nil {
		return nil, err
	}
	return &ast.Reference{To: e}, nil
}

func HandleGet(st *State) (ast.Kind, error) {
	e, err := st.ParsePrimaryOrThrow(errors.NoContext)
	if err != nil {
		return nil, err
	}
	return &ast.Get{Target: e}, nil
}

// HandleDebugInspectTerm logs the description of the following term.
func HandleDebugInspectTerm(st *State) (ast.Kind, error) {
	t, err := st.EatTerm()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Missing([]errors.Expected{errors.TermOfRole(nil)}, errors.NoContext, st.ExpressionLocation())
	}
	message := t.Describe()
	st.logDebugMessage(message)
	return &ast.DebugInspectTerm{Term: t, Message: message}, nil
}

// HandleDebugInspectLexicon logs the current scope stack.
func HandleDebugInspectLexicon(st *State) (ast.Kind, error) {
	message := st.lex.Describe()
	st.logDebugMessage(message)
	return &ast.DebugInspectLexicon{Message: message}, nil
}

func (st *State) logDebugMessage(message string) {
	loc := st.ExpressionLocation()
	st.logger.Debug("inspection", slog.String("source", loc.Text(st.Source())), slog.String("message", message))
}

// ParseString parses a primary and keeps it only if it is a string literal.
// Otherwise nothing is consumed.
func (st *State) ParseString() (*ast.Expression, string, error) {
	var (
		e     *ast.Expression
		value string
		err   error
	)
	st.Attempt(func() bool {
		e, err = st.ParsePrimary()
		if err != nil || e == nil {
			return false
		}
		s, ok := e.Kind.(*ast.String)
		if !ok {
			return false
		}
		value = s.Value
		return true
	})
	if err != nil {
		return nil, "", err
	}
	if _, ok := kindOf[*ast.String](e); !ok {
		return nil, "", nil
	}
	return e, value, nil
}

func kindOf[K ast.Kind](e *ast.Expression) (K, bool) {
	var zero K
	if e == nil {
		return zero, false
	}
	k, ok := e.Kind.(K)
	return k, ok
}
