package english

import (
	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

var (
	kwAs     = term.NewName("as")
	kwBe     = term.NewName("be")
	kwDo     = term.NewName("do")
	kwElse   = term.NewName("else")
	kwFor    = term.NewName("for")
	kwHandle = term.NewName("handle")
	kwIf     = term.NewName("if")
	kwIn     = term.NewName("in")
	kwLet    = term.NewName("let")
	kwRepeat = term.NewName("repeat")
	kwSet    = term.NewName("set")
	kwTell   = term.NewName("tell")
	kwThen   = term.NewName("then")
	kwTo     = term.NewName("to")
	kwTry    = term.NewName("try")
	kwWhile  = term.NewName("while")
)

func isEmpty(e *ast.Expression) bool {
	if e == nil {
		return true
	}
	_, empty := e.Kind.(*ast.Empty)
	return empty
}

func primaryOrMissing(st *parser.State, ctx errors.Context, expected ...errors.Expected) (*ast.Expression, error) {
	e, err := st.ParsePrimary()
	if err != nil {
		return nil, err
	}
	if isEmpty(e) {
		return nil, errors.Missing(expected, ctx, st.CurrentLocation())
	}
	return e, nil
}

// handleFunction parses
//
//	on name
//	  param [uri] (argument): type
//	do
//	  ...
//	end
func handleFunction(st *parser.State) (ast.Kind, error) {
	name, err := st.ParseTermNameEagerly(nil, source.StylingCommand)
	if err != nil {
		return nil, err
	}
	if name.IsEmpty() {
		return nil, errors.Missing([]errors.Expected{errors.FunctionName}, errors.NoContext, source.Span(st.Offset(), len(st.Source())))
	}
	if err := st.EatLineBreakOrThrow(errors.NoContext); err != nil {
		return nil, err
	}

	fn := &ast.Function{}
	body, err := st.WithScope(func() (*ast.Expression, error) {
		if err := parseParameters(st, fn); err != nil {
			return nil, err
		}
		st.EatCommentsAndNewlines()
		if err := st.EatOrThrow("do"); err != nil {
			return nil, err
		}

		// The command lives outside the function scope so that callers
		// see it after the definition.
		lex := st.Lexicon()
		scope := lex.Top()
		lex.Pop()
		fn.Name = lex.LookUpOrDefine(term.RoleCommand, name, term.NewDictionary(fn.Parameters...))
		lex.Push(scope)

		if err := st.EatLineBreakOrThrow(errors.ToBeginBlock("function body")); err != nil {
			return nil, err
		}
		lex.Add(fn.Arguments...)
		return st.ParseSequence()
	})
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func parseParameters(st *parser.State, fn *ast.Function) error {
	for {
		st.EatSignificantNewlines()
		if st.IsNext("do") {
			return nil
		}
		name, err := st.ParseTermNameEagerly([]string{"[", "(", ":"}, source.StylingParameter)
		if err != nil {
			return err
		}
		if name.IsEmpty() {
			return nil
		}
		uri, ok, err := st.EatTermURI(source.StylingParameter)
		if err != nil {
			return err
		}
		if !ok {
			uri = term.IDURI(name.Normalized())
		}
		fn.Parameters = append(fn.Parameters, term.New(term.RoleParameter, uri, name))

		argument := name
		if st.TryEatingPrefixStyled("(", source.StylingKeyword, source.SpacingLeft) {
			n, err := st.ParseTermNameEagerly([]string{")"}, source.StylingVariable)
			if err != nil {
				return err
			}
			if !n.IsEmpty() {
				argument = n
			}
			if err := st.EatOrThrow(")"); err != nil {
				return err
			}
		}
		fn.Arguments = append(fn.Arguments, term.New(term.RoleVariable, st.Lexicon().MakeIDURI(argument), argument))

		var typ *ast.Expression
		if st.TryEatingPrefixStyled(":", source.StylingKeyword, source.SpacingRight) {
			if typ, err = st.ParsePrimary(); err != nil {
				return err
			}
			if isEmpty(typ) {
				typ = nil
			}
		}
		fn.Types = append(fn.Types, typ)

		if !st.TryEatingLineBreak() && !st.TryEatingPrefixStyled(",", source.StylingKeyword, source.SpacingRight) {
			return nil
		}
	}
}

// handleBlockArguments parses "take a, b do ...".
func handleBlockArguments(st *parser.State) (ast.Kind, error) {
	block := &ast.Block{}
	body, err := st.WithScope(func() (*ast.Expression, error) {
		for {
			t, err := st.ParseVariableTerm(",", "do")
			if err != nil {
				return nil, err
			}
			if t == nil {
				break
			}
			block.Arguments = append(block.Arguments, t)
			if !st.TryEatingPrefixStyled(",", source.StylingKeyword, source.SpacingRight) {
				break
			}
		}
		st.Lexicon().Add(block.Arguments...)
		if !st.TryEating(kwDo) {
			return nil, errors.Missing([]errors.Expected{errors.BlockBody}, errors.NoContext, st.ExpressionLocation())
		}
		return parseBlockBody(st)
	})
	if err != nil {
		return nil, err
	}
	block.Body = body
	return block, nil
}

func handleBlockBody(st *parser.State) (ast.Kind, error) {
	body, err := st.WithScope(func() (*ast.Expression, error) { return parseBlockBody(st) })
	if err != nil {
		return nil, err
	}
	return &ast.Block{Body: body}, nil
}

// parseBlockBody accepts either a line break and a sequence, or a single
// expression on the same line.
func parseBlockBody(st *parser.State) (*ast.Expression, error) {
	if st.TryEatingLineBreak() {
		return st.ParseSequence()
	}
	e, err := st.ParsePrimary()
	if err != nil {
		return nil, err
	}
	if isEmpty(e) {
		return nil, errors.Missing([]errors.Expected{errors.BlockBody}, errors.NoContext, st.ExpressionLocation())
	}
	return e, nil
}

func handleTry(st *parser.State) (ast.Kind, error) {
	body, err := parseTryBody(st)
	if err != nil {
		return nil, err
	}
	handle, err := parseHandler(st)
	if err != nil {
		return nil, err
	}
	return &ast.Try{Body: body, Handle: handle}, nil
}

func parseTryBody(st *parser.State) (*ast.Expression, error) {
	if st.TryEatingLineBreak() {
		body, err := st.ParseSequence(kwHandle)
		if err != nil {
			return nil, err
		}
		if end, ok := st.LastEndKeyword(); !ok || !end.Equal(kwHandle) {
			return nil, errors.Missing([]errors.Expected{errors.Keyword(kwHandle)}, errors.NoContext, st.CurrentLocation())
		}
		return body, nil
	}
	body, err := primaryOrMissing(st, errors.AfterKeyword(kwTry), errors.Expression, errors.LineBreak)
	if err != nil {
		return nil, err
	}
	if !st.TryEating(kwHandle) {
		return nil, errors.Missing([]errors.Expected{errors.Keyword(kwHandle)}, errors.AdHoc("after try body"), st.CurrentLocation(),
			&errors.AppendingFix{Text: " handle", At: st.CurrentLocation()})
	}
	return body, nil
}

func parseHandler(st *parser.State) (*ast.Expression, error) {
	if st.TryEatingLineBreak() {
		return st.ParseSequence()
	}
	e, err := primaryOrMissing(st, errors.AfterKeyword(kwHandle), errors.Expression, errors.LineBreak)
	if err != nil {
		return nil, err
	}
	st.EatCommentsAndWhitespace()
	return e, nil
}

// handleIf parses both "if c then a else b" and the block form, where
// "else" ends the first sequence.
func handleIf(st *parser.State) (ast.Kind, error) {
	condition, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwIf))
	if err != nil {
		return nil, err
	}

	if st.TryEatingLineBreak() {
		then, err := st.ParseSequence(kwElse)
		if err != nil {
			return nil, err
		}
		if end, ok := st.LastEndKeyword(); !ok || !end.Equal(kwElse) {
			return &ast.If{Condition: condition, Then: then}, nil
		}
		var els *ast.Expression
		if st.TryEatingLineBreak() {
			els, err = st.ParseSequence()
		} else {
			els, err = primaryOrMissing(st, errors.AfterKeyword(kwElse), errors.Expression, errors.LineBreak)
			st.EatCommentsAndWhitespace()
		}
		if err != nil {
			return nil, err
		}
		return &ast.If{Condition: condition, Then: then, Else: els}, nil
	}

	if st.TryEating(kwThen) {
		then, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwThen))
		if err != nil {
			return nil, err
		}
		if !st.TryEating(kwElse) {
			return &ast.If{Condition: condition, Then: then}, nil
		}
		st.EatSignificantNewlines()
		els, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwElse))
		if err != nil {
			return nil, err
		}
		return &ast.If{Condition: condition, Then: then, Else: els}, nil
	}

	at := st.CurrentLocation()
	return nil, errors.Missing([]errors.Expected{errors.Keyword(kwThen), errors.LineBreak}, errors.NoContext, at,
		&errors.SuggestingFix{Suggestion: "{FIX} to evaluate a single expression", Fix: &errors.AppendingFix{Text: " then", At: at}},
		&errors.SuggestingFix{Suggestion: "{FIX} to evaluate a sequence of expressions", Fix: &errors.AppendingFix{Text: "\n", At: at}},
	)
}

func handleRepeat(st *parser.State) (ast.Kind, error) {
	switch {
	case st.TryEating(kwWhile):
		condition, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwWhile))
		if err != nil {
			return nil, err
		}
		body, err := parseRepeatBlock(st)
		if err != nil {
			return nil, err
		}
		return &ast.RepeatWhile{Condition: condition, Repeating: body}, nil

	case st.TryEating(kwFor):
		variable, err := st.ParseVariableTermOrThrow(errors.AfterKeyword(kwFor), "in")
		if err != nil {
			return nil, err
		}
		if err := st.EatOrThrow("in"); err != nil {
			return nil, err
		}
		container, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwIn))
		if err != nil {
			return nil, err
		}
		st.Lexicon().Add(variable)
		body, err := parseRepeatBlock(st)
		if err != nil {
			return nil, err
		}
		return &ast.RepeatFor{Variable: variable, Container: container, Repeating: body}, nil
	}

	times, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwRepeat))
	if err != nil {
		return nil, err
	}
	if err := st.EatOrThrow("times"); err != nil {
		return nil, err
	}
	body, err := parseRepeatBlock(st)
	if err != nil {
		return nil, err
	}
	return &ast.RepeatTimes{Times: times, Repeating: body}, nil
}

func parseRepeatBlock(st *parser.State) (*ast.Expression, error) {
	if err := st.EatLineBreakOrThrow(errors.ToBeginBlock("repeat")); err != nil {
		return nil, err
	}
	return st.ParseSequence()
}

// handleTell parses "tell target to expr" or a tell block. Exactly one of
// "to" and a line break must follow the target.
func handleTell(st *parser.State) (ast.Kind, error) {
	target, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwTell))
	if err != nil {
		return nil, err
	}

	foundTo := st.TryEating(kwTo)
	foundNewline := st.TryEatingLineBreak()
	if foundTo == foundNewline {
		at := st.CurrentLocation()
		return nil, errors.Missing([]errors.Expected{errors.Expression, errors.LineBreak}, errors.AdHoc("after target expression"), at,
			&errors.SuggestingFix{Suggestion: "{FIX} to evaluate a single targeted expression", Fix: &errors.AppendingFix{Text: " to", At: at}},
			&errors.SuggestingFix{Suggestion: "{FIX} to evaluate a targeted sequence of expressions", Fix: &errors.AppendingFix{Text: "\n", At: at}},
		)
	}

	var body *ast.Expression
	err = st.WithTerminologyOf(target, func() error {
		var err error
		if foundNewline {
			body, err = st.ParseSequence()
		} else {
			body, err = st.ParsePrimaryOrThrow(errors.AfterKeyword(kwTo))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ast.Tell{Target: target, To: body}, nil
}

func handleLet(st *parser.State) (ast.Kind, error) {
	t, err := st.ParseVariableTermOrThrow(errors.AfterKeyword(kwLet), "be")
	if err != nil {
		return nil, err
	}
	var value *ast.Expression
	if st.TryEating(kwBe) {
		if value, err = st.ParsePrimaryOrThrow(errors.AfterKeyword(kwBe)); err != nil {
			return nil, err
		}
	}
	st.Lexicon().Add(t)
	return &ast.Let{Term: t, InitialValue: value}, nil
}

// parseDefineLine parses "role name [as uri-or-term]" and defines the term
// in the current scope.
func parseDefineLine(st *parser.State) (*term.Term, bool, error) {
	role, ok := st.EatTermRoleName()
	if !ok {
		return nil, false, errors.Missing([]errors.Expected{errors.TermRole}, errors.NoContext, st.CurrentLocation())
	}
	styling := parser.StylingFor(role)
	name, err := st.ParseTermNameEagerlyOrThrow([]string{"as"}, styling, errors.NoContext)
	if err != nil {
		return nil, false, err
	}

	uri := st.Lexicon().MakeIDURI(name)
	explicit := st.TryEating(kwAs)
	if explicit {
		u, ok, err := st.EatTermURI(styling)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			t, err := st.EatTermOrThrow(errors.AfterKeyword(kwAs))
			if err != nil {
				return nil, false, err
			}
			u = t.URI()
		}
		uri = u
	}

	t := term.New(role, uri, name)
	st.Lexicon().Add(t)
	return t, explicit, nil
}

func handleDefine(st *parser.State) (ast.Kind, error) {
	t, explicit, err := parseDefineLine(st)
	if err != nil {
		return nil, err
	}
	return &ast.Define{Term: t, ExplicitURI: explicit}, nil
}

func handleDefining(st *parser.State) (ast.Kind, error) {
	t, explicit, err := parseDefineLine(st)
	if err != nil {
		return nil, err
	}
	var body *ast.Expression
	err = st.WithTerminology(t, func() error {
		var err error
		body, err = st.ParseSequence()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ast.Defining{Term: t, ExplicitURI: explicit, Body: body}, nil
}

// handleSubtype parses "subtype A from B", where each side is a term or a
// bracketed type URI.
func handleSubtype(st *parser.State) (ast.Kind, error) {
	sub, err := eatTypeReference(st)
	if err != nil {
		return nil, err
	}
	if err := st.EatOrThrow("from"); err != nil {
		return nil, err
	}
	super, err := eatTypeReference(st)
	if err != nil {
		return nil, err
	}
	sub.Supertype = super
	return &ast.Subtype{Subtype: sub, Supertype: super}, nil
}

func eatTypeReference(st *parser.State) (*term.Term, error) {
	st.EatCommentsAndWhitespace()
	uri, ok, err := st.EatTermURI(source.StylingType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return st.EatTermOrThrow(errors.NoContext)
	}
	id := term.ID{Role: term.RoleType, URI: uri}
	if t := st.Lexicon().TermByID(id); t != nil {
		return t, nil
	}
	return term.NewWithID(id, term.Name{}, true), nil
}

func handleSet(st *parser.State) (ast.Kind, error) {
	target, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwSet))
	if err != nil {
		return nil, err
	}
	if err := st.EatOrThrow("to"); err != nil {
		return nil, err
	}
	value, err := st.ParsePrimaryOrThrow(errors.AfterKeyword(kwTo))
	if err != nil {
		return nil, err
	}
	return &ast.Set{Target: target, To: value}, nil
}
