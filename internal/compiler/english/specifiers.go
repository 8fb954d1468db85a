package english

import (
	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

var (
	kwOf    = term.NewName("of")
	kwThru  = term.Names("thru", "through")
	keyForm = map[string]ast.SpecifierKind{
		"index": ast.SpecifierIndex,
		"named": ast.SpecifierName,
		"id":    ast.SpecifierID,
		"whose": ast.SpecifierTest,
		"where": ast.SpecifierTest,
	}
	relative = map[string]ast.SpecifierKind{
		"before": ast.SpecifierPrevious,
		"after":  ast.SpecifierNext,
	}
)

// handleType turns a type name into a specifier when a key form or data
// follows it ("window 1", "item named x", "character 2 thru 4").
func handleType(st *parser.State, t *term.Term) (ast.Kind, error) {
	spec, err := specifierAfterTypeName(st, t)
	if err != nil {
		return nil, err
	}
	if spec != nil {
		return spec, nil
	}
	return &ast.Type{Term: t}, nil
}

func specifierAfterTypeName(st *parser.State, t *term.Term) (*ast.Specifier, error) {
	st.EatCommentsAndWhitespace()
	word, ok := term.NextWord(st.RestOfLine())
	if !ok {
		return nil, nil
	}

	if kind, ok := keyForm[word]; ok {
		st.TryEatingPrefix(word)
		data, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(term.NewName(word)))
		if err != nil {
			return nil, err
		}
		spec := &ast.Specifier{Term: t, Kind: kind, Data: []*ast.Expression{data}}
		if kind == ast.SpecifierTest {
			spec.Test = ast.AsTestPredicate(data)
		}
		return spec, nil
	}
	if kind, ok := relative[word]; ok {
		st.TryEatingPrefix(word)
		parent, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(term.NewName(word)))
		if err != nil {
			return nil, err
		}
		return &ast.Specifier{Term: t, Kind: kind, Parent: parent}, nil
	}

	if st.AtEndOfLine() {
		return nil, nil
	}
	// Anything that fails to parse here is not data but whatever follows
	// the type, as in "x as string then ...".
	var first *ast.Expression
	st.Attempt(func() bool {
		e, err := st.ParsePrimaryNoSuffix()
		if err != nil || isEmpty(e) {
			return false
		}
		first = e
		return true
	})
	if first == nil {
		return nil, nil
	}

	if through, ok := st.TryEatingOneOf(kwThru, source.SpacingLeftRight); ok {
		last, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(through))
		if err != nil {
			return nil, err
		}
		return &ast.Specifier{Term: t, Kind: ast.SpecifierRange, Data: []*ast.Expression{first, last}}, nil
	}
	return &ast.Specifier{Term: t, Kind: ast.SpecifierSimple, Data: []*ast.Expression{first}}, nil
}

// quantifier handles "every item", "first window" and the like. "every"
// also accepts a whose clause.
func quantifier(kind ast.SpecifierKind) parser.KeywordHandler {
	return func(st *parser.State) (ast.Kind, error) {
		t, err := st.ParseTypeTermOrThrow(errors.NoContext)
		if err != nil {
			return nil, err
		}
		spec := &ast.Specifier{Term: t, Kind: kind}
		if kind != ast.SpecifierAll {
			return spec, nil
		}
		test, ok := st.TryEatingOneOf(term.Names("whose", "where"), source.SpacingLeftRight)
		if !ok {
			return spec, nil
		}
		data, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(test))
		if err != nil {
			return nil, err
		}
		spec.Kind = ast.SpecifierTest
		spec.Data = []*ast.Expression{data}
		spec.Test = ast.AsTestPredicate(data)
		return spec, nil
	}
}

func insertion(kind ast.InsertionKind) parser.KeywordHandler {
	return func(st *parser.State) (ast.Kind, error) {
		parent, err := st.ParsePrimaryNoSuffix()
		if err != nil {
			return nil, err
		}
		if isEmpty(parent) {
			parent = nil
		}
		return &ast.InsertionSpecifier{Kind: kind, Parent: parent}, nil
	}
}

// handleCommand parses the arguments of a command invocation: named
// parameters from the command's dictionary, then an optional direct
// parameter when no named one came first, then the remaining named ones.
func handleCommand(st *parser.State, t *term.Term) (ast.Kind, error) {
	cmd := &ast.Command{Term: t}
	named, err := parseNamedArgument(st, cmd)
	if err != nil {
		return nil, err
	}
	if !named {
		st.EatCommentsAndWhitespace()
		if !st.AtEndOfLine() {
			value, err := st.ParsePrimary()
			if err != nil {
				return nil, err
			}
			if !isEmpty(value) {
				cmd.Arguments = append(cmd.Arguments, ast.Argument{Parameter: directParameter(t), Value: value})
			}
		}
	}
	for {
		named, err := parseNamedArgument(st, cmd)
		if err != nil {
			return nil, err
		}
		if !named {
			return cmd, nil
		}
	}
}

func parseNamedArgument(st *parser.State, cmd *ast.Command) (bool, error) {
	role := term.RoleParameter
	p, err := st.EatTermFrom(cmd.Term.Lookup, &role)
	if err != nil || p == nil {
		return false, err
	}
	if p.Role() != term.RoleParameter {
		return false, errors.New(errors.KindWrongTermRoleForContext, st.ExpressionLocation())
	}
	value, err := st.ParsePrimaryOrThrow(errors.AdHoc("after parameter name"))
	if err != nil {
		return false, err
	}
	cmd.Arguments = append(cmd.Arguments, ast.Argument{Parameter: p, Value: value})
	return true, nil
}

func directParameter(cmd *term.Term) *term.Term {
	id := term.ID{Role: term.RoleParameter, URI: parser.DirectParameterURI}
	if cmd.HasDictionary() {
		if p := cmd.Dictionary().TermByID(id); p != nil {
			return p
		}
	}
	return term.NewWithID(id, term.Name{}, false)
}

// postprocess chains "child of parent" above a specifier, and a suffix
// specifier "parent -> child" below any primary.
func postprocess(st *parser.State, primary *ast.Expression) (ast.Kind, error) {
	if child := ast.AsSpecifier(primary); child != nil && st.TryEating(kwOf) {
		parent, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(kwOf))
		if err != nil {
			return nil, err
		}
		child.SetRootAncestor(parent)
		return child, nil
	}

	if !st.SuffixSpecifierAllowed() {
		return nil, nil
	}
	marker, ok := st.EatSuffixSpecifierMarker()
	if !ok {
		return nil, nil
	}
	next, err := st.ParsePrimaryOrThrowNoSuffix(errors.AfterKeyword(marker))
	if err != nil {
		return nil, err
	}
	child := ast.AsSpecifier(next)
	if child == nil {
		return nil, errors.Missing([]errors.Expected{errors.Specifier}, errors.AfterKeyword(marker), next.Location)
	}
	child.Parent = primary
	return child, nil
}
