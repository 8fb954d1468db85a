package parser

import (
	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// ParseSequence parses line-separated expressions until the end of input,
// the default end keyword or one of stoppingAt. LastEndKeyword tells which
// keyword ended it, and reports nothing when the input ran out.
func (st *State) ParseSequence(stoppingAt ...term.Name) (*ast.Expression, error) {
	endKeywords := append(append([]term.Name(nil), stoppingAt...), st.cfg.DefaultEndKeyword)

	st.nesting++
	defer func() { st.nesting-- }()

	var exprs []*ast.Expression
	for {
		indentation := st.addIndentation(st.nesting)
		ended := st.AtEnd()
		if ended {
			st.lastEndKeyword = nil
		} else {
			ended = st.eatEndKeyword(endKeywords)
		}
		if ended {
			// The closing line belongs to the enclosing level.
			st.elements.Remove(indentation)
			st.elements.Insert(source.Indentation(max(st.nesting-1, 0), indentation.Location))
			break
		}

		primary, err := st.ParsePrimary()
		if err != nil {
			return nil, err
		}
		if primary != nil && !isEmptyExpression(primary) {
			exprs = append(exprs, primary)
		}

		if !st.TryEatingLineBreak() && !st.AtEnd() {
			loc := st.restOfLineLocation()
			return nil, errors.Missing(
				[]errors.Expected{errors.LineBreak},
				errors.AfterSequencedExpression,
				loc,
				&errors.PrependingFix{Text: "\n", At: st.CurrentLocation()},
			)
		}
	}

	st.EatCommentsAndWhitespace()
	return ast.New(&ast.Sequence{Expressions: exprs}, st.ExpressionLocation()), nil
}

// ParseBlockBody parses a sequence whose AST is a scoped block.
func (st *State) ParseBlockBody(stoppingAt ...term.Name) (*ast.Expression, error) {
	return st.WithScope(func() (*ast.Expression, error) {
		return st.ParseSequence(stoppingAt...)
	})
}

func (st *State) addIndentation(level int) source.Element {
	start := st.Offset()
	st.EatCommentsAndWhitespace()
	e := source.Indentation(max(level, 0), st.LocationFrom(start))
	st.elements.Insert(e)
	return e
}

func (st *State) eatEndKeyword(endKeywords []term.Name) bool {
	for _, k := range endKeywords {
		if st.TryEating(k) {
			st.lastEndKeyword = &k
			return true
		}
	}
	return false
}
