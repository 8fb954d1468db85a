package parser

import (
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// ParsePrimary parses one expression with its postfix, suffix and binary
// operators. It returns nil when a keyword handler produced nothing or an
// awaited end marker is next.
func (st *State) ParsePrimary() (*ast.Expression, error) {
	return st.parsePrimary(ast.Identity, true)
}

// ParsePrimaryNoSuffix is ParsePrimary leaving a suffix specifier marker
// for the caller.
func (st *State) ParsePrimaryNoSuffix() (*ast.Expression, error) {
	return st.parsePrimary(ast.Identity, false)
}

// ParsePrimaryOrThrow fails with a missing-expression error in ctx instead
// of returning nil or an empty expression.
func (st *State) ParsePrimaryOrThrow(ctx errors.Context) (*ast.Expression, error) {
	return st.parsePrimaryOrThrow(ctx, true)
}

func (st *State) ParsePrimaryOrThrowNoSuffix(ctx errors.Context) (*ast.Expression, error) {
	return st.parsePrimaryOrThrow(ctx, false)
}

func (st *State) parsePrimaryOrThrow(ctx errors.Context, allowSuffix bool) (*ast.Expression, error) {
	e, err := st.parsePrimary(ast.Identity, allowSuffix)
	if err != nil {
		return nil, err
	}
	if isEmptyExpression(e) {
		return nil, errors.Missing([]errors.Expected{errors.Expression}, ctx, st.CurrentLocation())
	}
	return e, nil
}

func (st *State) parsePrimary(last ast.BinaryOperator, allowSuffix bool) (*ast.Expression, error) {
	st.exprStarts = append(st.exprStarts, st.Offset())
	st.allowSuffix = append(st.allowSuffix, allowSuffix)
	defer func() {
		st.EatCommentsAndWhitespace()
		st.allowSuffix = st.allowSuffix[:len(st.allowSuffix)-1]
		st.exprStarts = st.exprStarts[:len(st.exprStarts)-1]
	}()

	primary, err := st.primaryOrPrefixOperators()
	if err != nil || primary == nil {
		return nil, err
	}
	if !allowSuffix && st.isSuffixSpecifierMarkerNext() {
		return primary, nil
	}

	for {
		kind, err := st.cfg.Postprocess(st, primary)
		if err != nil {
			return nil, err
		}
		if kind != nil {
			primary = ast.New(kind, st.ExpressionLocation())
			continue
		}
		post := st.parsePostfixOperators(primary)
		if post == nil {
			break
		}
		primary = post
	}

	for {
		next, err := st.processBinaryOperator(primary, last)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return primary, nil
		}
		primary = next
	}
}

func (st *State) primaryOrPrefixOperators() (*ast.Expression, error) {
	c := st.save()
	primary, err := st.unprocessedPrimary()
	if err == nil {
		return primary, nil
	}
	st.restore(c)
	prefixed, perr := st.parsePrefixOperators()
	if perr != nil {
		return nil, perr
	}
	if prefixed == nil {
		return nil, err
	}
	return prefixed, nil
}

func isEmptyExpression(e *ast.Expression) bool {
	if e == nil {
		return true
	}
	_, empty := e.Kind.(*ast.Empty)
	return empty
}

func (st *State) processBinaryOperator(lhs *ast.Expression, last ast.BinaryOperator) (*ast.Expression, error) {
	st.EatCommentsAndWhitespace()
	matched, spelling, ok := st.findIn(st.infixTable, st.infixByKey)
	if !ok {
		return nil, nil
	}
	op := st.cfg.Operators.Infix[spelling]
	if !last.YieldsTo(op) {
		return nil, nil
	}

	st.eatOperator(matched)
	st.eatTrivia(true, true)
	rhs, err := st.parsePrimary(op, true)
	if err != nil {
		return nil, err
	}
	if isEmptyExpression(rhs) {
		return nil, errors.Missing([]errors.Expected{errors.Expression}, errors.AfterInfixOperator, st.CurrentLocation())
	}
	return ast.New(&ast.Infix{Operator: op, LHS: lhs, RHS: rhs}, st.ExpressionLocation()), nil
}

func (st *State) parsePrefixOperators() (*ast.Expression, error) {
	st.EatCommentsAndWhitespace()
	var ops []ast.UnaryOperation
	for {
		matched, spelling, ok := st.findIn(st.prefixTable, st.prefixByKey)
		if !ok {
			break
		}
		ops = append(ops, st.cfg.Operators.Prefix[spelling])
		st.eatOperator(matched)
		st.EatCommentsAndWhitespace()
	}

	var e *ast.Expression
	for i := len(ops) - 1; i >= 0; i-- {
		st.EatCommentsAndWhitespace()
		operand := e
		if operand == nil {
			var err error
			if operand, err = st.ParsePrimary(); err != nil {
				return nil, err
			}
			if isEmptyExpression(operand) {
				return nil, errors.Missing([]errors.Expected{errors.Expression}, errors.AfterPrefixOperator, st.ExpressionLocation())
			}
		}
		e = ast.New(&ast.Prefix{Operation: ops[i], Operand: operand}, st.ExpressionLocation())
	}
	return e, nil
}

// parsePostfixOperators applies every postfix operator following operand,
// innermost first.
func (st *State) parsePostfixOperators(operand *ast.Expression) *ast.Expression {
	st.EatCommentsAndWhitespace()
	var e *ast.Expression
	for {
		matched, spelling, ok := st.findIn(st.postfixTable, st.postfixByKey)
		if !ok {
			return e
		}
		st.eatOperator(matched)
		st.EatCommentsAndWhitespace()
		if e == nil {
			e = operand
		}
		e = ast.New(&ast.Postfix{Operation: st.cfg.Operators.Postfix[spelling], Operand: e}, st.ExpressionLocation())
	}
}

func (st *State) unprocessedPrimary() (*ast.Expression, error) {
	st.EatCommentsAndWhitespace()

	if st.AtEndOfLine() {
		return ast.New(&ast.Empty{}, st.ExpressionLocation()), nil
	}
	if e, err := st.parseMultilineString(); e != nil || err != nil {
		return e, err
	}
	if e := st.parseWeave(); e != nil {
		return e, nil
	}
	if e, err := st.parseString(); e != nil || err != nil {
		return e, err
	}
	if e, ok, err := st.parseGrouped(); ok || err != nil {
		return e, err
	}
	if e, ok, err := st.parseListAndRecord(); ok || err != nil {
		return e, err
	}
	if e, ok, err := st.parseList(); ok || err != nil {
		return e, err
	}
	if e, ok, err := st.parseRecord(); ok || err != nil {
		return e, err
	}

	if spelling, ok := st.eatKeyword(); ok {
		kind, err := st.cfg.Keywords[spelling](st)
		if err != nil || kind == nil {
			return nil, err
		}
		return ast.New(kind, st.ExpressionLocation()), nil
	}

	t, err := st.EatTerm()
	if err != nil {
		return nil, err
	}
	if t != nil {
		kind, err := st.termKind(t)
		if err != nil || kind == nil {
			return nil, err
		}
		return ast.New(kind, st.ExpressionLocation()), nil
	}

	if n := len(st.awaiting); n > 0 {
		for _, marker := range st.awaiting[n-1] {
			if st.IsNextName(marker) {
				return nil, nil
			}
		}
	}
	if e := st.parseInteger(); e != nil {
		return e, nil
	}
	if e := st.parseReal(); e != nil {
		return e, nil
	}

	loc := st.restOfLineLocation()
	st.logger.Debug("undefined term", slog.String("text", loc.Text(st.Source())))
	return nil, errors.New(errors.KindUndefinedTerm, loc, st.suggestTerms(loc)...)
}

func (st *State) termKind(t *term.Term) (ast.Kind, error) {
	switch t.Role() {
	case term.RoleConstant:
		return &ast.Enumerator{Term: t}, nil
	case term.RoleType:
		return st.cfg.TypeHandler(st, t)
	case term.RoleProperty:
		return &ast.Specifier{Term: t, Kind: ast.SpecifierProperty}, nil
	case term.RoleCommand:
		return st.cfg.CommandHandler(st, t)
	case term.RoleVariable:
		return &ast.Variable{Term: t}, nil
	case term.RoleResource:
		return &ast.Resource{Term: t}, nil
	}
	return nil, errors.New(errors.KindWrongTermRoleForContext, st.ExpressionLocation())
}

func (st *State) parseInteger() *ast.Expression {
	rest := st.Rest()
	n := lexer.ScanInteger(rest)
	if n == 0 {
		return nil
	}
	v, err := strconv.ParseInt(rest[:n], 10, 64)
	if err != nil {
		return nil
	}
	st.AddingElement(source.StylingNumber, source.SpacingLeftRight, func() { st.cur.Advance(n) })
	return ast.New(&ast.Integer{Value: v}, st.ExpressionLocation())
}

func (st *State) parseReal() *ast.Expression {
	rest := st.Rest()
	n := lexer.ScanReal(rest)
	if n == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(rest[:n], 64)
	if err != nil {
		return nil
	}
	st.AddingElement(source.StylingNumber, source.SpacingLeftRight, func() { st.cur.Advance(n) })
	return ast.New(&ast.Double{Value: v}, st.ExpressionLocation())
}

func (st *State) parseString() (*ast.Expression, error) {
	var pair Pair
	begin := st.Offset()
	found := false
	for _, d := range st.cfg.Delimiters.String {
		if st.TryEatingStyled(d.Begin, source.StylingString, source.SpacingLeft) {
			pair, found = d, true
			break
		}
	}
	if !found {
		return nil, nil
	}
	beginText := st.Source()[begin:st.Offset()]
	bodyStart := st.Offset()
	endText := strings.Join(pair.End.Words, " ")

	body, n, ok := lexer.ScanString(st.Rest(), endText)
	if !ok {
		return nil, errors.New(errors.KindInvalidString, st.CurrentLocation())
	}
	st.AddingElement(source.StylingString, source.SpacingRight, func() { st.cur.Advance(n) })

	value, err := lexer.Unescape(body, endText)
	if err != nil {
		var esc *lexer.EscapeError
		if stderrors.As(err, &esc) && !esc.Trailing {
			return nil, errors.New(errors.KindInvalidString, source.Span(bodyStart+esc.Offset, bodyStart+esc.Offset+2))
		}
		return nil, errors.New(errors.KindInvalidString, st.CurrentLocation())
	}
	raw := strings.TrimLeftFunc(beginText, unicode.IsSpace) + st.Source()[bodyStart:st.Offset()]
	return ast.New(&ast.String{Value: value, Raw: raw}, st.ExpressionLocation()), nil
}

// eatBihash eats "##" or "##(delimiter)". With a known delimiter, only a
// matching bihash is eaten.
func (st *State) eatBihash(delimiter *string) (*ast.Bihash, error) {
	if !st.TryEatingPrefix("##") {
		return nil, nil
	}
	if delimiter != nil {
		if *delimiter != "" && !st.Attempt(func() bool {
			return st.TryEatingPrefixStyled("(", source.StylingKeyword, source.SpacingNone) &&
				st.TryEatingPrefixStyled(*delimiter, source.StylingWeave, source.SpacingLeftRight) &&
				st.TryEatingPrefixStyled(")", source.StylingKeyword, source.SpacingRight)
		}) {
			return nil, nil
		}
		return &ast.Bihash{Delimiter: *delimiter}, nil
	}

	if !st.TryEatingPrefixStyled("(", source.StylingKeyword, source.SpacingNone) {
		return &ast.Bihash{}, nil
	}
	st.cur.SkipWhitespace(false)
	line := st.RestOfLine()
	end := strings.IndexByte(line, ')')
	if end < 0 {
		return nil, errors.Missing([]errors.Expected{errors.WeaveDelimiter}, errors.NoContext, st.CurrentLocation())
	}
	d := strings.TrimRightFunc(line[:end], unicode.IsSpace)
	if d == "" {
		return nil, errors.Missing([]errors.Expected{errors.WeaveDelimiter}, errors.NoContext, st.CurrentLocation())
	}
	st.AddingElement(source.StylingWeave, source.SpacingLeftRight, func() { st.cur.Advance(len(d)) })
	if !st.TryEatingPrefixStyled(")", source.StylingKeyword, source.SpacingRight) {
		return nil, errors.Missing([]errors.Expected{errors.WeaveDelimiterEndMarker}, errors.NoContext, st.CurrentLocation())
	}
	return &ast.Bihash{Delimiter: d}, nil
}

// parseMultilineString reads lines verbatim until a matching bihash.
func (st *State) parseMultilineString() (*ast.Expression, error) {
	bihash, err := st.eatBihash(nil)
	if err != nil || bihash == nil {
		return nil, err
	}
	var body strings.Builder
	for !st.AtEnd() {
		st.AddingElement(source.StylingString, source.SpacingNone, func() {
			st.cur.SkipWhitespace(false)
			st.cur.EatLineBreak()
		})

		closed := st.Attempt(func() bool {
			end, err := st.eatBihash(&bihash.Delimiter)
			return err == nil && end != nil
		})
		if closed {
			break
		}
		line := st.RestOfLine()
		body.WriteString(line + "\n")
		st.AddingElement(source.StylingString, source.SpacingNone, func() { st.cur.Advance(len(line)) })
	}
	return ast.New(&ast.MultilineString{Bihash: *bihash, Body: body.String()}, st.ExpressionLocation()), nil
}

func (st *State) eatHashbang() (ast.Hashbang, bool) {
	st.EatCommentsAndWhitespace()
	start := st.Offset()
	if !st.TryEatingPrefixStyled("#!", source.StylingKeyword, source.SpacingLeft) {
		return ast.Hashbang{}, false
	}
	invocation := st.RestOfLine()
	st.AddingElement(source.StylingKeyword, source.SpacingLeftRight, func() { st.cur.Advance(len(invocation)) })
	return ast.Hashbang{Invocation: invocation, Location: st.LocationFrom(start)}, true
}

// parseWeave reads foreign-language sections introduced by "#!" lines. An
// empty "#!" returns to the script.
func (st *State) parseWeave() *ast.Expression {
	first, ok := st.eatHashbang()
	if !ok {
		return nil
	}
	hashbangs := []ast.Hashbang{first}
	bodies := []string{""}
	var endLocation *source.Location

	for !st.AtEnd() {
		st.AddingElement(source.StylingWeave, source.SpacingNone, func() { st.cur.EatLineBreak() })

		var next ast.Hashbang
		if st.Attempt(func() bool {
			var ok bool
			next, ok = st.eatHashbang()
			return ok
		}) {
			hashbangs = append(hashbangs, next)
			bodies = append(bodies, "")
			if next.IsEmpty() {
				loc := next.Location
				endLocation = &loc
				break
			}
			continue
		}
		line := st.RestOfLine()
		bodies[len(bodies)-1] += line + "\n"
		st.AddingElement(source.StylingWeave, source.SpacingNone, func() { st.cur.Advance(len(line)) })
	}

	weaves := make([]*ast.Expression, len(hashbangs))
	for i, hb := range hashbangs {
		var loc source.Location
		switch {
		case i+1 < len(hashbangs):
			loc = source.Span(hb.Location.Lo, hashbangs[i+1].Location.Lo)
		case endLocation != nil:
			loc = *endLocation
		default:
			loc = source.Span(hb.Location.Lo, st.Offset())
		}
		weaves[i] = ast.New(&ast.Weave{Hashbang: hb, Body: bodies[i]}, loc)
	}
	return ast.New(&ast.Sequence{Expressions: weaves}, st.ExpressionLocation())
}

func (st *State) parseGrouped() (*ast.Expression, bool, error) {
	var pair Pair
	found := false
	for _, d := range st.cfg.Delimiters.Grouping {
		if st.TryEatingStyled(d.Begin, source.StylingKeyword, source.SpacingLeft) {
			pair, found = d, true
			break
		}
	}
	if !found {
		return nil, false, nil
	}
	e, err := st.Awaiting([]term.Name{pair.End}, func() (*ast.Expression, error) {
		st.EatCommentsAndNewlines()
		inner, err := st.ParsePrimary()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, errors.Missing([]errors.Expected{errors.Expression}, errors.AfterKeyword(pair.Begin), st.ExpressionLocation())
		}
		st.EatCommentsAndNewlines()
		if !st.TryEatingStyled(pair.End, source.StylingKeyword, source.SpacingRight) {
			return nil, errors.Missing([]errors.Expected{errors.Keyword(pair.End)}, errors.AdHoc("to end grouped expression"), st.ExpressionLocation())
		}
		return ast.New(&ast.Parentheses{Inner: inner}, st.ExpressionLocation()), nil
	})
	return e, true, err
}

func (st *State) parseListItem(expected ...errors.Expected) (*ast.Expression, error) {
	st.EatCommentsAndNewlines()
	item, err := st.ParsePrimary()
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.Missing(expected, errors.NoContext, st.CurrentLocation())
	}
	st.EatCommentsAndNewlines()
	return item, nil
}

func (st *State) tryEatingEnd(end term.Name) bool {
	return st.TryEatingStyled(end, source.StylingKeyword, source.SpacingRight)
}

func markers(end term.Name, groups ...[]term.Name) []term.Name {
	out := []term.Name{end}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func (st *State) eatRecordBegin(ds []RecordDelimiter) (RecordDelimiter, bool) {
	for _, d := range ds {
		if st.TryEatingStyled(d.Begin, source.StylingKeyword, source.SpacingLeft) {
			return d, true
		}
	}
	return RecordDelimiter{}, false
}

func (st *State) parseListAndRecord() (*ast.Expression, bool, error) {
	d, ok := st.eatRecordBegin(st.cfg.Delimiters.ListAndRecord)
	if !ok {
		return nil, false, nil
	}
	e, err := st.Awaiting(markers(d.End, d.ItemSeparators, d.KeyValueSeparators), func() (*ast.Expression, error) {
		st.EatCommentsAndNewlines()
		if st.tryEatingEnd(d.End) {
			return ast.New(&ast.List{}, st.ExpressionLocation()), nil
		}
		if kv, ok := st.TryEatingOneOf(d.KeyValueSeparators, source.SpacingRight); ok {
			if !st.tryEatingEnd(d.End) {
				return nil, errors.Missing([]errors.Expected{errors.RecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter(kv, d.End)}, errors.NoContext, st.CurrentLocation())
			}
			return ast.New(&ast.Record{}, st.ExpressionLocation()), nil
		}

		first, err := st.parseListItem(errors.ListItem, errors.RecordKey)
		if err != nil {
			return nil, err
		}
		if st.tryEatingEnd(d.End) {
			return ast.New(&ast.List{Items: []*ast.Expression{first}}, st.ExpressionLocation()), nil
		}
		if sep, ok := st.TryEatingOneOf(d.ItemSeparators, source.SpacingRight); ok {
			return st.finishList(first, sep, d.End)
		}
		if kv, ok := st.TryEatingOneOf(d.KeyValueSeparators, source.SpacingRight); ok {
			return st.finishRecord(first, kv, d)
		}
		return nil, errors.Missing([]errors.Expected{
			errors.ListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker(firstOf(d.ItemSeparators), firstOf(d.KeyValueSeparators), d.End),
		}, errors.NoContext, st.CurrentLocation())
	})
	return e, true, err
}

func (st *State) parseList() (*ast.Expression, bool, error) {
	var d ListDelimiter
	found := false
	for _, ld := range st.cfg.Delimiters.List {
		if st.TryEatingStyled(ld.Begin, source.StylingKeyword, source.SpacingLeft) {
			d, found = ld, true
			break
		}
	}
	if !found {
		return nil, false, nil
	}
	e, err := st.Awaiting(markers(d.End, d.ItemSeparators), func() (*ast.Expression, error) {
		st.EatCommentsAndNewlines()
		if st.tryEatingEnd(d.End) {
			return ast.New(&ast.List{}, st.ExpressionLocation()), nil
		}
		first, err := st.parseListItem(errors.ListItem)
		if err != nil {
			return nil, err
		}
		if st.tryEatingEnd(d.End) {
			return ast.New(&ast.List{Items: []*ast.Expression{first}}, st.ExpressionLocation()), nil
		}
		if sep, ok := st.TryEatingOneOf(d.ItemSeparators, source.SpacingRight); ok {
			return st.finishList(first, sep, d.End)
		}
		return nil, errors.Missing([]errors.Expected{errors.ListItemSeparatorOrEndMarker(firstOf(d.ItemSeparators), d.End)}, errors.NoContext, st.CurrentLocation())
	})
	return e, true, err
}

func (st *State) parseRecord() (*ast.Expression, bool, error) {
	d, ok := st.eatRecordBegin(st.cfg.Delimiters.Record)
	if !ok {
		return nil, false, nil
	}
	e, err := st.Awaiting(markers(d.End, d.ItemSeparators, d.KeyValueSeparators), func() (*ast.Expression, error) {
		st.EatCommentsAndNewlines()
		if st.tryEatingEnd(d.End) {
			return ast.New(&ast.Record{}, st.ExpressionLocation()), nil
		}
		if kv, ok := st.TryEatingOneOf(d.KeyValueSeparators, source.SpacingRight); ok {
			if !st.tryEatingEnd(d.End) {
				return nil, errors.Missing([]errors.Expected{errors.RecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter(kv, d.End)}, errors.NoContext, st.CurrentLocation())
			}
			return ast.New(&ast.Record{}, st.ExpressionLocation()), nil
		}
		key, err := st.parseListItem(errors.RecordKey)
		if err != nil {
			return nil, err
		}
		kv, ok := st.TryEatingOneOf(d.KeyValueSeparators, source.SpacingRight)
		if !ok {
			return nil, errors.Missing([]errors.Expected{errors.RecordKeyValueSeparatorAfterKey(firstOf(d.KeyValueSeparators))}, errors.NoContext, st.CurrentLocation())
		}
		return st.finishRecord(key, kv, d)
	})
	return e, true, err
}

// finishList parses the items after the first separator up to the end
// marker.
func (st *State) finishList(first *ast.Expression, sep, end term.Name) (*ast.Expression, error) {
	items := []*ast.Expression{first}
	for {
		item, err := st.parseListItem(errors.ListItem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !st.TryEatingStyled(sep, source.StylingKeyword, source.SpacingRight) {
			break
		}
	}
	if !st.tryEatingEnd(end) {
		return nil, errors.Missing([]errors.Expected{errors.ListItemSeparatorOrEndMarker(sep, end)}, errors.NoContext, st.CurrentLocation())
	}
	return ast.New(&ast.List{Items: items}, st.ExpressionLocation()), nil
}

// finishRecord parses the value of the first key and any further items up
// to the end marker.
func (st *State) finishRecord(firstKey *ast.Expression, kv term.Name, d RecordDelimiter) (*ast.Expression, error) {
	value, err := st.parseListItem(errors.RecordItem)
	if err != nil {
		return nil, err
	}
	items := []ast.RecordItem{{Key: firstKey, Value: value}}
	if sep, ok := st.TryEatingOneOf(d.ItemSeparators, source.SpacingRight); ok {
		for {
			key, err := st.parseListItem(errors.RecordKey)
			if err != nil {
				return nil, err
			}
			if !st.TryEatingStyled(kv, source.StylingKeyword, source.SpacingRight) {
				return nil, errors.Missing([]errors.Expected{errors.RecordKeyValueSeparatorAfterKey(kv)}, errors.NoContext, st.CurrentLocation())
			}
			value, err := st.parseListItem(errors.RecordItem)
			if err != nil {
				return nil, err
			}
			items = append(items, ast.RecordItem{Key: key, Value: value})
			if !st.TryEatingStyled(sep, source.StylingKeyword, source.SpacingRight) {
				break
			}
		}
	}
	if !st.tryEatingEnd(d.End) {
		return nil, errors.Missing([]errors.Expected{errors.RecordItemSeparatorOrEndMarker(firstOf(d.ItemSeparators), d.End)}, errors.NoContext, st.CurrentLocation())
	}
	return ast.New(&ast.Record{Items: items}, st.ExpressionLocation()), nil
}

func firstOf(names []term.Name) term.Name {
	if len(names) == 0 {
		return term.Name{}
	}
	return names[0]
}
