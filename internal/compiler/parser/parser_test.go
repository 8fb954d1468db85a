package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

func handleLet(st *State) (ast.Kind, error) {
	t, err := st.ParseVariableTermOrThrow(errors.AfterKeyword(term.NewName("let")), "be")
	if err != nil {
		return nil, err
	}
	var init *ast.Expression
	if st.TryEating(term.NewName("be")) {
		if init, err = st.ParsePrimaryOrThrow(errors.AfterKeyword(term.NewName("be"))); err != nil {
			return nil, err
		}
	}
	st.Lexicon().Add(t)
	return &ast.Let{Term: t, InitialValue: init}, nil
}

func handleApp(st *State) (ast.Kind, error) {
	e, name, err := st.ParseString()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.NewAdHoc("expected application name", st.CurrentLocation())
	}
	t := term.New(term.RoleResource, term.ResURI("app:"+name), term.NewName(name))
	return &ast.Resource{Term: t}, nil
}

func handleBlock(st *State) (ast.Kind, error) {
	if err := st.EatLineBreakOrThrow(errors.ToBeginBlock("block")); err != nil {
		return nil, err
	}
	body, err := st.ParseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Body: body}, nil
}

func testConfig() Config {
	braces := RecordDelimiter{
		Begin:              term.NewName("{"),
		End:                term.NewName("}"),
		ItemSeparators:     term.Names(","),
		KeyValueSeparators: term.Names(":"),
	}
	return Config{
		Keywords: map[string]KeywordHandler{
			"use":                   HandleUse,
			"app":                   handleApp,
			"let":                   handleLet,
			"return":                HandleReturn,
			"null":                  HandleNull,
			"block":                 handleBlock,
			"require":               HandleRequire,
			"debug_inspect_lexicon": HandleDebugInspectLexicon,
		},
		ResourceTypes: []ResourceType{
			{Name: term.NewName("app"), HasName: true, Kind: "app"},
			{Name: term.NewName("app id"), HasName: true, Kind: "app id"},
			{Name: term.NewName("system"), Kind: "system"},
		},
		Operators: Operators{
			Prefix:  map[string]ast.UnaryOperation{"not": ast.OpNot, "-": ast.OpNegate},
			Postfix: map[string]ast.UnaryOperation{"negated": ast.OpNegate},
			Infix: map[string]ast.BinaryOperator{
				"=": {Operation: ast.OpEqual, Precedence: 5, Associativity: ast.Left},
				"+": ast.Binary(ast.OpAdd),
				"-": ast.Binary(ast.OpSubtract),
				"*": ast.Binary(ast.OpMultiply),
				"&": {Operation: ast.OpConcatenate, Precedence: ast.PrecedenceConcatenation, Associativity: ast.Right},
			},
		},
		Delimiters: Delimiters{
			String:        []Pair{{Begin: term.NewName(`"`), End: term.NewName(`"`)}},
			Grouping:      []Pair{{Begin: term.NewName("("), End: term.NewName(")")}},
			ListAndRecord: []RecordDelimiter{braces},
			LineComment:   term.Names("--"),
			BlockComment:  []Pair{{Begin: term.NameOf("--", "("), End: term.NameOf(")", "--")}},
		},
	}
}

func newTestParser(t *testing.T, vars ...string) *Parser {
	t.Helper()
	p := New(testConfig(), WithPool(term.NewPool()))
	for _, v := range vars {
		name := term.NewName(v)
		p.Lexicon().Add(term.New(term.RoleVariable, term.IDURI(name.Normalized()), name))
	}
	return p
}

func mustParse(t *testing.T, p *Parser, src string) *Program {
	t.Helper()
	prog, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return prog
}

func parseError(t *testing.T, src string, vars ...string) *errors.ParseError {
	t.Helper()
	_, err := newTestParser(t, vars...).Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q): expected an error", src)
	}
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("Parse(%q): expected a *ParseError, got %T: %v", src, err, err)
	}
	return pe
}

func TestParseSexp(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(seq (add 1 (multiply 2 3)))"},
		{"1 * 2 + 3", "(seq (add (multiply 1 2) 3))"},
		{"1 - 2 - 3", "(seq (subtract (subtract 1 2) 3))"},
		{"x & x & x", "(seq (concatenate x (concatenate x x)))"},
		{"(1 + 2) * 3", "(seq (multiply (group (add 1 2)) 3))"},
		{"not x", "(seq (not x))"},
		{"- x", "(seq (negate x))"},
		{"-5", "(seq -5)"},
		{"x negated", "(seq (postfix-negate x))"},
		{"1.5", "(seq 1.5)"},
		{"2.5e3", "(seq 2500)"},
		{"null", "(seq null)"},
		{"{}", "(seq (list))"},
		{"{:}", "(seq (record))"},
		{"{1}", "(seq (list 1))"},
		{"{1, 2, 3}", "(seq (list 1 2 3))"},
		{`{"a": 1, "b": 2}`, `(seq (record "a" 1 "b" 2))`},
		{"{\n  1,\n  2\n}", "(seq (list 1 2))"},
		{"1\n\n2", "(seq 1 2)"},
		{"1 -- trailing comment\n2", "(seq 1 2)"},
		{"--( outer --( inner )-- still outer )-- 7", "(seq 7)"},
		{"return", "(seq (return))"},
		{"return 1", "(seq (return 1))"},
		{"|my var| + 1", "(seq (add my var 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, newTestParser(t, "x", "my var"), tt.src)
			if got := ast.Sexp(prog.AST); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestRoundTripScenario(t *testing.T) {
	src := "use app \"Foo\"\nx = 1 + 2\n"
	prog := mustParse(t, newTestParser(t, "x"), src)

	seq, ok := prog.AST.Kind.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected a sequence, got %s", prog.AST.KindName())
	}
	if len(seq.Expressions) != 2 {
		t.Fatalf("expected 2 statements, got %d: %s", len(seq.Expressions), ast.Sexp(prog.AST))
	}
	use, ok := seq.Expressions[0].Kind.(*ast.Use)
	if !ok {
		t.Fatalf("expected a use expression, got %s", seq.Expressions[0].KindName())
	}
	if res, ok := use.Module.Kind.(*ast.Resource); !ok || res.Term.Name.Normalized() != "Foo" {
		t.Errorf("expected resource Foo, got %s", ast.Sexp(use.Module))
	}
	if got, want := ast.Sexp(seq.Expressions[1]), "(equal x (add 1 2))"; got != want {
		t.Errorf("second statement = %s, want %s", got, want)
	}
	if prog.Source != src {
		t.Errorf("expected program source to be kept")
	}
}

func TestAnnotationCoverage(t *testing.T) {
	prog, err := newTestParser(t).ParseExpression("1 + 2")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	terms := prog.Elements.Terminals()
	if len(terms) != 3 {
		t.Fatalf("expected 3 terminals, got %d: %v", len(terms), terms)
	}
	want := []struct {
		text    string
		styling source.Styling
	}{
		{"1", source.StylingNumber},
		{"+", source.StylingOperator},
		{"2", source.StylingNumber},
	}
	for i, w := range want {
		if terms[i].Text != w.text || terms[i].Styling != w.styling {
			t.Errorf("terminal %d = %v, want %q styled %s", i, terms[i], w.text, w.styling)
		}
	}
	for i := 1; i < len(terms); i++ {
		if terms[i-1].Location.Overlaps(terms[i].Location) {
			t.Errorf("terminals %v and %v overlap", terms[i-1], terms[i])
		}
	}
	if n := len(prog.Elements.Indentations()); n != 0 {
		t.Errorf("expected no indentation markers, got %d", n)
	}
}

func TestSequenceIndentation(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "block\n  1\nend\n2")
	if got, want := ast.Sexp(prog.AST), "(seq (block (scoped (seq 1))) 2)"; got != want {
		t.Fatalf("Parse = %s, want %s", got, want)
	}
	levels := map[int]int{}
	for _, e := range prog.Elements.Indentations() {
		levels[e.Level]++
	}
	if levels[1] != 1 {
		t.Errorf("expected one statement at level 1, got %d (%v)", levels[1], levels)
	}
	if levels[0] < 3 {
		t.Errorf("expected block, end and trailing statements at level 0, got %v", levels)
	}
}

func TestLastEndKeyword(t *testing.T) {
	p := newTestParser(t)
	var ended term.Name
	p.cfg.Keywords["section"] = func(st *State) (ast.Kind, error) {
		if err := st.EatLineBreakOrThrow(errors.ToBeginBlock("section")); err != nil {
			return nil, err
		}
		body, err := st.ParseSequence(term.NewName("done"))
		if err != nil {
			return nil, err
		}
		ended, _ = st.LastEndKeyword()
		return &ast.Block{Body: body}, nil
	}
	mustParse(t, p, "section\n1\ndone\n")
	if ended.Normalized() != "done" {
		t.Errorf("expected sequence to end with done, got %q", ended.Normalized())
	}
}

func TestScopeSymmetry(t *testing.T) {
	p := newTestParser(t)
	before := p.Lexicon().Depth()
	mustParse(t, p, "block\n  block\n    let y be 1\n  end\nend\n")
	if after := p.Lexicon().Depth(); after != before {
		t.Errorf("expected lexicon depth %d after parse, got %d", before, after)
	}
}

func TestBlockScopeHidesVariables(t *testing.T) {
	pe := parseError(t, "block\n  let y be 1\nend\ny")
	if pe.Kind != errors.KindUndefinedTerm {
		t.Fatalf("expected undefined term, got %s", pe.Kind)
	}
}

func TestLetDefinesVariable(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "let total be 2\ntotal * 3")
	if got, want := ast.Sexp(prog.AST), "(seq (variable 2) (multiply total 3))"; got != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
		raw  string
	}{
		{`"plain"`, "plain", `"plain"`},
		{`"tab\there"`, "tab\there", `"tab\there"`},
		{`"say \"hi\""`, `say "hi"`, `"say \"hi\""`},
		{`"back\\slash"`, `back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := newTestParser(t).ParseExpression(tt.src)
			if err != nil {
				t.Fatalf("ParseExpression(%q) failed: %v", tt.src, err)
			}
			s, ok := prog.AST.Kind.(*ast.String)
			if !ok {
				t.Fatalf("expected string literal, got %s", prog.AST.KindName())
			}
			if s.Value != tt.want {
				t.Errorf("value = %q, want %q", s.Value, tt.want)
			}
			if s.Raw != tt.raw {
				t.Errorf("raw = %q, want %q", s.Raw, tt.raw)
			}
		})
	}
}

func TestInvalidEscape(t *testing.T) {
	pe := parseError(t, `"bad \q"`)
	if pe.Kind != errors.KindInvalidString {
		t.Fatalf("expected invalid string, got %s", pe.Kind)
	}
	if pe.Location != source.Span(5, 7) {
		t.Errorf("expected location [5, 7), got %s", pe.Location)
	}
}

func TestUnterminatedString(t *testing.T) {
	if pe := parseError(t, `"open`); pe.Kind != errors.KindInvalidString {
		t.Errorf("expected invalid string, got %s", pe.Kind)
	}
}

func TestMultilineString(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "##\nhello\nworld\n##\n1")
	seq := prog.AST.Kind.(*ast.Sequence)
	if len(seq.Expressions) != 2 {
		t.Fatalf("expected 2 statements, got %s", ast.Sexp(prog.AST))
	}
	ms, ok := seq.Expressions[0].Kind.(*ast.MultilineString)
	if !ok {
		t.Fatalf("expected multiline string, got %s", seq.Expressions[0].KindName())
	}
	if ms.Body != "hello\nworld\n" {
		t.Errorf("body = %q, want %q", ms.Body, "hello\nworld\n")
	}
}

func TestMultilineStringDelimiter(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "##(END)\n##\n##(END)")
	ms, ok := prog.AST.Kind.(*ast.Sequence).Expressions[0].Kind.(*ast.MultilineString)
	if !ok {
		t.Fatalf("expected multiline string, got %s", ast.Sexp(prog.AST))
	}
	if ms.Bihash.Delimiter != "END" || ms.Body != "##\n" {
		t.Errorf("expected delimiter END and body %q, got %q and %q", "##\n", ms.Bihash.Delimiter, ms.Body)
	}
}

func TestWeave(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "#!/bin/sh\necho hi\n#!\n1")
	if got, want := ast.Sexp(prog.AST), "(seq (seq (weave) (weave)) 1)"; got != want {
		t.Fatalf("Parse = %s, want %s", got, want)
	}
	weaves := prog.AST.Kind.(*ast.Sequence).Expressions[0].Kind.(*ast.Sequence).Expressions
	w := weaves[0].Kind.(*ast.Weave)
	if w.Hashbang.Invocation != "/bin/sh" || w.Body != "echo hi\n" {
		t.Errorf("unexpected weave %q / %q", w.Hashbang.Invocation, w.Body)
	}
	if !weaves[1].Kind.(*ast.Weave).Hashbang.IsEmpty() {
		t.Errorf("expected the closing hashbang to be empty")
	}
}

func TestRawFormTerm(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "#type [id:widget]")
	typ, ok := prog.AST.Kind.(*ast.Sequence).Expressions[0].Kind.(*ast.Type)
	if !ok {
		t.Fatalf("expected type reference, got %s", ast.Sexp(prog.AST))
	}
	if typ.Term.URI() != term.IDURI("widget") {
		t.Errorf("expected URI id:widget, got %s", typ.Term.URI())
	}
}

func TestRawFormErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind errors.Kind
	}{
		{"#nonsense [id:x]", errors.KindInvalidTermRole},
		{"#type [id:x", errors.KindMissing},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if pe := parseError(t, tt.src); pe.Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, pe.Kind)
			}
		})
	}
}

func TestQualifiedTerm(t *testing.T) {
	p := newTestParser(t)
	math := term.New(term.RoleDictionary, term.IDURI("Math"), term.NewName("Math"))
	math.Exports = false
	pi := term.New(term.RoleConstant, term.IDURI("Math", "pi"), term.NewName("pi"))
	math.Dictionary().Add(pi)
	p.Lexicon().Add(math)

	prog := mustParse(t, p, "Math : pi * 2")
	if got, want := ast.Sexp(prog.AST), "(seq (multiply pi 2))"; got != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}

	p2 := newTestParser(t)
	p2.Lexicon().Add(math)
	if _, err := p2.Parse("pi"); err == nil {
		t.Errorf("expected unqualified pi to be undefined")
	}
}

func TestDictionaryInPrimaryPosition(t *testing.T) {
	p := newTestParser(t)
	p.Lexicon().Add(term.New(term.RoleDictionary, term.IDURI("Things"), term.NewName("Things")))
	_, err := p.Parse("Things")
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) || pe.Kind != errors.KindWrongTermRoleForContext {
		t.Errorf("expected wrong term role error, got %v", err)
	}
}

func TestMismatchedPipe(t *testing.T) {
	if pe := parseError(t, "|never closed"); pe.Kind != errors.KindMismatchedPipe {
		t.Errorf("expected mismatched pipe, got %s", pe.Kind)
	}
}

func TestMissingRightOperand(t *testing.T) {
	pe := parseError(t, "1 +")
	if pe.Kind != errors.KindMissing {
		t.Fatalf("expected missing expression, got %s", pe.Kind)
	}
	if pe.Context.Kind != errors.ContextAfterInfixOperator {
		t.Errorf("expected context after infix operator, got %s", pe.Context)
	}
	if pe.Location != source.Span(2, 3) {
		t.Errorf("expected location clamped to [2, 3), got %s", pe.Location)
	}
	if len(pe.Fixes) != 0 {
		t.Errorf("expected no fixes, got %d", len(pe.Fixes))
	}
}

func TestMissingLineBreak(t *testing.T) {
	src := "1 2"
	pe := parseError(t, src)
	if pe.Kind != errors.KindMissing || pe.Context.Kind != errors.ContextAfterSequencedExpression {
		t.Fatalf("expected missing line break, got %s %s", pe.Kind, pe.Context)
	}
	if len(pe.Fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d", len(pe.Fixes))
	}
	fixed, err := errors.Apply(src, pe.Fixes...)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if fixed != "1 \n2" {
		t.Errorf("fixed source = %q, want %q", fixed, "1 \n2")
	}
}

func TestUndefinedTermSuggestion(t *testing.T) {
	src := "countr + 1"
	pe := parseError(t, src, "counter")
	if pe.Kind != errors.KindUndefinedTerm {
		t.Fatalf("expected undefined term, got %s", pe.Kind)
	}
	if len(pe.Fixes) == 0 {
		t.Fatalf("expected a suggestion")
	}
	if desc := pe.Fixes[0].Describe(src); !strings.Contains(desc, "counter") {
		t.Errorf("expected suggestion for counter, got %q", desc)
	}
	fixed, err := errors.Apply(src, pe.Fixes[0])
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if fixed != "counter + 1" {
		t.Errorf("fixed source = %q, want %q", fixed, "counter + 1")
	}
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"counter", "display name", "window"}
	tests := []struct {
		query, want string
	}{
		{"countr", "counter"},
		{"windw", "window"},
		{"dsplay nme", "display name"},
		{"wnidow", "window"},
		{"zzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := closestMatch(tt.query, candidates); got != tt.want {
				t.Errorf("closestMatch(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestContinueParsing(t *testing.T) {
	p := newTestParser(t)
	mustParse(t, p, "let x be 1\n")
	prog, err := p.ContinueParsing("x + 1\n")
	if err != nil {
		t.Fatalf("ContinueParsing failed: %v", err)
	}
	if got, want := ast.Sexp(prog.AST), "(seq (add x 1))"; got != want {
		t.Errorf("ContinueParsing = %s, want %s", got, want)
	}
	stmt := prog.AST.Kind.(*ast.Sequence).Expressions[0]
	if stmt.Location.Lo != len("let x be 1\n") {
		t.Errorf("expected statement to start at %d, got %s", len("let x be 1\n"), stmt.Location)
	}
	if prog.Source != "let x be 1\nx + 1\n" {
		t.Errorf("unexpected accumulated source %q", prog.Source)
	}
}

func TestEmptySource(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "")
	if seq, ok := prog.AST.Kind.(*ast.Sequence); !ok || len(seq.Expressions) != 0 {
		t.Errorf("expected empty sequence, got %s", ast.Sexp(prog.AST))
	}
}

func TestRequire(t *testing.T) {
	var got ResourceRequest
	cfg := testConfig()
	cfg.Resolver = ResolverFunc(func(req ResourceRequest) (*term.Term, error) {
		got = req
		rt := term.New(term.RoleResource, term.ResURI(req.Type.Kind+":"+req.Name.Normalized()), req.Name)
		rt.Resource = &term.Resource{Kind: req.Type.Kind, Name: req.Name.Normalized(), Path: "/lib/" + req.Name.Normalized()}
		rt.Dictionary().Add(term.New(term.RoleConstant, term.IDURI("Foo", "blue"), term.NewName("blue")))
		return rt, nil
	})
	p := New(cfg, WithPool(term.NewPool()))

	prog, err := p.Parse("require app id com.example.Foo\nblue")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Type.Kind != "app id" {
		t.Errorf("expected the longest resource type to win, got %q", got.Type.Kind)
	}
	if got.Name.Normalized() != "com.example.Foo" {
		t.Errorf("expected resource name com.example.Foo, got %q", got.Name.Normalized())
	}
	if s := ast.Sexp(prog.AST); s != `(seq (require "com.example.Foo") blue)` {
		t.Errorf("Parse = %s", s)
	}
	if !p.state.IgnoresImport("/lib/com.example.Foo") {
		t.Errorf("expected the resource path to be ignored by later imports")
	}
}

func TestRequireNilResource(t *testing.T) {
	cfg := testConfig()
	cfg.Resolver = ResolverFunc(func(ResourceRequest) (*term.Term, error) { return nil, nil })
	_, err := New(cfg, WithPool(term.NewPool())).Parse("require app Foo")

	var pe *errors.ParseError
	if !stderrors.As(err, &pe) || pe.Kind != errors.KindTerminologyImportFailure {
		t.Fatalf("expected an import failure, got %v", err)
	}
	var nf *errors.ResourceNotFound
	if !stderrors.As(err, &nf) || nf.Kind != "app" || nf.Name != "Foo" {
		t.Errorf("expected app Foo not found, got %v", err)
	}
}

func TestRequireErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind errors.Kind
	}{
		{"require spaceship Enterprise", errors.KindInvalidResourceType},
		{`require app "Foo"`, errors.KindQuotedResourceTerm},
		{"require app", errors.KindMissing},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if pe := parseError(t, tt.src); pe.Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, pe.Kind)
			}
		})
	}
}

func TestRequireResolverFailure(t *testing.T) {
	cause := stderrors.New("no such app")
	cfg := testConfig()
	cfg.Resolver = ResolverFunc(func(ResourceRequest) (*term.Term, error) { return nil, cause })
	_, err := New(cfg, WithPool(term.NewPool())).Parse("require app Nowhere")

	var pe *errors.ParseError
	if !stderrors.As(err, &pe) || pe.Kind != errors.KindTerminologyImportFailure {
		t.Fatalf("expected import failure, got %v", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("expected the resolver error to stay reachable")
	}
}

func TestFormattedErrors(t *testing.T) {
	_, err := newTestParser(t).Parse("1 +")
	var formatted *errors.FormattedParseError
	if !stderrors.As(err, &formatted) {
		t.Fatalf("expected a formatted error, got %T", err)
	}
	if formatted.Message == "" {
		t.Errorf("expected a message")
	}
}

func TestDebugInspectLexicon(t *testing.T) {
	prog := mustParse(t, newTestParser(t), "debug_inspect_lexicon")
	k, ok := prog.AST.Kind.(*ast.Sequence).Expressions[0].Kind.(*ast.DebugInspectLexicon)
	if !ok || k.Message == "" {
		t.Errorf("expected a lexicon inspection, got %s", ast.Sexp(prog.AST))
	}
}

func assertNoOverlaps(t *testing.T, src string, elements *source.Set) {
	t.Helper()
	terms := elements.Terminals()
	for i := range terms {
		for j := i + 1; j < len(terms); j++ {
			a, b := terms[i], terms[j]
			if a.Location.Overlaps(b.Location) {
				t.Errorf("%q: %s %s %q overlaps %s %s %q", src,
					a.Location, a.Styling, a.Location.Text(src),
					b.Location, b.Styling, b.Location.Text(src))
			}
		}
	}
}

func TestTerminalsNeverOverlap(t *testing.T) {
	tests := []string{
		"require app --( note )-- id Foo",
		"x + --( c )-- 1 -- trailing",
		"--( a )-- x --( b )-- * --( c )-- x",
		"block\n  x --( inner --( nested )-- )--\nend",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			prog := mustParse(t, newTestParser(t, "x"), src)
			assertNoOverlaps(t, src, prog.Elements)
		})
	}
}

func TestCommentInsideKeyword(t *testing.T) {
	var got ResourceRequest
	cfg := testConfig()
	cfg.Resolver = ResolverFunc(func(req ResourceRequest) (*term.Term, error) {
		got = req
		return bareResource(req)
	})
	src := "require app --( note )-- id Foo"
	if _, err := New(cfg, WithPool(term.NewPool())).Parse(src); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Type.Kind != "app id" {
		t.Errorf("expected resource type app id, got %q", got.Type.Kind)
	}
}
