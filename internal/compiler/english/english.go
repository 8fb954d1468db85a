// Package english is the bundled English language module: keyword and
// operator tables, the handlers behind them and English error messages.
package english

import (
	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Resource kinds accepted after "require".
const (
	ResourceSystem  = "system"
	ResourceApp     = "app"
	ResourceAppByID = "app id"
	ResourceLibrary = "library"
)

// New creates a parser for English source.
func New(resolver parser.Resolver, opts ...parser.Option) *parser.Parser {
	return parser.New(Config(resolver), opts...)
}

// Config returns the English language configuration. A nil resolver
// makes resource terms without vocabulary.
func Config(resolver parser.Resolver) parser.Config {
	return parser.Config{
		DefaultEndKeyword: term.NewName("end"),
		Keywords:          keywords(),
		ResourceTypes: []parser.ResourceType{
			{Name: term.NewName("system"), Kind: ResourceSystem},
			{Name: term.NewName("app"), HasName: true, Kind: ResourceApp},
			{Name: term.NewName("app id"), HasName: true, Kind: ResourceAppByID},
			{Name: term.NewName("library"), HasName: true, Kind: ResourceLibrary},
		},
		Operators: parser.Operators{
			Prefix: map[string]ast.UnaryOperation{
				"not": ast.OpNot,
				"-":   ast.OpNegate,
			},
			Infix: infixOperators(),
		},
		Delimiters: parser.Delimiters{
			SuffixSpecifier: term.Names("->", "→"),
			String: []parser.Pair{
				{Begin: term.NewName(`"`), End: term.NewName(`"`)},
				{Begin: term.NewName("“"), End: term.NewName("”")},
			},
			Grouping: []parser.Pair{
				{Begin: term.NewName("("), End: term.NewName(")")},
			},
			ListAndRecord: []parser.RecordDelimiter{{
				Begin:              term.NewName("{"),
				End:                term.NewName("}"),
				ItemSeparators:     term.Names(","),
				KeyValueSeparators: term.Names(":"),
			}},
			LineComment: term.Names("--"),
			BlockComment: []parser.Pair{
				{Begin: term.NewName("--("), End: term.NewName(")--")},
			},
		},
		TypeHandler:    handleType,
		CommandHandler: handleCommand,
		Postprocess:    postprocess,
		Core:           mustCore(),
		Resolver:       resolver,
		Formatter:      MessageFormatter{},
	}
}

func keywords() map[string]parser.KeywordHandler {
	return map[string]parser.KeywordHandler{
		"require":               parser.HandleRequire,
		"use":                   parser.HandleUse,
		"return":                parser.HandleReturn,
		"raise":                 parser.HandleRaise,
		"that":                  parser.HandleThat,
		"it":                    parser.HandleIt,
		"null":                  parser.HandleNull,
		"missing":               parser.HandleMissing,
		"unspecified":           parser.HandleUnspecified,
		"ref":                   parser.HandleRef,
		"get":                   parser.HandleGet,
		"debug_inspect_term":    parser.HandleDebugInspectTerm,
		"debug_inspect_lexicon": parser.HandleDebugInspectLexicon,

		"set":       handleSet,
		"on":        handleFunction,
		"to":        handleFunction,
		"take":      handleBlockArguments,
		"do":        handleBlockBody,
		"try":       handleTry,
		"if":        handleIf,
		"repeat":    handleRepeat,
		"repeating": handleRepeat,
		"tell":      handleTell,
		"let":       handleLet,
		"define":    handleDefine,
		"defining":  handleDefining,
		"subtype":   handleSubtype,

		"every":  quantifier(ast.SpecifierAll),
		"all":    quantifier(ast.SpecifierAll),
		"first":  quantifier(ast.SpecifierFirst),
		"front":  quantifier(ast.SpecifierFirst),
		"middle": quantifier(ast.SpecifierMiddle),
		"last":   quantifier(ast.SpecifierLast),
		"back":   quantifier(ast.SpecifierLast),
		"some":   quantifier(ast.SpecifierRandom),

		"first position of": insertion(ast.InsertBeginning),
		"first position":    insertion(ast.InsertBeginning),
		"last position of":  insertion(ast.InsertEnd),
		"last position":     insertion(ast.InsertEnd),
		"position before":   insertion(ast.InsertBefore),
		"position after":    insertion(ast.InsertAfter),
	}
}

func infixOperators() map[string]ast.BinaryOperator {
	spellings := map[ast.BinaryOperation][]string{
		ast.OpOr:  {"or"},
		ast.OpXor: {"xor"},
		ast.OpAnd: {"and"},
		ast.OpIsA: {"is a", "is an"},
		ast.OpIsNotA: {
			"is not a", "is not an", "isn't a", "isn’t a", "isn't an", "isn’t an",
		},
		ast.OpEqual: {
			"equals", "equal to", "equals to", "is equal to", "is", "=", "==",
		},
		ast.OpNotEqual: {
			"not equal to", "is not equal to", "isn't equal to", "isn’t equal to",
			"unequal to", "is unequal to", "is not", "isn't", "isn’t", "not =", "!=", "≠",
		},
		ast.OpLess: {"less than", "is less than", "<"},
		ast.OpLessEqual: {
			"less than equal to", "less than or equals", "less than or equal to",
			"is less than equal to", "is less than or equals", "is less than or equal to",
			"<=", "≤",
		},
		ast.OpGreater: {"greater than", "is greater than", ">"},
		ast.OpGreaterEqual: {
			"greater than equal to", "greater than or equals", "greater than or equal to",
			"is greater than equal to", "is greater than or equals", "is greater than or equal to",
			">=", "≥",
		},
		ast.OpStartsWith: {"starts with", "begins with"},
		ast.OpEndsWith:   {"ends with"},
		ast.OpContains:   {"contains", "has"},
		ast.OpNotContains: {
			"does not contain", "doesn't contain", "doesn’t contain",
			"does not have", "doesn't have", "doesn’t have",
		},
		ast.OpContainedBy: {"is in", "is contained by"},
		ast.OpNotContainedBy: {
			"is not in", "isn't in", "isn’t in",
			"is not contained by", "isn't contained by", "isn’t contained by",
		},
		ast.OpConcatenate: {"&"},
		ast.OpAdd:         {"+"},
		ast.OpSubtract:    {"-", "−"},
		ast.OpMultiply:    {"*", "×"},
		ast.OpDivide:      {"div", "÷"},
		ast.OpCoerce:      {"as"},
	}
	ops := make(map[string]ast.BinaryOperator)
	for op, names := range spellings {
		for _, s := range names {
			ops[s] = ast.Binary(op)
		}
	}
	return ops
}
