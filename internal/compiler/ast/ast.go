package ast

import (
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Kind is the base interface for all expression kinds
type Kind interface {
	KindName() string
	kindNode()
}

// Expression is one AST node: a kind plus the source range it was parsed from
type Expression struct {
	Kind     Kind
	Location source.Location
}

// New wraps kind at loc.
func New(kind Kind, loc source.Location) *Expression {
	return &Expression{Kind: kind, Location: loc}
}

func (e *Expression) KindName() string { return e.Kind.KindName() }

// ============ STRUCTURE ============

// Sequence: statements evaluated in order
type Sequence struct {
	Expressions []*Expression
}

func (*Sequence) KindName() string { return "Sequence" }
func (*Sequence) kindNode()        {}

// Parentheses: ( expr )
type Parentheses struct {
	Inner *Expression
}

func (*Parentheses) KindName() string { return "Parenthesized expression" }
func (*Parentheses) kindNode()        {}

// Scoped: a body parsed inside its own anonymous dictionary
type Scoped struct {
	Inner *Expression
}

func (*Scoped) KindName() string { return "Scoped block expression" }
func (*Scoped) kindNode()        {}

// Empty: a blank line in a sequence
type Empty struct{}

func (*Empty) KindName() string { return "Empty expression" }
func (*Empty) kindNode()        {}

// ============ LITERALS ============

// Null: null
type Null struct{}

func (*Null) KindName() string { return "Null literal" }
func (*Null) kindNode()        {}

// Missing: missing
type Missing struct{}

func (*Missing) KindName() string { return "Missing value" }
func (*Missing) kindNode()        {}

// Unspecified: unspecified
type Unspecified struct{}

func (*Unspecified) KindName() string { return "Unspecified value" }
func (*Unspecified) kindNode()        {}

// Integer: 42
type Integer struct {
	Value int64
}

func (*Integer) KindName() string { return "Integer literal" }
func (*Integer) kindNode()        {}

// Double: 3.14
type Double struct {
	Value float64
}

func (*Double) KindName() string { return "Real literal" }
func (*Double) kindNode()        {}

// String: "hello" (Raw keeps the delimiters and escapes as written)
type String struct {
	Value string
	Raw   string
}

func (*String) KindName() string { return "String literal" }
func (*String) kindNode()        {}

// Bihash is the delimiter of a ##(delim) multiline string.
type Bihash struct {
	Delimiter string
}

// MultilineString: ## ... ##
type MultilineString struct {
	Bihash Bihash
	Body   string
}

func (*MultilineString) KindName() string { return "Multiline string" }
func (*MultilineString) kindNode()        {}

// Hashbang is the #!invocation line opening a weave.
type Hashbang struct {
	Invocation string
	Location   source.Location
}

// IsEmpty reports a bare "#!", which returns to script context.
func (h Hashbang) IsEmpty() bool {
	for _, r := range h.Invocation {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// Weave: #!/bin/sh followed by foreign source lines
type Weave struct {
	Hashbang Hashbang
	Body     string
}

func (*Weave) KindName() string { return "Weave expression" }
func (*Weave) kindNode()        {}

// List: {1, 2, 3}
type List struct {
	Items []*Expression
}

func (*List) KindName() string { return "List literal" }
func (*List) kindNode()        {}

// RecordItem is one key: value pair
type RecordItem struct {
	Key   *Expression
	Value *Expression
}

// Record: {a: 1, b: 2}
type Record struct {
	Items []RecordItem
}

func (*Record) KindName() string { return "Record literal" }
func (*Record) kindNode()        {}

// ============ TERMS ============

// Variable: a previously defined variable term
type Variable struct {
	Term *term.Term
}

func (*Variable) KindName() string { return "Variable reference" }
func (*Variable) kindNode()        {}

// Enumerator: a constant term
type Enumerator struct {
	Term *term.Term
}

func (*Enumerator) KindName() string { return "Constant reference" }
func (*Enumerator) kindNode()        {}

// Type: a bare type name
type Type struct {
	Term *term.Term
}

func (*Type) KindName() string { return "Type reference" }
func (*Type) kindNode()        {}

// Resource: a term bound by require
type Resource struct {
	Term *term.Term
}

func (*Resource) KindName() string { return "Resource reference" }
func (*Resource) kindNode()        {}

// That: the previous result
type That struct{}

func (*That) KindName() string { return "Previous result specifier" }
func (*That) kindNode()        {}

// It: the current tell target
type It struct{}

func (*It) KindName() string { return "Current target specifier" }
func (*It) kindNode()        {}

// ============ OPERATORS ============

// Prefix: not x
type Prefix struct {
	Operation UnaryOperation
	Operand   *Expression
}

func (*Prefix) KindName() string { return "Prefix operator" }
func (*Prefix) kindNode()        {}

// Postfix: x op
type Postfix struct {
	Operation UnaryOperation
	Operand   *Expression
}

func (*Postfix) KindName() string { return "Postfix operator" }
func (*Postfix) kindNode()        {}

// Infix: a + b
type Infix struct {
	Operator BinaryOperator
	LHS      *Expression
	RHS      *Expression
}

func (*Infix) KindName() string { return "Infix operator" }
func (*Infix) kindNode()        {}

// ============ COMMANDS ============

// Argument binds a parameter term to its value
type Argument struct {
	Parameter *term.Term
	Value     *Expression
}

// Command: log "hi" with x
type Command struct {
	Term      *term.Term
	Arguments []Argument
}

func (*Command) KindName() string { return "Command invocation" }
func (*Command) kindNode()        {}

// Reference: ref expr
type Reference struct {
	To *Expression
}

func (*Reference) KindName() string { return "Reference expression" }
func (*Reference) kindNode()        {}

// Get: get expr
type Get struct {
	Target *Expression
}

func (*Get) KindName() string { return "Get command" }
func (*Get) kindNode()        {}

// Set: set x to y
type Set struct {
	Target *Expression
	To     *Expression
}

func (*Set) KindName() string { return "Set command" }
func (*Set) kindNode()        {}

// ============ RESOURCES ============

// Require: require app Finder
type Require struct {
	Resource *term.Term
}

func (*Require) KindName() string { return "Require expression" }
func (*Require) kindNode()        {}

// Use: use expr
type Use struct {
	Module *Expression
}

func (*Use) KindName() string { return "Use expression" }
func (*Use) kindNode()        {}

// ============ CONTROL ============

// Tell: tell target to expr
type Tell struct {
	Target *Expression
	To     *Expression
}

func (*Tell) KindName() string { return "Tell expression" }
func (*Tell) kindNode()        {}

// Let: let x be expr
type Let struct {
	Term         *term.Term
	InitialValue *Expression // nil if absent
}

func (*Let) KindName() string { return "Variable binding expression" }
func (*Let) kindNode()        {}

// Define: define role name [as uri]
type Define struct {
	Term        *term.Term
	ExplicitURI bool
}

func (*Define) KindName() string { return "Define expression" }
func (*Define) kindNode()        {}

// Defining: a define followed by a body parsed in the new term's dictionary
type Defining struct {
	Term        *term.Term
	ExplicitURI bool
	Body        *Expression
}

func (*Defining) KindName() string { return "Defining expression" }
func (*Defining) kindNode()        {}

// Subtype: subtype A from B
type Subtype struct {
	Subtype   *term.Term
	Supertype *term.Term
}

func (*Subtype) KindName() string { return "Subtype declaration" }
func (*Subtype) kindNode()        {}

// Function: on name ... do ... end
type Function struct {
	Name       *term.Term
	Parameters []*term.Term
	Types      []*Expression // one per parameter, nil if untyped
	Arguments  []*term.Term
	Body       *Expression
}

func (*Function) KindName() string { return "Function definition" }
func (*Function) kindNode()        {}

// Block: take a, b do ... end
type Block struct {
	Arguments []*term.Term
	Body      *Expression
}

func (*Block) KindName() string { return "Block expression" }
func (*Block) kindNode()        {}

// Return: return [expr]
type Return struct {
	Value *Expression // nil for bare return
}

func (*Return) KindName() string { return "Return expression" }
func (*Return) kindNode()        {}

// Raise: raise expr
type Raise struct {
	Error *Expression
}

func (*Raise) KindName() string { return "Raise expression" }
func (*Raise) kindNode()        {}

// Try: try ... handle ... end
type Try struct {
	Body   *Expression
	Handle *Expression
}

func (*Try) KindName() string { return "Try expression" }
func (*Try) kindNode()        {}

// If: if cond then a else b
type If struct {
	Condition *Expression
	Then      *Expression
	Else      *Expression // nil if no else
}

func (*If) KindName() string { return "Conditional expression" }
func (*If) kindNode()        {}

// RepeatWhile: repeat while cond
type RepeatWhile struct {
	Condition *Expression
	Repeating *Expression
}

func (*RepeatWhile) KindName() string { return "Conditional repeat expression" }
func (*RepeatWhile) kindNode()        {}

// RepeatTimes: repeat n times
type RepeatTimes struct {
	Times     *Expression
	Repeating *Expression
}

func (*RepeatTimes) KindName() string { return "Constant-bounded repeat expression" }
func (*RepeatTimes) kindNode()        {}

// RepeatFor: repeat for x in container
type RepeatFor struct {
	Variable  *term.Term
	Container *Expression
	Repeating *Expression
}

func (*RepeatFor) KindName() string { return "Iterative repeat expression" }
func (*RepeatFor) kindNode()        {}

// ============ DEBUG ============

// DebugInspectTerm: debug_inspect_term name
type DebugInspectTerm struct {
	Term    *term.Term
	Message string
}

func (*DebugInspectTerm) KindName() string { return "Debug: Inspect term" }
func (*DebugInspectTerm) kindNode()        {}

// DebugInspectLexicon: debug_inspect_lexicon
type DebugInspectLexicon struct {
	Message string
}

func (*DebugInspectLexicon) KindName() string { return "Debug: Inspect lexicon" }
func (*DebugInspectLexicon) kindNode()        {}
