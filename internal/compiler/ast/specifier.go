package ast

import "github.com/btouchard/bushel/internal/compiler/term"

// SpecifierKind is the key form of an object specifier.
type SpecifierKind int

const (
	// SpecifierSimple has one data expression whose key form is inferred
	// from its value.
	SpecifierSimple SpecifierKind = iota
	SpecifierIndex
	SpecifierName
	SpecifierID
	SpecifierAll
	SpecifierFirst
	SpecifierMiddle
	SpecifierLast
	SpecifierRandom
	SpecifierPrevious
	SpecifierNext
	SpecifierRange
	SpecifierTest
	SpecifierProperty
)

var specifierNames = [...]string{
	SpecifierSimple:   "simple",
	SpecifierIndex:    "index",
	SpecifierName:     "name",
	SpecifierID:       "id",
	SpecifierAll:      "all",
	SpecifierFirst:    "first",
	SpecifierMiddle:   "middle",
	SpecifierLast:     "last",
	SpecifierRandom:   "random",
	SpecifierPrevious: "previous",
	SpecifierNext:     "next",
	SpecifierRange:    "range",
	SpecifierTest:     "test",
	SpecifierProperty: "property",
}

func (k SpecifierKind) String() string {
	if int(k) >= 0 && int(k) < len(specifierNames) {
		return specifierNames[k]
	}
	return "specifier"
}

// Specifier: window 1 of Finder
//
//	window 1 of Finder
//	^^^^^^^^    ~~~~~~
//	specifier   parent
type Specifier struct {
	Term   *term.Term
	Kind   SpecifierKind
	Data   []*Expression // one for simple/index/name/id/test, two for range
	Test   *TestComponent
	Parent *Expression
}

func (*Specifier) KindName() string { return "Specifier" }
func (*Specifier) kindNode()        {}

// DataExpressions returns the specifier's own data expressions.
func (s *Specifier) DataExpressions() []*Expression {
	return s.Data
}

// TopAncestor follows parents while they are specifiers.
func (s *Specifier) TopAncestor() *Specifier {
	for s.Parent != nil {
		parent, ok := s.Parent.Kind.(*Specifier)
		if !ok {
			break
		}
		s = parent
	}
	return s
}

// RootAncestor returns the first non-specifier parent in the chain.
func (s *Specifier) RootAncestor() *Expression {
	return s.TopAncestor().Parent
}

// SetRootAncestor attaches parent above the topmost specifier of the chain.
func (s *Specifier) SetRootAncestor(parent *Expression) {
	s.TopAncestor().Parent = parent
}

// DataExpressionsWithAncestors returns the data of s and every ancestor,
// ending with the root parent if it is not a specifier.
func (s *Specifier) DataExpressionsWithAncestors() []*Expression {
	exprs := append([]*Expression(nil), s.Data...)
	for spec := s; spec.Parent != nil; {
		parent, ok := spec.Parent.Kind.(*Specifier)
		if !ok {
			exprs = append(exprs, spec.Parent)
			break
		}
		exprs = append(exprs, parent.Data...)
		spec = parent
	}
	return exprs
}

// TestComponent is one side of a whose/where clause.
type TestComponent struct {
	Expression *Expression
	Predicate  *TestPredicate
}

// TestPredicate is a binary comparison inside a test specifier.
type TestPredicate struct {
	Operation BinaryOperation
	LHS       *TestComponent
	RHS       *TestComponent
}

// AsTestPredicate turns nested infix expressions into a predicate tree,
// looking through parentheses.
func AsTestPredicate(e *Expression) *TestComponent {
	for inner := e; ; {
		switch k := inner.Kind.(type) {
		case *Parentheses:
			inner = k.Inner
			continue
		case *Infix:
			return &TestComponent{Predicate: &TestPredicate{
				Operation: k.Operator.Operation,
				LHS:       AsTestPredicate(k.LHS),
				RHS:       AsTestPredicate(k.RHS),
			}}
		}
		return &TestComponent{Expression: e}
	}
}

// AsSpecifier views e as a specifier. Bare type and constant references
// become property specifiers.
func AsSpecifier(e *Expression) *Specifier {
	if e == nil {
		return nil
	}
	switch k := e.Kind.(type) {
	case *Parentheses:
		return AsSpecifier(k.Inner)
	case *Specifier:
		return k
	case *Type:
		return &Specifier{Term: propertyTerm(k.Term), Kind: SpecifierProperty}
	case *Enumerator:
		return &Specifier{Term: propertyTerm(k.Term), Kind: SpecifierProperty}
	}
	return nil
}

func propertyTerm(t *term.Term) *term.Term {
	return term.New(term.RoleProperty, t.URI(), t.Name)
}

// InsertionKind is the position an insertion specifier names.
type InsertionKind int

const (
	InsertBeginning InsertionKind = iota
	InsertEnd
	InsertBefore
	InsertAfter
)

func (k InsertionKind) String() string {
	switch k {
	case InsertBeginning:
		return "beginning"
	case InsertEnd:
		return "end"
	case InsertBefore:
		return "before"
	}
	return "after"
}

// InsertionSpecifier: position before window 1
type InsertionSpecifier struct {
	Kind   InsertionKind
	Parent *Expression // nil when no container was given
}

func (*InsertionSpecifier) KindName() string { return "Insertion specifier" }
func (*InsertionSpecifier) kindNode()        {}
