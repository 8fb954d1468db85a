package ast

import (
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Subexpressions returns the direct children of e in evaluation order.
func (e *Expression) Subexpressions() []*Expression {
	var out []*Expression
	add := func(exprs ...*Expression) {
		for _, x := range exprs {
			if x != nil {
				out = append(out, x)
			}
		}
	}

	switch k := e.Kind.(type) {
	case *Sequence:
		add(k.Expressions...)
	case *List:
		add(k.Items...)
	case *Record:
		for _, item := range k.Items {
			add(item.Key, item.Value)
		}
	case *Parentheses:
		add(k.Inner)
	case *Scoped:
		add(k.Inner)
	case *Prefix:
		add(k.Operand)
	case *Postfix:
		add(k.Operand)
	case *Infix:
		add(k.LHS, k.RHS)
	case *Command:
		for _, arg := range k.Arguments {
			add(arg.Value)
		}
	case *Specifier:
		add(k.DataExpressionsWithAncestors()...)
	case *InsertionSpecifier:
		add(k.Parent)
	case *Reference:
		add(k.To)
	case *Get:
		add(k.Target)
	case *Set:
		add(k.Target, k.To)
	case *Use:
		add(k.Module)
	case *Tell:
		add(k.Target, k.To)
	case *Let:
		add(k.InitialValue)
	case *Defining:
		add(k.Body)
	case *Function:
		add(k.Body)
	case *Block:
		add(k.Body)
	case *Return:
		add(k.Value)
	case *Raise:
		add(k.Error)
	case *Try:
		add(k.Body, k.Handle)
	case *If:
		add(k.Condition, k.Then, k.Else)
	case *RepeatWhile:
		add(k.Condition, k.Repeating)
	case *RepeatTimes:
		add(k.Times, k.Repeating)
	case *RepeatFor:
		add(k.Container, k.Repeating)
	}
	return out
}

// HasSideEffects reports whether evaluating e may do more than yield a
// value. Operators and commands are assumed to.
func (e *Expression) HasSideEffects() bool {
	switch e.Kind.(type) {
	case *Require, *Use, *Prefix, *Postfix, *Infix, *Set, *Command, *Weave, *Subtype:
		return true
	}
	for _, sub := range e.Subexpressions() {
		if sub.HasSideEffects() {
			return true
		}
	}
	return false
}

// PrincipalTerm returns the term whose dictionary e opens, as in
// "tell Finder to ...".
func (e *Expression) PrincipalTerm() *term.Term {
	switch k := e.Kind.(type) {
	case *Parentheses:
		return k.Inner.PrincipalTerm()
	case *Variable:
		return k.Term
	case *Enumerator:
		return k.Term
	case *Type:
		return k.Term
	case *Resource:
		return k.Term
	case *Require:
		return k.Resource
	case *Command:
		return k.Term
	case *Specifier:
		return k.Term
	case *Use:
		return k.Module.PrincipalTerm()
	}
	return nil
}

// At returns the innermost expressions whose location contains loc.
func (e *Expression) At(loc source.Location) []*Expression {
	if loc.Lo < e.Location.Lo || loc.Hi > e.Location.Hi {
		return nil
	}
	var inner []*Expression
	for _, sub := range e.Subexpressions() {
		inner = append(inner, sub.At(loc)...)
	}
	if len(inner) == 0 {
		return []*Expression{e}
	}
	return inner
}

// Walk calls fn for e and its descendants, depth first. Returning false
// skips the children of that node.
func Walk(e *Expression, fn func(*Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, sub := range e.Subexpressions() {
		Walk(sub, fn)
	}
}
