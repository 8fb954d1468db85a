package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sexp renders e as a compact s-expression, e.g. (add 1 (multiply 2 3)).
func Sexp(e *Expression) string {
	var sb strings.Builder
	writeSexp(&sb, e)
	return sb.String()
}

func writeSexp(sb *strings.Builder, e *Expression) {
	if e == nil {
		sb.WriteString("nil")
		return
	}
	list := func(head string, children ...*Expression) {
		sb.WriteString("(" + head)
		for _, c := range children {
			sb.WriteString(" ")
			writeSexp(sb, c)
		}
		sb.WriteString(")")
	}

	switch k := e.Kind.(type) {
	case *Integer:
		sb.WriteString(strconv.FormatInt(k.Value, 10))
	case *Double:
		sb.WriteString(strconv.FormatFloat(k.Value, 'g', -1, 64))
	case *String:
		sb.WriteString(strconv.Quote(k.Value))
	case *Variable:
		sb.WriteString(k.Term.String())
	case *Enumerator:
		sb.WriteString(k.Term.String())
	case *Type:
		sb.WriteString(k.Term.String())
	case *Resource:
		sb.WriteString(k.Term.String())
	case *Empty:
		sb.WriteString("()")
	case *Null:
		sb.WriteString("null")
	case *That:
		sb.WriteString("that")
	case *It:
		sb.WriteString("it")
	case *Infix:
		list(k.Operator.Operation.String(), k.LHS, k.RHS)
	case *Prefix:
		list(k.Operation.String(), k.Operand)
	case *Postfix:
		list("postfix-"+k.Operation.String(), k.Operand)
	case *Require:
		sb.WriteString("(require " + strconv.Quote(k.Resource.Name.String()) + ")")
	case *Command:
		sb.WriteString("(" + k.Term.String())
		for _, arg := range k.Arguments {
			sb.WriteString(" [" + arg.Parameter.String() + "] ")
			writeSexp(sb, arg.Value)
		}
		sb.WriteString(")")
	case *Specifier:
		head := k.Kind.String() + " " + k.Term.String()
		children := append([]*Expression(nil), k.Data...)
		if k.Parent != nil {
			children = append(children, k.Parent)
		}
		list(head, children...)
	default:
		list(tag(e.Kind), e.Subexpressions()...)
	}
}

// tag derives a short, lower-case head from a kind's display name.
func tag(k Kind) string {
	switch k.(type) {
	case *Sequence:
		return "seq"
	case *Parentheses:
		return "group"
	case *Record:
		return "record"
	case *List:
		return "list"
	}
	name := strings.ToLower(k.KindName())
	if i := strings.IndexAny(name, " :"); i > 0 {
		name = name[:i]
	}
	return name
}

// Fprint writes an indented tree of e, one node per line.
func Fprint(w io.Writer, e *Expression) error {
	return fprint(w, e, 0)
}

func fprint(w io.Writer, e *Expression, depth int) error {
	line := strings.Repeat("  ", depth) + e.KindName() + " " + e.Location.String()
	if detail := describe(e); detail != "" {
		line += " " + detail
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, sub := range e.Subexpressions() {
		if err := fprint(w, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func describe(e *Expression) string {
	switch k := e.Kind.(type) {
	case *Integer:
		return strconv.FormatInt(k.Value, 10)
	case *Double:
		return strconv.FormatFloat(k.Value, 'g', -1, 64)
	case *String:
		return strconv.Quote(k.Value)
	case *MultilineString:
		return strconv.Quote(k.Body)
	case *Weave:
		return "#!" + k.Hashbang.Invocation
	case *Infix:
		return k.Operator.Operation.String()
	case *Prefix:
		return k.Operation.String()
	case *Postfix:
		return k.Operation.String()
	case *Variable:
		return k.Term.Describe()
	case *Enumerator:
		return k.Term.Describe()
	case *Type:
		return k.Term.Describe()
	case *Resource:
		return k.Term.Describe()
	case *Require:
		return k.Resource.Describe()
	case *Command:
		return k.Term.Describe()
	case *Specifier:
		return k.Kind.String() + " " + k.Term.Describe()
	case *InsertionSpecifier:
		return k.Kind.String()
	case *Let:
		return k.Term.Describe()
	case *Define:
		return k.Term.Describe()
	case *Defining:
		return k.Term.Describe()
	case *Function:
		return k.Name.Describe()
	case *RepeatFor:
		return k.Variable.Describe()
	case *Subtype:
		return k.Subtype.String() + " from " + k.Supertype.String()
	}
	return ""
}
