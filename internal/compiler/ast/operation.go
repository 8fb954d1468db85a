package ast

import "fmt"

// Precedence orders binary operators; higher binds tighter.
type Precedence int

// Identity is below every real operator and is the precedence of an
// expression not yet to the right of any operator.
const (
	PrecedenceIdentity       Precedence = 0
	PrecedenceOr             Precedence = 10
	PrecedenceAnd            Precedence = 20
	PrecedenceIntrospection  Precedence = 30
	PrecedenceComparison     Precedence = 40
	PrecedenceConcatenation  Precedence = 50
	PrecedenceAddition       Precedence = 60
	PrecedenceMultiplication Precedence = 70
	PrecedenceCoercion       Precedence = 80
)

type Associativity int

const (
	Left Associativity = iota
	Right
)

type UnaryOperation int

const (
	OpNot UnaryOperation = iota
	OpNegate
)

func (op UnaryOperation) String() string {
	switch op {
	case OpNot:
		return "not"
	case OpNegate:
		return "negate"
	}
	return fmt.Sprintf("unary(%d)", int(op))
}

type BinaryOperation int

const (
	OpOr BinaryOperation = iota
	OpXor
	OpAnd
	OpIsA
	OpIsNotA
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpStartsWith
	OpEndsWith
	OpContains
	OpNotContains
	OpContainedBy
	OpNotContainedBy
	OpConcatenate
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpCoerce
)

var binaryNames = [...]string{
	OpOr:             "or",
	OpXor:            "xor",
	OpAnd:            "and",
	OpIsA:            "is-a",
	OpIsNotA:         "is-not-a",
	OpEqual:          "equal",
	OpNotEqual:       "not-equal",
	OpLess:           "less",
	OpLessEqual:      "less-equal",
	OpGreater:        "greater",
	OpGreaterEqual:   "greater-equal",
	OpStartsWith:     "starts-with",
	OpEndsWith:       "ends-with",
	OpContains:       "contains",
	OpNotContains:    "not-contains",
	OpContainedBy:    "contained-by",
	OpNotContainedBy: "not-contained-by",
	OpConcatenate:    "concatenate",
	OpAdd:            "add",
	OpSubtract:       "subtract",
	OpMultiply:       "multiply",
	OpDivide:         "divide",
	OpCoerce:         "coerce",
}

func (op BinaryOperation) String() string {
	if int(op) >= 0 && int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return fmt.Sprintf("binary(%d)", int(op))
}

// Precedence returns the operation's standard precedence group.
func (op BinaryOperation) Precedence() Precedence {
	switch op {
	case OpOr, OpXor:
		return PrecedenceOr
	case OpAnd:
		return PrecedenceAnd
	case OpIsA, OpIsNotA:
		return PrecedenceIntrospection
	case OpConcatenate:
		return PrecedenceConcatenation
	case OpAdd, OpSubtract:
		return PrecedenceAddition
	case OpMultiply, OpDivide:
		return PrecedenceMultiplication
	case OpCoerce:
		return PrecedenceCoercion
	}
	return PrecedenceComparison
}

// BinaryOperator is an infix operator table entry. Language modules may bind
// an operation at a non-standard precedence or associativity.
type BinaryOperator struct {
	Operation     BinaryOperation
	Precedence    Precedence
	Associativity Associativity
}

// Binary returns op at its standard precedence, left-associative.
func Binary(op BinaryOperation) BinaryOperator {
	return BinaryOperator{Operation: op, Precedence: op.Precedence(), Associativity: Left}
}

// Identity is the operator of an expression with nothing to its left.
var Identity = BinaryOperator{Precedence: PrecedenceIdentity, Associativity: Left}

// YieldsTo reports whether the operand to the right of b belongs to next
// instead, as in 1 + 2 * 3.
func (b BinaryOperator) YieldsTo(next BinaryOperator) bool {
	return next.Precedence > b.Precedence ||
		(next.Precedence == b.Precedence && b.Associativity == Right)
}
