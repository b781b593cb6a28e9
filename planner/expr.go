package planner

import (
	"fmt"
	"strconv"
)

// ExprKind discriminates scalar expression variants.
type ExprKind int

const (
	ExprIntConst ExprKind = iota
	ExprStringConst
	ExprColumnRef
	ExprParamRef
	ExprComparison
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntConst:
		return "IntConst"
	case ExprStringConst:
		return "StringConst"
	case ExprColumnRef:
		return "ColumnRef"
	case ExprParamRef:
		return "ParamRef"
	case ExprComparison:
		return "Comparison"
	}
	return fmt.Sprintf("ExprKind(%d)", int(k))
}

// Expr represents a node in a scalar expression tree. Plans carry expressions
// as join keys, hash keys and limit bounds.
type Expr interface {
	// Kind returns the variant of the expression.
	Kind() ExprKind

	// String returns a string representation of the expression.
	String() string
}

// IntConst is an integer literal.
type IntConst struct {
	Value int64
}

func NewIntConst(v int64) *IntConst {
	return &IntConst{Value: v}
}

func (e *IntConst) Kind() ExprKind { return ExprIntConst }

func (e *IntConst) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// StringConst is a string literal.
type StringConst struct {
	Value string
}

func NewStringConst(v string) *StringConst {
	return &StringConst{Value: v}
}

func (e *StringConst) Kind() ExprKind { return ExprStringConst }

func (e *StringConst) String() string {
	return fmt.Sprintf("'%s'", e.Value)
}

// ColumnRef reads a column of the input tuple.
type ColumnRef struct {
	Name   string
	Offset int // offset of the column in the input tuple
}

func NewColumnRef(name string, offset int) *ColumnRef {
	return &ColumnRef{Name: name, Offset: offset}
}

func (e *ColumnRef) Kind() ExprKind { return ExprColumnRef }

func (e *ColumnRef) String() string {
	return e.Name
}

// ParamRef is a statement parameter ($1, $2, ...) bound at execution time.
type ParamRef struct {
	ID int
}

func NewParamRef(id int) *ParamRef {
	return &ParamRef{ID: id}
}

func (e *ParamRef) Kind() ExprKind { return ExprParamRef }

func (e *ParamRef) String() string {
	return "$" + strconv.Itoa(e.ID)
}

type ComparisonType int

const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
)

func (c ComparisonType) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterThanOrEqual:
		return ">="
	case LessThanOrEqual:
		return "<="
	}
	return "???"
}

// Comparison compares two expressions. Merge clauses are equality comparisons
// between an outer and an inner column.
type Comparison struct {
	Left  Expr
	Right Expr
	Op    ComparisonType
}

func NewComparison(left Expr, right Expr, op ComparisonType) *Comparison {
	return &Comparison{Left: left, Right: right, Op: op}
}

func (e *Comparison) Kind() ExprKind { return ExprComparison }

func (e *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", exprString(e.Left), e.Op.String(), exprString(e.Right))
}

// exprString renders a possibly missing operand.
func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
