package planner

import "fmt"

// LimitOption distinguishes LIMIT n from FETCH FIRST n ROWS WITH TIES.
type LimitOption int

const (
	LimitOptionCount LimitOption = iota
	LimitOptionWithTies
)

func (o LimitOption) String() string {
	switch o {
	case LimitOptionCount:
		return "Count"
	case LimitOptionWithTies:
		return "WithTies"
	}
	return fmt.Sprintf("LimitOption(%d)", int(o))
}

// Limit skips Offset tuples and then returns at most Count tuples. Either
// expression may be nil.
type Limit struct {
	Plan
	Offset      Expr
	Count       Expr
	LimitOption LimitOption
}

func NewLimit(offset, count Expr, option LimitOption, child PlanNode) *Limit {
	return &Limit{Plan: Plan{Left: child}, Offset: offset, Count: count, LimitOption: option}
}

func (n *Limit) Kind() NodeKind         { return KindLimit }
func (n *Limit) Accept(v Visitor) error { return v.VisitLimit(n) }
