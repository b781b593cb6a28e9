package planner

import "fmt"

// JoinType is the join semantics of a join node.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinFull
	JoinRight
	JoinSemi
	JoinAnti
	JoinRightAnti
	JoinUniqueOuter
	JoinUniqueInner
)

func (j JoinType) String() string {
	switch j {
	case JoinInner:
		return "Inner"
	case JoinLeft:
		return "Left"
	case JoinFull:
		return "Full"
	case JoinRight:
		return "Right"
	case JoinSemi:
		return "Semi"
	case JoinAnti:
		return "Anti"
	case JoinRightAnti:
		return "RightAnti"
	case JoinUniqueOuter:
		return "UniqueOuter"
	case JoinUniqueInner:
		return "UniqueInner"
	}
	return fmt.Sprintf("JoinType(%d)", int(j))
}

// Join holds the attributes shared by the join variants. Left is the outer
// input and Right the inner one.
type Join struct {
	Plan
	JoinType JoinType
}

// NestLoop rescans the inner input once per outer tuple.
type NestLoop struct {
	Join
}

func NewNestLoop(joinType JoinType, outer, inner PlanNode) *NestLoop {
	return &NestLoop{Join: Join{Plan: Plan{Left: outer, Right: inner}, JoinType: joinType}}
}

func (n *NestLoop) Kind() NodeKind         { return KindNestLoop }
func (n *NestLoop) Accept(v Visitor) error { return v.VisitNestLoop(n) }

// MergeJoin merges two inputs sorted on the merge clauses.
type MergeJoin struct {
	Join
	MergeClauses []Expr
}

func NewMergeJoin(joinType JoinType, mergeClauses []Expr, outer, inner PlanNode) *MergeJoin {
	return &MergeJoin{
		Join:         Join{Plan: Plan{Left: outer, Right: inner}, JoinType: joinType},
		MergeClauses: mergeClauses,
	}
}

func (n *MergeJoin) Kind() NodeKind         { return KindMergeJoin }
func (n *MergeJoin) Accept(v Visitor) error { return v.VisitMergeJoin(n) }

// HashJoin probes a hash table built by its inner Hash child.
type HashJoin struct {
	Join
	HashKeys []Expr
}

func NewHashJoin(joinType JoinType, hashKeys []Expr, outer, inner PlanNode) *HashJoin {
	return &HashJoin{
		Join:     Join{Plan: Plan{Left: outer, Right: inner}, JoinType: joinType},
		HashKeys: hashKeys,
	}
}

func (n *HashJoin) Kind() NodeKind         { return KindHashJoin }
func (n *HashJoin) Accept(v Visitor) error { return v.VisitHashJoin(n) }

// Hash builds the hash table of a HashJoin from its left child.
type Hash struct {
	Plan
	HashKeys []Expr
}

func NewHash(hashKeys []Expr, child PlanNode) *Hash {
	return &Hash{Plan: Plan{Left: child}, HashKeys: hashKeys}
}

func (n *Hash) Kind() NodeKind         { return KindHash }
func (n *Hash) Accept(v Visitor) error { return v.VisitHash(n) }

// Memoize caches the inner side of a parameterized nested loop by NumKeys
// cache key expressions.
type Memoize struct {
	Plan
	NumKeys int
}

func NewMemoize(numKeys int, child PlanNode) *Memoize {
	return &Memoize{Plan: Plan{Left: child}, NumKeys: numKeys}
}

func (n *Memoize) Kind() NodeKind         { return KindMemoize }
func (n *Memoize) Accept(v Visitor) error { return v.VisitMemoize(n) }
