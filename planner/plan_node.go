package planner

import "fmt"

// NodeKind discriminates the plan node variants. Its String form is the token
// a node contributes to a plan signature.
type NodeKind int

const (
	KindUnrecognized NodeKind = iota
	KindSeqScan
	KindIndexScan
	KindIndexOnlyScan
	KindBitmapIndexScan
	KindBitmapHeapScan
	KindSubqueryScan
	KindNestLoop
	KindMergeJoin
	KindHashJoin
	KindHash
	KindMaterial
	KindMemoize
	KindSort
	KindIncrementalSort
	KindGroup
	KindAgg
	KindLimit
	KindGather
	KindGatherMerge
	KindBitmapAnd
	KindBitmapOr
	KindAppend
	KindResult
)

var nodeKindNames = [...]string{
	KindUnrecognized:    "Unrecognized",
	KindSeqScan:         "SeqScan",
	KindIndexScan:       "IndexScan",
	KindIndexOnlyScan:   "IndexOnlyScan",
	KindBitmapIndexScan: "BitmapIndexScan",
	KindBitmapHeapScan:  "BitmapHeapScan",
	KindSubqueryScan:    "SubqueryScan",
	KindNestLoop:        "NestLoop",
	KindMergeJoin:       "MergeJoin",
	KindHashJoin:        "HashJoin",
	KindHash:            "Hash",
	KindMaterial:        "Material",
	KindMemoize:         "Memoize",
	KindSort:            "Sort",
	KindIncrementalSort: "IncrementalSort",
	KindGroup:           "Group",
	KindAgg:             "Agg",
	KindLimit:           "Limit",
	KindGather:          "Gather",
	KindGatherMerge:     "GatherMerge",
	KindBitmapAnd:       "BitmapAnd",
	KindBitmapOr:        "BitmapOr",
	KindAppend:          "Append",
	KindResult:          "Result",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ParseNodeKind maps a kind token back to its NodeKind. Unknown tokens (and the
// Unrecognized token itself) report false.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k := KindSeqScan; int(k) < len(nodeKindNames); k++ {
		if nodeKindNames[k] == s {
			return k, true
		}
	}
	return KindUnrecognized, false
}

// PlanNode is one operator of a physical plan tree produced by the planner.
// Plan trees are owned by the caller and are never modified by consumers.
//
// Every node has an optional binary left/right backbone (see Plan). Some kinds
// also own a list of sub-plans (Append, BitmapAnd, BitmapOr) or a nested
// sub-plan (SubqueryScan) in addition to it.
type PlanNode interface {
	// Kind returns the variant of the node.
	Kind() NodeKind

	// LeftChild returns the outer input, or nil.
	LeftChild() PlanNode

	// RightChild returns the inner input, or nil.
	RightChild() PlanNode

	// Accept calls the Visitor method matching the node's variant.
	Accept(v Visitor) error
}

// Visitor has one method per plan node variant. A new variant adds a method
// here, so every Visitor implementation has to handle it before it compiles.
type Visitor interface {
	VisitSeqScan(n *SeqScan) error
	VisitIndexScan(n *IndexScan) error
	VisitIndexOnlyScan(n *IndexOnlyScan) error
	VisitBitmapIndexScan(n *BitmapIndexScan) error
	VisitBitmapHeapScan(n *BitmapHeapScan) error
	VisitSubqueryScan(n *SubqueryScan) error
	VisitNestLoop(n *NestLoop) error
	VisitMergeJoin(n *MergeJoin) error
	VisitHashJoin(n *HashJoin) error
	VisitHash(n *Hash) error
	VisitMaterial(n *Material) error
	VisitMemoize(n *Memoize) error
	VisitSort(n *Sort) error
	VisitIncrementalSort(n *IncrementalSort) error
	VisitGroup(n *Group) error
	VisitAgg(n *Agg) error
	VisitLimit(n *Limit) error
	VisitGather(n *Gather) error
	VisitGatherMerge(n *GatherMerge) error
	VisitBitmapAnd(n *BitmapAnd) error
	VisitBitmapOr(n *BitmapOr) error
	VisitAppend(n *Append) error
	VisitResult(n *Result) error
	VisitUnrecognized(n *Unrecognized) error
}

// Plan holds the attributes every plan node carries.
type Plan struct {
	Left  PlanNode
	Right PlanNode

	// Planner estimates. They describe the cost model's guess, not the shape of
	// the plan.
	StartupCost float64
	TotalCost   float64
	PlanRows    float64
	PlanWidth   int
}

func (p *Plan) LeftChild() PlanNode {
	return p.Left
}

func (p *Plan) RightChild() PlanNode {
	return p.Right
}

// Unrecognized stands in for a plan node variant this package does not model,
// e.g. one decoded from a plan document written by a newer planner.
type Unrecognized struct {
	Plan
	Tag string
}

func (n *Unrecognized) Kind() NodeKind         { return KindUnrecognized }
func (n *Unrecognized) Accept(v Visitor) error { return v.VisitUnrecognized(n) }

// Walk calls fn for node and every node below it in pre-order: the node, its
// inline sub-plans, then its left and right children. It stops at the first
// error fn returns.
func Walk(node PlanNode, fn func(PlanNode) error) error {
	if IsNil(node) {
		return nil
	}
	if err := fn(node); err != nil {
		return err
	}
	for _, sub := range SubPlans(node) {
		if err := Walk(sub, fn); err != nil {
			return err
		}
	}
	if err := Walk(node.LeftChild(), fn); err != nil {
		return err
	}
	return Walk(node.RightChild(), fn)
}

// SubPlans returns the sub-plans a node owns outside its left/right backbone.
func SubPlans(node PlanNode) []PlanNode {
	switch n := node.(type) {
	case *Append:
		return n.AppendPlans
	case *BitmapAnd:
		return n.BitmapPlans
	case *BitmapOr:
		return n.BitmapPlans
	case *SubqueryScan:
		if !IsNil(n.Subplan) {
			return []PlanNode{n.Subplan}
		}
	}
	return nil
}

// IsNil reports whether node is absent: an untyped nil or a nil pointer of one
// of the node types. Consumers treat both the same way.
func IsNil(node PlanNode) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *SeqScan:
		return n == nil
	case *IndexScan:
		return n == nil
	case *IndexOnlyScan:
		return n == nil
	case *BitmapIndexScan:
		return n == nil
	case *BitmapHeapScan:
		return n == nil
	case *SubqueryScan:
		return n == nil
	case *NestLoop:
		return n == nil
	case *MergeJoin:
		return n == nil
	case *HashJoin:
		return n == nil
	case *Hash:
		return n == nil
	case *Material:
		return n == nil
	case *Memoize:
		return n == nil
	case *Sort:
		return n == nil
	case *IncrementalSort:
		return n == nil
	case *Group:
		return n == nil
	case *Agg:
		return n == nil
	case *Limit:
		return n == nil
	case *Gather:
		return n == nil
	case *GatherMerge:
		return n == nil
	case *BitmapAnd:
		return n == nil
	case *BitmapOr:
		return n == nil
	case *Append:
		return n == nil
	case *Result:
		return n == nil
	case *Unrecognized:
		return n == nil
	}
	return false
}
