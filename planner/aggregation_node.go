package planner

import "fmt"

// AggStrategy is how an Agg node forms its groups.
type AggStrategy int

const (
	AggPlain AggStrategy = iota
	AggSorted
	AggHashed
	AggMixed
)

func (s AggStrategy) String() string {
	switch s {
	case AggPlain:
		return "Plain"
	case AggSorted:
		return "Sorted"
	case AggHashed:
		return "Hashed"
	case AggMixed:
		return "Mixed"
	}
	return fmt.Sprintf("AggStrategy(%d)", int(s))
}

// AggSplit is a bit set describing which part of a split (partial) aggregation
// an Agg node performs.
type AggSplit int

const (
	AggSplitOpCombine     AggSplit = 1 << iota // input is transition states
	AggSplitOpSkipFinal                        // skip the final function
	AggSplitOpSerialize                        // serialize transition states
	AggSplitOpDeserialize                      // deserialize transition states

	aggSplitAllBits = AggSplitOpCombine | AggSplitOpSkipFinal | AggSplitOpSerialize | AggSplitOpDeserialize
)

const (
	AggSplitSimple        AggSplit = 0
	AggSplitInitialSerial          = AggSplitOpSkipFinal | AggSplitOpSerialize
	AggSplitFinalDeserial          = AggSplitOpCombine | AggSplitOpDeserialize
)

func (s AggSplit) String() string {
	switch s {
	case AggSplitSimple:
		return "Simple"
	case AggSplitInitialSerial:
		return "InitialSerial"
	case AggSplitFinalDeserial:
		return "FinalDeserial"
	}
	return fmt.Sprintf("AggSplit(%d)", int(s))
}

// Agg computes aggregates, optionally grouped.
type Agg struct {
	Plan
	Strategy AggStrategy
	Split    AggSplit
	// NumGroups is the planner's estimate of the number of groups.
	NumGroups float64
}

func NewAgg(strategy AggStrategy, split AggSplit, child PlanNode) *Agg {
	return &Agg{Plan: Plan{Left: child}, Strategy: strategy, Split: split}
}

func (n *Agg) Kind() NodeKind         { return KindAgg }
func (n *Agg) Accept(v Visitor) error { return v.VisitAgg(n) }
