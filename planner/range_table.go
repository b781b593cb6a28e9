package planner

import "mit.edu/dsg/plansig/common"

// RTIndex is a 1-based reference into a RangeTable. Zero never refers to an entry.
type RTIndex int

// RangeTableEntry describes one relation a statement touches.
type RangeTableEntry struct {
	RelID common.ObjectID `json:"relid"`
	// Alias is the name the query refers to the relation by: the explicit alias
	// if the query gives one, the relation name otherwise.
	Alias string `json:"alias"`
}

// RangeTable lists the relations a statement touches. Scan nodes refer to its
// entries by RTIndex.
type RangeTable []RangeTableEntry

// Entry returns the entry ref points to, or false if ref is out of range.
func (rt RangeTable) Entry(ref RTIndex) (*RangeTableEntry, bool) {
	if ref < 1 || int(ref) > len(rt) {
		return nil, false
	}
	return &rt[ref-1], true
}

// PlannedStmt is the planner's output for one statement: the plan tree and the
// range table its scans refer to.
type PlannedStmt struct {
	RangeTable RangeTable
	Root       PlanNode
}
