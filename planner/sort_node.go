package planner

// Sort orders its input on NumCols sort columns.
type Sort struct {
	Plan
	NumCols int
}

func NewSort(numCols int, child PlanNode) *Sort {
	return &Sort{Plan: Plan{Left: child}, NumCols: numCols}
}

func (n *Sort) Kind() NodeKind         { return KindSort }
func (n *Sort) Accept(v Visitor) error { return v.VisitSort(n) }

// IncrementalSort sorts input that is already ordered on its first
// PresortedCols sort columns.
type IncrementalSort struct {
	Sort
	PresortedCols int
}

func NewIncrementalSort(numCols, presortedCols int, child PlanNode) *IncrementalSort {
	return &IncrementalSort{Sort: Sort{Plan: Plan{Left: child}, NumCols: numCols}, PresortedCols: presortedCols}
}

func (n *IncrementalSort) Kind() NodeKind         { return KindIncrementalSort }
func (n *IncrementalSort) Accept(v Visitor) error { return v.VisitIncrementalSort(n) }

// Group collapses runs of sorted input on NumCols grouping columns.
type Group struct {
	Plan
	NumCols int
}

func NewGroup(numCols int, child PlanNode) *Group {
	return &Group{Plan: Plan{Left: child}, NumCols: numCols}
}

func (n *Group) Kind() NodeKind         { return KindGroup }
func (n *Group) Accept(v Visitor) error { return v.VisitGroup(n) }
