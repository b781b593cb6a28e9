package planner

// Gather collects the output of NumWorkers parallel workers running its child.
type Gather struct {
	Plan
	NumWorkers int
}

func NewGather(numWorkers int, child PlanNode) *Gather {
	return &Gather{Plan: Plan{Left: child}, NumWorkers: numWorkers}
}

func (n *Gather) Kind() NodeKind         { return KindGather }
func (n *Gather) Accept(v Visitor) error { return v.VisitGather(n) }

// GatherMerge is Gather preserving the workers' sort order on NumCols columns.
type GatherMerge struct {
	Plan
	NumWorkers int
	NumCols    int
}

func NewGatherMerge(numWorkers, numCols int, child PlanNode) *GatherMerge {
	return &GatherMerge{Plan: Plan{Left: child}, NumWorkers: numWorkers, NumCols: numCols}
}

func (n *GatherMerge) Kind() NodeKind         { return KindGatherMerge }
func (n *GatherMerge) Accept(v Visitor) error { return v.VisitGatherMerge(n) }
