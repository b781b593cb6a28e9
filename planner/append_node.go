package planner

// Append concatenates the output of its sub-plans in list order.
type Append struct {
	Plan
	AppendPlans []PlanNode
}

func NewAppend(plans ...PlanNode) *Append {
	return &Append{AppendPlans: plans}
}

func (n *Append) Kind() NodeKind         { return KindAppend }
func (n *Append) Accept(v Visitor) error { return v.VisitAppend(n) }

// BitmapAnd intersects the bitmaps of its sub-plans.
type BitmapAnd struct {
	Plan
	BitmapPlans []PlanNode
}

func NewBitmapAnd(plans ...PlanNode) *BitmapAnd {
	return &BitmapAnd{BitmapPlans: plans}
}

func (n *BitmapAnd) Kind() NodeKind         { return KindBitmapAnd }
func (n *BitmapAnd) Accept(v Visitor) error { return v.VisitBitmapAnd(n) }

// BitmapOr unions the bitmaps of its sub-plans.
type BitmapOr struct {
	Plan
	BitmapPlans []PlanNode
}

func NewBitmapOr(plans ...PlanNode) *BitmapOr {
	return &BitmapOr{BitmapPlans: plans}
}

func (n *BitmapOr) Kind() NodeKind         { return KindBitmapOr }
func (n *BitmapOr) Accept(v Visitor) error { return v.VisitBitmapOr(n) }
