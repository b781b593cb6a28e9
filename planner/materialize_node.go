package planner

// Material stores its input so it can be rescanned cheaply.
type Material struct {
	Plan
}

func NewMaterial(child PlanNode) *Material {
	return &Material{Plan: Plan{Left: child}}
}

func (n *Material) Kind() NodeKind         { return KindMaterial }
func (n *Material) Accept(v Visitor) error { return v.VisitMaterial(n) }

// Result computes a projection without a relation scan, or gates its child on a
// one-time qualification.
type Result struct {
	Plan
}

func NewResult(child PlanNode) *Result {
	return &Result{Plan: Plan{Left: child}}
}

func (n *Result) Kind() NodeKind         { return KindResult }
func (n *Result) Accept(v Visitor) error { return v.VisitResult(n) }
