package planner

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"mit.edu/dsg/plansig/common"
)

// Plan documents are JSON renderings of a PlannedStmt, e.g.
//
//	{
//	  "range_table": [{"relid": 1, "alias": "a"}, {"relid": 2, "alias": "b"}],
//	  "plan": {
//	    "kind": "HashJoin", "join_type": "Inner",
//	    "keys": [{"kind": "column", "name": "a.id"}],
//	    "left": {"kind": "SeqScan", "scan_relid": 1},
//	    "right": {"kind": "Hash", "keys": [{"kind": "column", "name": "b.id"}],
//	              "left": {"kind": "SeqScan", "scan_relid": 2}}
//	  }
//	}
//
// A node whose kind is not one of the NodeKind tokens decodes into an
// Unrecognized node rather than failing, so the document can still be inspected.

type stmtJSON struct {
	RangeTable RangeTable `json:"range_table"`
	Plan       *planJSON  `json:"plan"`
}

type planJSON struct {
	Kind  string    `json:"kind"`
	Left  *planJSON `json:"left,omitempty"`
	Right *planJSON `json:"right,omitempty"`

	StartupCost float64 `json:"startup_cost,omitempty"`
	TotalCost   float64 `json:"total_cost,omitempty"`
	PlanRows    float64 `json:"plan_rows,omitempty"`
	PlanWidth   int     `json:"plan_width,omitempty"`

	ScanRelID     RTIndex         `json:"scan_relid,omitempty"`
	IndexOid      common.ObjectID `json:"index_oid,omitempty"`
	JoinType      string          `json:"join_type,omitempty"`
	Keys          []*exprJSON     `json:"keys,omitempty"`
	NumKeys       int             `json:"num_keys,omitempty"`
	NumCols       int             `json:"num_cols,omitempty"`
	PresortedCols int             `json:"presorted_cols,omitempty"`
	Strategy      string          `json:"strategy,omitempty"`
	Split         string          `json:"split,omitempty"`
	NumGroups     float64         `json:"num_groups,omitempty"`
	Offset        *exprJSON       `json:"offset,omitempty"`
	Count         *exprJSON       `json:"count,omitempty"`
	LimitOption   string          `json:"limit_option,omitempty"`
	NumWorkers    int             `json:"num_workers,omitempty"`
	Plans         []*planJSON     `json:"plans,omitempty"`
	Subplan       *planJSON       `json:"subplan,omitempty"`
}

type exprJSON struct {
	Kind   string    `json:"kind"` // int, string, column, param or compare
	Int    int64     `json:"int,omitempty"`
	Str    string    `json:"str,omitempty"`
	Name   string    `json:"name,omitempty"`
	Offset int       `json:"offset,omitempty"`
	Param  int       `json:"param,omitempty"`
	Op     string    `json:"op,omitempty"`
	Left   *exprJSON `json:"left,omitempty"`
	Right  *exprJSON `json:"right,omitempty"`
}

// DecodePlannedStmt parses a plan document. Malformed documents report
// MalformedPlanError.
func DecodePlannedStmt(data []byte) (*PlannedStmt, error) {
	var doc stmtJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(common.NewError(common.MalformedPlanError, "%v", err), "decoding plan document")
	}
	if doc.Plan == nil {
		return nil, common.NewError(common.MalformedPlanError, "plan document has no plan")
	}
	root, err := doc.Plan.toNode()
	if err != nil {
		return nil, errors.Wrap(err, "decoding plan document")
	}
	return &PlannedStmt{RangeTable: doc.RangeTable, Root: root}, nil
}

func malformed(format string, args ...any) error {
	return common.NewError(common.MalformedPlanError, format, args...)
}

type namedEnum interface {
	~int
	String() string
}

// parseEnum matches name against the String forms of values. An empty name
// selects values[0].
func parseEnum[T namedEnum](field, name string, values ...T) (T, error) {
	if name == "" {
		return values[0], nil
	}
	for _, v := range values {
		if v.String() == name {
			return v, nil
		}
	}
	var zero T
	return zero, malformed("unknown %s %q", field, name)
}

// parseAggSplit accepts the named splits and the "AggSplit(<n>)" form String
// uses for any other combination of split bits.
func parseAggSplit(name string) (AggSplit, error) {
	if inner, ok := strings.CutPrefix(name, "AggSplit("); ok {
		if digits, ok := strings.CutSuffix(inner, ")"); ok {
			n, err := strconv.Atoi(digits)
			if err != nil || n < 0 || n > int(aggSplitAllBits) {
				return 0, malformed("invalid agg split %q", name)
			}
			return AggSplit(n), nil
		}
	}
	return parseEnum("agg split", name, AggSplitSimple, AggSplitInitialSerial, AggSplitFinalDeserial)
}

func nonNegative(field string, v int) (int, error) {
	if v < 0 {
		return 0, malformed("%s must not be negative, got %d", field, v)
	}
	return v, nil
}

func (p *planJSON) toNodes(list []*planJSON) ([]PlanNode, error) {
	nodes := make([]PlanNode, 0, len(list))
	for i, sub := range list {
		if sub == nil {
			return nil, malformed("%s: sub-plan %d is null", p.Kind, i)
		}
		n, err := sub.toNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *planJSON) toNode() (PlanNode, error) {
	base := Plan{
		StartupCost: p.StartupCost,
		TotalCost:   p.TotalCost,
		PlanRows:    p.PlanRows,
		PlanWidth:   p.PlanWidth,
	}
	var err error
	if p.Left != nil {
		if base.Left, err = p.Left.toNode(); err != nil {
			return nil, err
		}
	}
	if p.Right != nil {
		if base.Right, err = p.Right.toNode(); err != nil {
			return nil, err
		}
	}

	kind, ok := ParseNodeKind(p.Kind)
	if !ok {
		return &Unrecognized{Plan: base, Tag: p.Kind}, nil
	}
	scan := Scan{Plan: base, ScanRelID: p.ScanRelID}

	switch kind {
	case KindSeqScan:
		return &SeqScan{Scan: scan}, nil
	case KindIndexScan:
		return &IndexScan{Scan: scan, IndexOid: p.IndexOid}, nil
	case KindIndexOnlyScan:
		return &IndexOnlyScan{Scan: scan, IndexOid: p.IndexOid}, nil
	case KindBitmapIndexScan:
		return &BitmapIndexScan{Scan: scan, IndexOid: p.IndexOid}, nil
	case KindBitmapHeapScan:
		return &BitmapHeapScan{Scan: scan}, nil
	case KindSubqueryScan:
		if p.Subplan == nil {
			return nil, malformed("SubqueryScan without subplan")
		}
		sub, err := p.Subplan.toNode()
		if err != nil {
			return nil, err
		}
		return &SubqueryScan{Scan: scan, Subplan: sub}, nil

	case KindNestLoop, KindMergeJoin, KindHashJoin:
		jt, err := parseEnum("join type", p.JoinType,
			JoinInner, JoinLeft, JoinFull, JoinRight, JoinSemi, JoinAnti,
			JoinRightAnti, JoinUniqueOuter, JoinUniqueInner)
		if err != nil {
			return nil, err
		}
		join := Join{Plan: base, JoinType: jt}
		if kind == KindNestLoop {
			return &NestLoop{Join: join}, nil
		}
		keys, err := toExprs(p.Keys)
		if err != nil {
			return nil, err
		}
		if kind == KindMergeJoin {
			return &MergeJoin{Join: join, MergeClauses: keys}, nil
		}
		return &HashJoin{Join: join, HashKeys: keys}, nil
	case KindHash:
		keys, err := toExprs(p.Keys)
		if err != nil {
			return nil, err
		}
		return &Hash{Plan: base, HashKeys: keys}, nil
	case KindMemoize:
		n, err := nonNegative("num_keys", p.NumKeys)
		if err != nil {
			return nil, err
		}
		return &Memoize{Plan: base, NumKeys: n}, nil
	case KindMaterial:
		return &Material{Plan: base}, nil
	case KindResult:
		return &Result{Plan: base}, nil

	case KindSort, KindIncrementalSort, KindGroup:
		cols, err := nonNegative("num_cols", p.NumCols)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindSort:
			return &Sort{Plan: base, NumCols: cols}, nil
		case KindGroup:
			return &Group{Plan: base, NumCols: cols}, nil
		}
		presorted, err := nonNegative("presorted_cols", p.PresortedCols)
		if err != nil {
			return nil, err
		}
		return &IncrementalSort{Sort: Sort{Plan: base, NumCols: cols}, PresortedCols: presorted}, nil
	case KindAgg:
		strategy, err := parseEnum("agg strategy", p.Strategy, AggPlain, AggSorted, AggHashed, AggMixed)
		if err != nil {
			return nil, err
		}
		split, err := parseAggSplit(p.Split)
		if err != nil {
			return nil, err
		}
		return &Agg{Plan: base, Strategy: strategy, Split: split, NumGroups: p.NumGroups}, nil
	case KindLimit:
		option, err := parseEnum("limit option", p.LimitOption, LimitOptionCount, LimitOptionWithTies)
		if err != nil {
			return nil, err
		}
		offset, err := p.Offset.toExpr()
		if err != nil {
			return nil, err
		}
		count, err := p.Count.toExpr()
		if err != nil {
			return nil, err
		}
		return &Limit{Plan: base, Offset: offset, Count: count, LimitOption: option}, nil

	case KindGather, KindGatherMerge:
		workers, err := nonNegative("num_workers", p.NumWorkers)
		if err != nil {
			return nil, err
		}
		if kind == KindGather {
			return &Gather{Plan: base, NumWorkers: workers}, nil
		}
		cols, err := nonNegative("num_cols", p.NumCols)
		if err != nil {
			return nil, err
		}
		return &GatherMerge{Plan: base, NumWorkers: workers, NumCols: cols}, nil

	case KindBitmapAnd, KindBitmapOr, KindAppend:
		plans, err := p.toNodes(p.Plans)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindBitmapAnd:
			return &BitmapAnd{Plan: base, BitmapPlans: plans}, nil
		case KindBitmapOr:
			return &BitmapOr{Plan: base, BitmapPlans: plans}, nil
		}
		return &Append{Plan: base, AppendPlans: plans}, nil
	}

	common.Assert(false, "ParseNodeKind returned %s without a decoder", kind)
	return nil, nil
}

func toExprs(list []*exprJSON) ([]Expr, error) {
	exprs := make([]Expr, 0, len(list))
	for i, e := range list {
		if e == nil {
			return nil, malformed("key %d is null", i)
		}
		expr, err := e.toExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// toExpr decodes an expression; a nil receiver decodes to a nil Expr.
func (e *exprJSON) toExpr() (Expr, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Kind {
	case "int":
		return NewIntConst(e.Int), nil
	case "string":
		return NewStringConst(e.Str), nil
	case "column":
		return NewColumnRef(e.Name, e.Offset), nil
	case "param":
		return NewParamRef(e.Param), nil
	case "compare":
		if e.Left == nil || e.Right == nil {
			return nil, malformed("comparison needs both operands")
		}
		op, err := parseEnum("comparison operator", e.Op,
			Equal, NotEqual, GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual)
		if err != nil {
			return nil, err
		}
		left, err := e.Left.toExpr()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toExpr()
		if err != nil {
			return nil, err
		}
		return NewComparison(left, right, op), nil
	}
	return nil, malformed("unknown expression kind %q", e.Kind)
}
