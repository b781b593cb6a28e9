// Package signature computes deterministic fingerprints of query plans and of
// the engine settings they were planned under.
//
// A plan signature is a single line of whitespace separated tokens that
// serializes the shape of a plan tree: each node contributes its kind token and
// the parameters that change how it executes (join type, key and column
// counts, worker counts, relation and index names), followed by its inline
// sub-plans in "[a,b]" form and its left/right children in " (l,r)" form.
// Planner estimates are left out, so replanning the same query with fresh
// statistics yields the same signature as long as the chosen plan is the same.
//
//	SeqScan orders
//	HashJoin Inner 1 (SeqScan a,Hash 1 (SeqScan b))
//	Limit 10 Count (IndexScan orders orders_pkey)
package signature

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"mit.edu/dsg/plansig/common"
	"mit.edu/dsg/plansig/planner"
)

// ComputePlanSignature returns the signature of the plan tree rooted at node.
// A nil node, typed or not, has the empty signature.
func ComputePlanSignature(rt planner.RangeTable, node planner.PlanNode, resolver *NameResolver) (string, error) {
	var buf strings.Builder
	if err := AppendPlanSignature(&buf, rt, node, resolver); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AppendPlanSignature appends the signature of the plan tree rooted at node to
// buf. On error the content appended to buf is incomplete and must be
// discarded.
//
// A node of a kind the builder does not model fails the whole computation with
// UnrecognizedPlanNodeKind; so does any scalar parameter that is not an
// integer literal (UnrecognizedScalarKind).
func AppendPlanSignature(buf *strings.Builder, rt planner.RangeTable, node planner.PlanNode, resolver *NameResolver) error {
	if resolver == nil {
		resolver = NewNameResolver(nil, nil, nil)
	}
	b := &planBuilder{buf: buf, rt: rt, resolver: resolver}
	return b.build(node)
}

// planBuilder renders one plan tree into buf. It only ever appends.
type planBuilder struct {
	buf      *strings.Builder
	rt       planner.RangeTable
	resolver *NameResolver
}

var _ planner.Visitor = (*planBuilder)(nil)

func (b *planBuilder) build(node planner.PlanNode) error {
	if planner.IsNil(node) {
		return nil
	}
	if err := node.Accept(b); err != nil {
		return err
	}

	left, right := node.LeftChild(), node.RightChild()
	hasLeft, hasRight := !planner.IsNil(left), !planner.IsNil(right)
	if !hasLeft && !hasRight {
		return nil
	}
	b.buf.WriteString(" (")
	if hasLeft {
		if err := b.build(left); err != nil {
			return err
		}
		if hasRight {
			b.buf.WriteByte(',')
		}
	}
	if hasRight {
		if err := b.build(right); err != nil {
			return err
		}
	}
	b.buf.WriteByte(')')
	return nil
}

// token writes the kind token followed by each argument, space separated.
func (b *planBuilder) token(kind planner.NodeKind, args ...string) error {
	b.buf.WriteString(kind.String())
	for _, a := range args {
		b.buf.WriteByte(' ')
		b.buf.WriteString(a)
	}
	return nil
}

// list writes "<Kind> [p0,p1,...]" with every sub-plan in list order.
func (b *planBuilder) list(kind planner.NodeKind, plans []planner.PlanNode) error {
	b.buf.WriteString(kind.String())
	b.buf.WriteString(" [")
	for i, p := range plans {
		if i > 0 {
			b.buf.WriteByte(',')
		}
		if err := b.build(p); err != nil {
			return err
		}
	}
	b.buf.WriteByte(']')
	return nil
}

func (b *planBuilder) alias(s *planner.Scan) string {
	return b.resolver.TableAlias(b.rt, s.ScanRelID)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func (b *planBuilder) VisitSeqScan(n *planner.SeqScan) error {
	return b.token(planner.KindSeqScan, b.alias(&n.Scan))
}

func (b *planBuilder) VisitIndexScan(n *planner.IndexScan) error {
	return b.token(planner.KindIndexScan, b.alias(&n.Scan), b.resolver.IndexName(n.IndexOid))
}

func (b *planBuilder) VisitIndexOnlyScan(n *planner.IndexOnlyScan) error {
	return b.token(planner.KindIndexOnlyScan, b.alias(&n.Scan), b.resolver.IndexName(n.IndexOid))
}

func (b *planBuilder) VisitBitmapIndexScan(n *planner.BitmapIndexScan) error {
	return b.token(planner.KindBitmapIndexScan, b.alias(&n.Scan), b.resolver.IndexName(n.IndexOid))
}

func (b *planBuilder) VisitBitmapHeapScan(n *planner.BitmapHeapScan) error {
	return b.token(planner.KindBitmapHeapScan, b.alias(&n.Scan))
}

func (b *planBuilder) VisitSubqueryScan(n *planner.SubqueryScan) error {
	b.buf.WriteString(planner.KindSubqueryScan.String())
	b.buf.WriteString(" [")
	if err := b.build(n.Subplan); err != nil {
		return err
	}
	b.buf.WriteByte(']')
	return nil
}

func (b *planBuilder) VisitNestLoop(n *planner.NestLoop) error {
	return b.token(planner.KindNestLoop, n.JoinType.String())
}

func (b *planBuilder) VisitMergeJoin(n *planner.MergeJoin) error {
	return b.token(planner.KindMergeJoin, n.JoinType.String(), itoa(len(n.MergeClauses)))
}

func (b *planBuilder) VisitHashJoin(n *planner.HashJoin) error {
	return b.token(planner.KindHashJoin, n.JoinType.String(), itoa(len(n.HashKeys)))
}

func (b *planBuilder) VisitHash(n *planner.Hash) error {
	return b.token(planner.KindHash, itoa(len(n.HashKeys)))
}

func (b *planBuilder) VisitMaterial(n *planner.Material) error {
	return b.token(planner.KindMaterial)
}

func (b *planBuilder) VisitMemoize(n *planner.Memoize) error {
	return b.token(planner.KindMemoize, itoa(n.NumKeys))
}

func (b *planBuilder) VisitSort(n *planner.Sort) error {
	return b.token(planner.KindSort, itoa(n.NumCols))
}

func (b *planBuilder) VisitIncrementalSort(n *planner.IncrementalSort) error {
	return b.token(planner.KindIncrementalSort, itoa(n.NumCols), itoa(n.PresortedCols))
}

func (b *planBuilder) VisitGroup(n *planner.Group) error {
	return b.token(planner.KindGroup, itoa(n.NumCols))
}

func (b *planBuilder) VisitAgg(n *planner.Agg) error {
	return b.token(planner.KindAgg, n.Strategy.String(), n.Split.String())
}

func (b *planBuilder) VisitLimit(n *planner.Limit) error {
	b.buf.WriteString(planner.KindLimit.String())
	if err := AppendScalarSignature(b.buf, n.Offset); err != nil {
		return errors.Wrap(err, "limit offset")
	}
	if err := AppendScalarSignature(b.buf, n.Count); err != nil {
		return errors.Wrap(err, "limit count")
	}
	b.buf.WriteByte(' ')
	b.buf.WriteString(n.LimitOption.String())
	return nil
}

func (b *planBuilder) VisitGather(n *planner.Gather) error {
	return b.token(planner.KindGather, itoa(n.NumWorkers))
}

func (b *planBuilder) VisitGatherMerge(n *planner.GatherMerge) error {
	return b.token(planner.KindGatherMerge, itoa(n.NumWorkers), itoa(n.NumCols))
}

func (b *planBuilder) VisitBitmapAnd(n *planner.BitmapAnd) error {
	return b.list(planner.KindBitmapAnd, n.BitmapPlans)
}

func (b *planBuilder) VisitBitmapOr(n *planner.BitmapOr) error {
	return b.list(planner.KindBitmapOr, n.BitmapPlans)
}

func (b *planBuilder) VisitAppend(n *planner.Append) error {
	return b.list(planner.KindAppend, n.AppendPlans)
}

func (b *planBuilder) VisitResult(n *planner.Result) error {
	return b.token(planner.KindResult)
}

func (b *planBuilder) VisitUnrecognized(n *planner.Unrecognized) error {
	return errors.WithAssertionFailure(common.NewError(common.UnrecognizedPlanNodeKind,
		"unhandled plan node kind %q", n.Tag))
}
