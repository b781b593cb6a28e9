package planner

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindTokens(t *testing.T) {
	for k := KindSeqScan; k <= KindResult; k++ {
		parsed, ok := ParseNodeKind(k.String())
		require.True(t, ok, "kind %d", int(k))
		assert.Equal(t, k, parsed)
	}

	_, ok := ParseNodeKind("Unrecognized")
	assert.False(t, ok)
	_, ok = ParseNodeKind("CteScan")
	assert.False(t, ok)
	assert.Equal(t, "NodeKind(99)", NodeKind(99).String())
}

// kindRecorder records the Visitor method each node dispatches to.
type kindRecorder struct {
	visited []string
}

func (r *kindRecorder) record(s string) error { r.visited = append(r.visited, s); return nil }

func (r *kindRecorder) VisitSeqScan(*SeqScan) error                 { return r.record("SeqScan") }
func (r *kindRecorder) VisitIndexScan(*IndexScan) error             { return r.record("IndexScan") }
func (r *kindRecorder) VisitIndexOnlyScan(*IndexOnlyScan) error     { return r.record("IndexOnlyScan") }
func (r *kindRecorder) VisitBitmapIndexScan(*BitmapIndexScan) error { return r.record("BitmapIndexScan") }
func (r *kindRecorder) VisitBitmapHeapScan(*BitmapHeapScan) error   { return r.record("BitmapHeapScan") }
func (r *kindRecorder) VisitSubqueryScan(*SubqueryScan) error       { return r.record("SubqueryScan") }
func (r *kindRecorder) VisitNestLoop(*NestLoop) error               { return r.record("NestLoop") }
func (r *kindRecorder) VisitMergeJoin(*MergeJoin) error             { return r.record("MergeJoin") }
func (r *kindRecorder) VisitHashJoin(*HashJoin) error               { return r.record("HashJoin") }
func (r *kindRecorder) VisitHash(*Hash) error                       { return r.record("Hash") }
func (r *kindRecorder) VisitMaterial(*Material) error               { return r.record("Material") }
func (r *kindRecorder) VisitMemoize(*Memoize) error                 { return r.record("Memoize") }
func (r *kindRecorder) VisitSort(*Sort) error                       { return r.record("Sort") }
func (r *kindRecorder) VisitIncrementalSort(*IncrementalSort) error { return r.record("IncrementalSort") }
func (r *kindRecorder) VisitGroup(*Group) error                     { return r.record("Group") }
func (r *kindRecorder) VisitAgg(*Agg) error                         { return r.record("Agg") }
func (r *kindRecorder) VisitLimit(*Limit) error                     { return r.record("Limit") }
func (r *kindRecorder) VisitGather(*Gather) error                   { return r.record("Gather") }
func (r *kindRecorder) VisitGatherMerge(*GatherMerge) error         { return r.record("GatherMerge") }
func (r *kindRecorder) VisitBitmapAnd(*BitmapAnd) error             { return r.record("BitmapAnd") }
func (r *kindRecorder) VisitBitmapOr(*BitmapOr) error               { return r.record("BitmapOr") }
func (r *kindRecorder) VisitAppend(*Append) error                   { return r.record("Append") }
func (r *kindRecorder) VisitResult(*Result) error                   { return r.record("Result") }
func (r *kindRecorder) VisitUnrecognized(*Unrecognized) error       { return r.record("Unrecognized") }

func TestAcceptDispatchesByKind(t *testing.T) {
	scan := NewSeqScan(1)
	nodes := []PlanNode{
		scan,
		NewIndexScan(1, 10),
		NewIndexOnlyScan(1, 10),
		NewBitmapIndexScan(1, 10),
		NewBitmapHeapScan(1, nil),
		NewSubqueryScan(1, scan),
		NewNestLoop(JoinInner, scan, scan),
		NewMergeJoin(JoinLeft, nil, scan, scan),
		NewHashJoin(JoinFull, nil, scan, scan),
		NewHash(nil, scan),
		NewMaterial(scan),
		NewMemoize(1, scan),
		NewSort(1, scan),
		NewIncrementalSort(2, 1, scan),
		NewGroup(1, scan),
		NewAgg(AggPlain, AggSplitSimple, scan),
		NewLimit(nil, nil, LimitOptionCount, scan),
		NewGather(2, scan),
		NewGatherMerge(2, 1, scan),
		NewBitmapAnd(),
		NewBitmapOr(),
		NewAppend(),
		NewResult(nil),
		&Unrecognized{Tag: "CteScan"},
	}

	r := &kindRecorder{}
	for _, n := range nodes {
		require.NoError(t, n.Accept(r))
	}
	require.Len(t, r.visited, len(nodes))
	for i, n := range nodes {
		assert.Equal(t, n.Kind().String(), r.visited[i])
	}
}

func TestRangeTableEntry(t *testing.T) {
	rt := RangeTable{{RelID: 5, Alias: "orders"}, {RelID: 6, Alias: "c"}}

	e, ok := rt.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "orders", e.Alias)

	e, ok = rt.Entry(2)
	require.True(t, ok)
	assert.Equal(t, "c", e.Alias)

	_, ok = rt.Entry(0)
	assert.False(t, ok)
	_, ok = rt.Entry(3)
	assert.False(t, ok)
	_, ok = RangeTable(nil).Entry(1)
	assert.False(t, ok)
}

func TestWalk(t *testing.T) {
	a, b, c := NewSeqScan(1), NewSeqScan(2), NewSeqScan(3)
	root := NewNestLoop(JoinInner, NewAppend(a, b), NewSubqueryScan(4, c))

	var kinds []NodeKind
	require.NoError(t, Walk(root, func(n PlanNode) error {
		kinds = append(kinds, n.Kind())
		return nil
	}))
	assert.Equal(t, []NodeKind{KindNestLoop, KindAppend, KindSeqScan, KindSeqScan, KindSubqueryScan, KindSeqScan}, kinds)

	stop := errors.New("stop")
	count := 0
	err := Walk(root, func(n PlanNode) error {
		count++
		if n.Kind() == KindAppend {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)

	assert.NoError(t, Walk(nil, func(PlanNode) error { return stop }))
}

func TestIsNil(t *testing.T) {
	var scan *SeqScan
	var limit *Limit
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(scan))
	assert.True(t, IsNil(limit))
	assert.True(t, IsNil((*Unrecognized)(nil)))
	assert.False(t, IsNil(NewSeqScan(1)))
	assert.False(t, IsNil(&Unrecognized{Tag: "X"}))

	// Typed nil children are skipped like absent ones.
	root := NewMaterial(scan)
	root.Right = limit
	var kinds []NodeKind
	require.NoError(t, Walk(root, func(n PlanNode) error {
		kinds = append(kinds, n.Kind())
		return nil
	}))
	assert.Equal(t, []NodeKind{KindMaterial}, kinds)
	assert.Empty(t, SubPlans(NewSubqueryScan(1, scan)))
}
