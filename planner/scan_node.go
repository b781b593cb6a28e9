package planner

import "mit.edu/dsg/plansig/common"

// Scan holds the attributes shared by the scan variants. ScanRelID points into
// the statement's RangeTable.
type Scan struct {
	Plan
	ScanRelID RTIndex
}

// SeqScan reads every tuple of a relation in storage order.
type SeqScan struct {
	Scan
}

func NewSeqScan(scanRelID RTIndex) *SeqScan {
	return &SeqScan{Scan: Scan{ScanRelID: scanRelID}}
}

func (n *SeqScan) Kind() NodeKind         { return KindSeqScan }
func (n *SeqScan) Accept(v Visitor) error { return v.VisitSeqScan(n) }

// IndexScan walks an index and fetches the matching heap tuples.
type IndexScan struct {
	Scan
	IndexOid common.ObjectID
}

func NewIndexScan(scanRelID RTIndex, indexOid common.ObjectID) *IndexScan {
	return &IndexScan{Scan: Scan{ScanRelID: scanRelID}, IndexOid: indexOid}
}

func (n *IndexScan) Kind() NodeKind         { return KindIndexScan }
func (n *IndexScan) Accept(v Visitor) error { return v.VisitIndexScan(n) }

// IndexOnlyScan answers the query from the index alone.
type IndexOnlyScan struct {
	Scan
	IndexOid common.ObjectID
}

func NewIndexOnlyScan(scanRelID RTIndex, indexOid common.ObjectID) *IndexOnlyScan {
	return &IndexOnlyScan{Scan: Scan{ScanRelID: scanRelID}, IndexOid: indexOid}
}

func (n *IndexOnlyScan) Kind() NodeKind         { return KindIndexOnlyScan }
func (n *IndexOnlyScan) Accept(v Visitor) error { return v.VisitIndexOnlyScan(n) }

// BitmapIndexScan produces a bitmap of matching tuple locations for a
// BitmapHeapScan (possibly through BitmapAnd/BitmapOr).
type BitmapIndexScan struct {
	Scan
	IndexOid common.ObjectID
}

func NewBitmapIndexScan(scanRelID RTIndex, indexOid common.ObjectID) *BitmapIndexScan {
	return &BitmapIndexScan{Scan: Scan{ScanRelID: scanRelID}, IndexOid: indexOid}
}

func (n *BitmapIndexScan) Kind() NodeKind         { return KindBitmapIndexScan }
func (n *BitmapIndexScan) Accept(v Visitor) error { return v.VisitBitmapIndexScan(n) }

// BitmapHeapScan fetches the heap tuples named by the bitmap its left child builds.
type BitmapHeapScan struct {
	Scan
}

func NewBitmapHeapScan(scanRelID RTIndex, bitmap PlanNode) *BitmapHeapScan {
	return &BitmapHeapScan{Scan: Scan{Plan: Plan{Left: bitmap}, ScanRelID: scanRelID}}
}

func (n *BitmapHeapScan) Kind() NodeKind         { return KindBitmapHeapScan }
func (n *BitmapHeapScan) Accept(v Visitor) error { return v.VisitBitmapHeapScan(n) }

// SubqueryScan scans the output of a nested plan.
type SubqueryScan struct {
	Scan
	Subplan PlanNode
}

func NewSubqueryScan(scanRelID RTIndex, subplan PlanNode) *SubqueryScan {
	return &SubqueryScan{Scan: Scan{ScanRelID: scanRelID}, Subplan: subplan}
}

func (n *SubqueryScan) Kind() NodeKind         { return KindSubqueryScan }
func (n *SubqueryScan) Accept(v Visitor) error { return v.VisitSubqueryScan(n) }
