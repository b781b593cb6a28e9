package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExprStrings(t *testing.T) {
	id := NewColumnRef("a.id", 0)
	tests := []struct {
		name     string
		expr     Expr
		kind     ExprKind
		expected string
	}{
		{"int", NewIntConst(-42), ExprIntConst, "-42"},
		{"string", NewStringConst("alice"), ExprStringConst, "'alice'"},
		{"column", id, ExprColumnRef, "a.id"},
		{"param", NewParamRef(2), ExprParamRef, "$2"},
		{"compare", NewComparison(id, NewIntConst(5), GreaterThanOrEqual), ExprComparison, "(a.id >= 5)"},
		{"compare without operands", &Comparison{}, ExprComparison, "(<nil> = <nil>)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.expr.Kind())
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Inner", JoinInner.String())
	assert.Equal(t, "UniqueInner", JoinUniqueInner.String())
	assert.Equal(t, "JoinType(42)", JoinType(42).String())

	assert.Equal(t, "Hashed", AggHashed.String())
	assert.Equal(t, "InitialSerial", AggSplitInitialSerial.String())
	assert.Equal(t, "FinalDeserial", AggSplitFinalDeserial.String())
	assert.Equal(t, AggSplit(6), AggSplitInitialSerial)
	assert.Equal(t, AggSplit(9), AggSplitFinalDeserial)
	assert.Equal(t, "AggSplit(2)", AggSplitOpSkipFinal.String())

	assert.Equal(t, "WithTies", LimitOptionWithTies.String())
	assert.Equal(t, "<", LessThan.String())
	assert.Equal(t, "IntConst", ExprIntConst.String())
}
