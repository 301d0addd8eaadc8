package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruz/phasegen/internal/ir"
)

func TestCompile_NilSpecUsesFallback(t *testing.T) {
	clause, warnings := Compile(nil, "StepFlag[3].Flag")

	assert.Empty(t, warnings)
	ref, ok := clause.SingleLiteral()
	require.True(t, ok)
	assert.Equal(t, "StepFlag[3].Flag", ref.Tag)
	assert.False(t, ref.Negated)
}

func TestCompile_EmptyLiteralsUsesFallback(t *testing.T) {
	spec := &ir.ConditionSpec{Expression: "X1"}
	clause, warnings := Compile(spec, "StepFlag[3].Flag")

	assert.Empty(t, warnings)
	ref, ok := clause.SingleLiteral()
	require.True(t, ok)
	assert.Equal(t, "StepFlag[3].Flag", ref.Tag)
}

func TestCompile_BareLabelShortCircuit(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1",
		Literals:   []ir.Literal{{Label: "X1", Tag: "A"}},
	}
	clause, warnings := Compile(spec, "fallback")

	assert.Empty(t, warnings)
	ref, ok := clause.SingleLiteral()
	require.True(t, ok)
	assert.Equal(t, "A", ref.Tag)
	assert.False(t, ref.Negated)
}

func TestCompile_Disjunction(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1 OR X2",
		Literals: []ir.Literal{
			{Label: "X1", Tag: "A"},
			{Label: "X2", Tag: "B", Negated: true},
		},
	}
	clause, warnings := Compile(spec, "fallback")

	assert.Empty(t, warnings)
	require.Len(t, clause.Disjuncts, 2)
	require.Len(t, clause.Disjuncts[0], 1)
	require.Len(t, clause.Disjuncts[1], 1)
	assert.Equal(t, ir.LiteralRef{Tag: "A"}, clause.Disjuncts[0][0])
	assert.Equal(t, ir.LiteralRef{Tag: "B", Negated: true}, clause.Disjuncts[1][0])
}

func TestCompile_ConjunctionInsideDisjunction(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "(X1 AND X2) OR X3",
		Literals: []ir.Literal{
			{Label: "X1", Tag: "t1"},
			{Label: "X2", Tag: "t2"},
			{Label: "X3", Tag: "t3"},
		},
	}
	clause, warnings := Compile(spec, "fallback")

	assert.Empty(t, warnings)
	require.Len(t, clause.Disjuncts, 2)
	require.Len(t, clause.Disjuncts[0], 2)
	require.Len(t, clause.Disjuncts[1], 1)
	assert.Equal(t, "t1", clause.Disjuncts[0][0].Tag)
	assert.Equal(t, "t2", clause.Disjuncts[0][1].Tag)
	assert.Equal(t, "t3", clause.Disjuncts[1][0].Tag)
}

func TestCompile_PlainConjunction(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1 AND X2",
		Literals: []ir.Literal{
			{Label: "X1", Tag: "A"},
			{Label: "X2", Tag: "B"},
		},
	}
	clause, warnings := Compile(spec, "fallback")

	assert.Empty(t, warnings)
	require.Len(t, clause.Disjuncts, 1)
	require.Len(t, clause.Disjuncts[0], 2)
}

func TestCompile_UnresolvedLabelDroppedWithWarning(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1 AND X9",
		Literals:   []ir.Literal{{Label: "X1", Tag: "A"}},
	}
	clause, warnings := Compile(spec, "fallback")

	require.Len(t, clause.Disjuncts, 1)
	require.Len(t, clause.Disjuncts[0], 1)
	assert.Equal(t, "A", clause.Disjuncts[0][0].Tag)

	require.Len(t, warnings, 1)
	assert.Equal(t, "X9", warnings[0].Label)
	assert.Equal(t, "X1 AND X9", warnings[0].Expression)
}

// The bare default expression whose single literal is labeled something else
// falls back to the step gate rather than guessing.
func TestCompile_BareLabelWithMismatchedLiteral(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1",
		Literals:   []ir.Literal{{Label: "X2", Tag: "B"}},
	}
	clause, warnings := Compile(spec, "StepFlag[1].Flag")

	ref, ok := clause.SingleLiteral()
	require.True(t, ok)
	assert.Equal(t, "StepFlag[1].Flag", ref.Tag)
	require.Len(t, warnings, 1)
	assert.Equal(t, "X1", warnings[0].Label)
}

// An OR disjunct whose labels all fail to resolve still occupies its slot,
// so branch structure is preserved even when a term compiles empty.
func TestCompile_EmptyDisjunctPreserved(t *testing.T) {
	spec := &ir.ConditionSpec{
		Expression: "X1 OR X9",
		Literals:   []ir.Literal{{Label: "X1", Tag: "A"}},
	}
	clause, warnings := Compile(spec, "fallback")

	require.Len(t, clause.Disjuncts, 2)
	assert.Len(t, clause.Disjuncts[0], 1)
	assert.Empty(t, clause.Disjuncts[1])
	assert.Len(t, warnings, 1)
}
