package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func TestVisitWordCompareZero_NegationLoopFoldsChain(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	cmp := binop(c, ir.OpcodeInt32LessThan, x, y)
	zero1 := constI32(c, 0)
	eq1 := binop(c, ir.OpcodeWord32Equal, cmp, zero1) // !(x < y)
	zero2 := constI32(c, 0)
	eq2 := binop(c, ir.OpcodeWord32Equal, eq1, zero2) // !!(x < y)

	cont := SetContinuation(CondNotEqual, uint32(eq2.ID()))
	m.visitWordCompareZero(eq2, eq2, cont)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpCmp, m.seq[0].Op)
	// Two negations cancel: the original slt condition survives unchanged.
	require.Equal(t, CondSignedLessThan, m.seq[0].Flags.Condition)
	require.True(t, c.lowered[eq1])
}

func TestVisitWordCompareZero_SingleNegationFlipsCondition(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	cmp := binop(c, ir.OpcodeWord32Equal, x, y)
	zero := constI32(c, 0)
	notEq := binop(c, ir.OpcodeWord32Equal, cmp, zero)

	cont := SetContinuation(CondNotEqual, uint32(notEq.ID()))
	m.visitWordCompareZero(notEq, notEq, cont)

	require.Len(t, m.seq, 1)
	require.Equal(t, CondNotEqual, m.seq[0].Flags.Condition)
}

func TestVisitWordCompareZero_Word32AndFusesTst(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	mask := constI32(c, 4)
	and := binop(c, ir.OpcodeWord32And, x, mask)

	cont := BranchContinuation(CondNotEqual, 1, 2)
	m.visitWordCompareZero(and, and, cont)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpTst, m.seq[0].Op)
	require.Equal(t, OperandKindImmediate, m.seq[0].Inputs[1].Kind)
}

func TestVisitWordCompareZero_CompareOperandNormalization(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	five := constI32(c, 5)
	x := param(c)
	lt := binop(c, ir.OpcodeInt32LessThan, five, x) // 5 < x

	cont := BranchContinuation(CondSignedLessThan, 1, 2)
	m.visitWordCompareZero(lt, lt, cont)

	require.Len(t, m.seq, 1)
	// Swapped to keep the immediate on the right: x > 5.
	require.Equal(t, CondSignedGreaterThan, m.seq[0].Flags.Condition)
	require.Equal(t, OperandKindImmediate, m.seq[0].Inputs[1].Kind)
}

func TestVisitWordCompareZero_StackPointerGreaterThan(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	limit := param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeStackPointerGreaterThan, 0, limit.ID())
	c.define(n)

	cont := BranchContinuation(CondEqual, 1, 2)
	m.visitWordCompareZero(n, n, cont)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpCmpStackPointer, m.seq[0].Op)
	require.Equal(t, CondStackPointerGreaterThan, m.seq[0].Flags.Condition)
}

func TestVisitWordCompareZero_FallsBackToCmpZero(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)

	cont := SetContinuation(CondNotEqual, uint32(x.ID()))
	m.visitWordCompareZero(x, x, cont)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpCmpZero, m.seq[0].Op)
}

func TestTryFuseOverflowProjection(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	a, b := param(c), param(c)
	addOvf := binop(c, ir.OpcodeInt32AddWithOverflow, a, b)
	proj1 := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, addOvf.ID())
	proj1.SetLaneIndex(1)
	c.setProjection(addOvf, 1, proj1)
	c.define(proj1)

	cont := BranchContinuation(CondNotEqual, 1, 2)
	ok := m.tryFuseOverflowProjection(proj1, cont)

	require.True(t, ok)
	require.Len(t, m.seq, 1)
	require.Equal(t, OpAddOvf, m.seq[0].Op)
	require.Equal(t, CondOverflow, m.seq[0].Flags.Condition)
}
