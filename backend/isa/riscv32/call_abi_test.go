package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func TestLowerCall_CCallUsesPrepareCallCFunctionAndCArgSlots(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	a, b := param(c), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeCallC, 0, a.ID(), b.ID())
	n.SetCallKind(ir.CallKindC)
	c.define(n)

	m.lowerCall(n)

	require.Equal(t, OpPrepareCallCFunction, m.seq[0].Op)
	require.Equal(t, uint32(2), m.seq[0].Misc)
	require.Equal(t, OpStoreToStackSlot, m.seq[1].Op)
	require.Equal(t, uint32(kCArgSlotCount), m.seq[1].Misc)
	require.Equal(t, OpStoreToStackSlot, m.seq[2].Op)
	require.Equal(t, uint32(kCArgSlotCount+1), m.seq[2].Misc)
	require.Equal(t, OpCallC, m.seq[3].Op)
}

func TestLowerCall_NonCCallClaimsStackAndStoresFromSlotZero(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	a, b := param(c), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeCall, 0, a.ID(), b.ID())
	n.SetCallKind(ir.CallKindJS)
	c.define(n)

	m.lowerCall(n)

	require.Equal(t, OpStackClaim, m.seq[0].Op)
	require.Equal(t, uint32(2*pointerWordSize), m.seq[0].Misc)
	require.Equal(t, OpStoreToStackSlot, m.seq[1].Op)
	require.Equal(t, uint32(0), m.seq[1].Misc)
	require.Equal(t, OpStoreToStackSlot, m.seq[2].Op)
	require.Equal(t, uint32(1), m.seq[2].Misc)
	require.Equal(t, OpCall, m.seq[3].Op)
}

func TestLowerCall_TailCallSkipsResultExtraction(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeTailCall, 0)
	n.SetCallKind(ir.CallKindJS)
	c.define(n)

	m.lowerCall(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpTailCall, m.seq[0].Op)
}

func TestLowerCallResults_ReverseSlotAccountsForWordSize(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeCall, 0)
	n.SetCallKind(ir.CallKindJS)
	c.define(n)
	wide := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	wide.SetRepresentation(ir.TypeF64)
	narrow := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	narrow.SetRepresentation(ir.TypeI32)
	n.SetProjection(0, wide)
	n.SetProjection(1, narrow)
	c.setProjection(n, 0, wide)
	c.setProjection(n, 1, narrow)

	m.lowerCall(n)

	require.Len(t, m.seq, 3) // Call + two Peeks.
	require.Equal(t, OpPeek, m.seq[1].Op)
	require.Equal(t, uint32(1), m.seq[1].Misc) // total(3) - offset(0) - words(2) = 1.
	require.Equal(t, OpPeek, m.seq[2].Op)
	require.Equal(t, uint32(0), m.seq[2].Misc) // total(3) - offset(2) - words(1) = 0.
}
