package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func TestLowerALUBinop_ImmediateFold(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left := param(c)
	right := constI32(c, 7)
	add := binop(c, ir.OpcodeInt32Add, left, right)

	m.LowerInstr(add)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAdd, m.seq[0].Op)
	require.Equal(t, OperandKindImmediate, m.seq[0].Inputs[1].Kind)
	require.Equal(t, "add v2, v1, #0\n", m.Format())
}

func TestLowerALUBinop_CommutedImmediate(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left := constI32(c, 7)
	right := param(c)
	add := binop(c, ir.OpcodeInt32Add, left, right)

	m.LowerInstr(add)

	require.Len(t, m.seq, 1)
	// The immediate always lands in the right-hand input slot, even though
	// it arrived on the left (spec.md §4.2.1's commute-and-fold case).
	require.Equal(t, OperandKindImmediate, m.seq[0].Inputs[1].Kind)
}

func TestLowerALUBinop_XorNegativeOneIsNor(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left := param(c)
	allOnes := constI32(c, -1)
	xor := binop(c, ir.OpcodeWord32Xor, left, allOnes)

	m.LowerInstr(xor)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpNor, m.seq[0].Op)
}

func TestLowerALUBinop_XorOrNegativeOneFusesNor(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	a, b := param(c), param(c)
	or := binop(c, ir.OpcodeWord32Or, a, b)
	allOnes := constI32(c, -1)
	xor := binop(c, ir.OpcodeWord32Xor, or, allOnes)

	m.LowerInstr(xor)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpNor, m.seq[0].Op)
	require.True(t, c.lowered[or])
}

func TestLowerMul_PowerOfTwoBecomesShift(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	eight := constI32(c, 8)
	mul := binop(c, ir.OpcodeInt32Mul, x, eight)

	m.LowerInstr(mul)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpShl32, m.seq[0].Op)
}

func TestLowerMul_PowerOfTwoMinusOneBecomesShiftAndSub(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	seven := constI32(c, 7) // 7 = 2^3 - 1
	mul := binop(c, ir.OpcodeInt32Mul, x, seven)

	m.LowerInstr(mul)

	require.Len(t, m.seq, 2)
	require.Equal(t, OpShl32, m.seq[0].Op)
	require.Equal(t, OpSub, m.seq[1].Op)
	// x resolves to the same v1 in both instructions rather than a fresh
	// vreg per use.
	require.Equal(t, "sll tmp, v1, #0\nsub v2, tmp, v1\n", m.Format())
}

func TestLowerMul_GeneralCaseIsRegisterMultiply(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	mul := binop(c, ir.OpcodeInt32Mul, x, y)

	m.LowerInstr(mul)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpMul, m.seq[0].Op)
}

func TestLowerDivMod_SignedDivDefinesSameAsFirst(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	div := binop(c, ir.OpcodeInt32Div, x, y)

	m.LowerInstr(div)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpDiv32, m.seq[0].Op)
	require.Equal(t, PolicySameAsFirstInput, m.seq[0].Outputs[0].Policy)
}

func TestLowerDivMod_UnsignedDivDefinesAsRegister(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	div := binop(c, ir.OpcodeUint32Div, x, y)

	m.LowerInstr(div)

	require.Equal(t, PolicyAnyRegister, m.seq[0].Outputs[0].Policy)
}

func TestLowerShift_MaskFoldsAway(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	mask := constI32(c, 0xffff) // width 16
	and := binop(c, ir.OpcodeWord32And, x, mask)
	amount := constI32(c, 16) // 16 + 16 >= 32
	shl := binop(c, ir.OpcodeWord32Shl, and, amount)

	m.LowerInstr(shl)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpShl32, m.seq[0].Op)
	require.True(t, c.lowered[and])
}

func TestLowerShift_SarOfShl16FoldsToSignExtendShort(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	k := constI32(c, 16)
	shl := binop(c, ir.OpcodeWord32Shl, x, k)
	sar := binop(c, ir.OpcodeWord32Sar, shl, k)

	m.LowerInstr(sar)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpSignExtendShort, m.seq[0].Op)
}

func TestLowerShift_SarOfShl24FoldsToSignExtendByte(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	k := constI32(c, 24)
	shl := binop(c, ir.OpcodeWord32Shl, x, k)
	sar := binop(c, ir.OpcodeWord32Sar, shl, k)

	m.LowerInstr(sar)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpSignExtendByte, m.seq[0].Op)
}

func TestLowerShift_PlainShiftWithImmediateAmount(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	amount := constI32(c, 3)
	shr := binop(c, ir.OpcodeWord32Shr, x, amount)

	m.LowerInstr(shr)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpShr32, m.seq[0].Op)
	require.Equal(t, OperandKindImmediate, m.seq[0].Inputs[1].Kind)
}

func TestLowerWithOverflow_NoContinuationWhenReachedDirectly(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x, y := param(c), param(c)
	add := binop(c, ir.OpcodeInt32AddWithOverflow, x, y)

	m.LowerInstr(add)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAddOvf, m.seq[0].Op)
	require.Equal(t, FlagsNone, m.seq[0].Flags.Kind)
}

func TestLowerInstr_Float64RoundIsUnimplemented(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	x := param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeFloat64RoundDown, 0, x.ID())
	c.define(n)

	recovered := require.CapturePanic(func() { m.LowerInstr(n) })

	require.NotEqual(t, "", recovered)
}
