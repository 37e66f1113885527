package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func TestLowerSimdBinop_TagsMiscWithTableEntry(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left, right := param(c), param(c)
	n := binop(c, ir.OpcodeI32x4Add, left, right)

	m.lowerSimdBinop(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpVectorBinop, m.seq[0].Op)
	require.Equal(t, simdOpI32x4Add, m.seq[0].Misc)
}

func TestLowerExtMul_LowVariantSkipsSlidedown(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left, right := param(c), param(c)
	n := binop(c, ir.OpcodeI16x8ExtMulLowI8x16S, left, right)

	m.lowerExtMul(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpVwmul, m.seq[0].Op)
}

func TestLowerExtMul_HighVariantSlidesDownFirst(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left, right := param(c), param(c)
	n := binop(c, ir.OpcodeI16x8ExtMulHighI8x16S, left, right)

	m.lowerExtMul(n)

	require.Len(t, m.seq, 3)
	require.Equal(t, OpVslidedown, m.seq[0].Op)
	require.Equal(t, OpVslidedown, m.seq[1].Op)
	require.Equal(t, OpVwmul, m.seq[2].Op)
}

func TestLowerShuffle_AlwaysEmitsFallbackShuffleOpcode(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	left, right := param(c), param(c)
	n := binop(c, ir.OpcodeI8x16Shuffle, left, right)
	var mask [16]byte
	for i := range mask {
		mask[i] = byte(15 - i)
	}
	n.SetShuffleMask(mask)

	m.lowerShuffle(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpI8x16Shuffle, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 6)
}

func TestLowerS128Const_AllZeroGetsDedicatedOpcode(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeS128Const, 0)
	c.define(n)

	m.lowerS128Const(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpS128Zero, m.seq[0].Op)
}

func TestLowerS128Const_AllOnesGetsDedicatedOpcode(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeS128Const, 0)
	var mask [16]byte
	for i := range mask {
		mask[i] = 0xff
	}
	n.SetShuffleMask(mask)
	c.define(n)

	m.lowerS128Const(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpS128AllOnes, m.seq[0].Op)
}

func TestLowerS128Const_MixedBytesPacksFourImmediates(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeS128Const, 0)
	var mask [16]byte
	mask[0] = 0x01
	n.SetShuffleMask(mask)
	c.define(n)

	m.lowerS128Const(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpS128Const, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 4)
}

func TestLowerSimdLoadStore_StoreLaneAppendsValueOperand(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, value := param(c), constI32(c, 0), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeS128StoreLane, 0, base.ID(), index.ID(), value.ID())
	n.SetRepresentation(ir.TypeI32)
	n.SetLaneIndex(2)
	c.define(n)

	m.lowerSimdLoadStore(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpS128StoreLane, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 3)
}

func TestLowerSimdLoadStore_LoadLaneMergesExistingVector(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, existing := param(c), constI32(c, 0), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeS128LoadLane, 0, base.ID(), index.ID(), existing.ID())
	n.SetRepresentation(ir.TypeI32)
	n.SetLaneIndex(1)
	c.define(n)

	m.lowerSimdLoadStore(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpS128LoadLane, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 3)
	require.Len(t, m.seq[0].Outputs, 1)
}
