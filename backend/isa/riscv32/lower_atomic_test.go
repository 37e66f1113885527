package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func atomicNode(c *mockCompiler, op ir.Opcode, base, index, value *ir.Instruction) *ir.Instruction {
	n := ir.NewInstruction(newVal(), op, 0, base.ID(), index.ID(), value.ID())
	return c.define(n)
}

func TestLowerAtomicLoad_NoScratchTemps(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index := param(c), constI32(c, 4)
	n := ir.NewInstruction(newVal(), ir.OpcodeWord32AtomicLoad, 0, base.ID(), index.ID())
	c.define(n)

	m.lowerAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAtomicLoad, m.seq[0].Op)
	require.Equal(t, AtomicWidthWord32, m.seq[0].Atom)
	require.Len(t, m.seq[0].Temps, 0)
}

func TestLowerAtomicBinop_FourScratchTemps(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, value := param(c), constI32(c, 0), param(c)
	n := atomicNode(c, ir.OpcodeWord32AtomicAdd, base, index, value)

	m.lowerAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAtomicAdd, m.seq[0].Op)
	require.Len(t, m.seq[0].Temps, 4)
}

func TestLowerAtomicExchange_ThreeScratchTemps(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, value := param(c), constI32(c, 0), param(c)
	n := atomicNode(c, ir.OpcodeWord32AtomicExchange, base, index, value)

	m.lowerAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAtomicExchange, m.seq[0].Op)
	require.Len(t, m.seq[0].Temps, 3)
}

func TestLowerAtomicCompareExchange_ThreeScratchTemps(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, value := param(c), constI32(c, 0), param(c)
	n := atomicNode(c, ir.OpcodeWord32AtomicCompareExchange, base, index, value)

	m.lowerAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAtomicCompareExchange, m.seq[0].Op)
	require.Len(t, m.seq[0].Temps, 3)
}

func TestLowerPairAtomicLoad_DefinesBothHalvesAtFixedRegs(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index := param(c), constI32(c, 0)
	n := ir.NewInstruction(newVal(), ir.OpcodeWord32PairAtomicLoad, 0, base.ID(), index.ID())
	c.define(n)
	low := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	high := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	c.setProjection(n, 0, low)
	c.setProjection(n, 1, high)

	m.lowerPairAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpPairAtomicLoad, m.seq[0].Op)
	require.Len(t, m.seq[0].Outputs, 2)
	require.Equal(t, pairRegA0, m.seq[0].Outputs[0].FixedReg)
	require.Equal(t, pairRegA1, m.seq[0].Outputs[1].FixedReg)
}

func TestLowerPairAtomicStore_UsesA1A2ForLowHigh(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	base, index, low, high := param(c), constI32(c, 0), param(c), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeWord32PairAtomicStore, 0, base.ID(), index.ID(), low.ID(), high.ID())
	c.define(n)

	m.lowerPairAtomic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpPairAtomicStore, m.seq[0].Op)
	inputs := m.seq[0].Inputs
	require.Equal(t, pairRegA1, inputs[len(inputs)-2].FixedReg)
	require.Equal(t, pairRegA2, inputs[len(inputs)-1].FixedReg)
}
