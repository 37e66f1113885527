package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func pairArithNode(c *mockCompiler, op ir.Opcode, lowA, highA, lowB, highB *ir.Instruction) *ir.Instruction {
	n := ir.NewInstruction(newVal(), op, 0, lowA.ID(), highA.ID(), lowB.ID(), highB.ID())
	return c.define(n)
}

func TestLowerPairArithmetic_BothHalvesLiveEmitsPairOp(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	lowA, highA, lowB, highB := param(c), param(c), param(c), param(c)
	n := pairArithNode(c, ir.OpcodeInt32PairAdd, lowA, highA, lowB, highB)
	low := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	high := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	c.setProjection(n, 0, low)
	c.setProjection(n, 1, high)
	c.defined[high] = true

	m.lowerPairArithmetic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAddPair, m.seq[0].Op)
	require.Len(t, m.seq[0].Outputs, 2)
	require.Len(t, m.seq[0].Inputs, 4)
}

func TestLowerPairArithmetic_DeadHighDegeneratesToPlainOp(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	lowA, highA, lowB, highB := param(c), param(c), param(c), param(c)
	n := pairArithNode(c, ir.OpcodeInt32PairAdd, lowA, highA, lowB, highB)

	m.lowerPairArithmetic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpAdd, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 2)
}

func TestLowerPairArithmetic_ShiftUsesSingleAmountRegister(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	lowA, highA, amount := param(c), param(c), param(c)
	n := ir.NewInstruction(newVal(), ir.OpcodeInt32PairShl, 0, lowA.ID(), highA.ID(), amount.ID())
	c.define(n)
	low := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	high := ir.NewInstruction(newVal(), ir.OpcodeProjection, 0, n.ID())
	c.setProjection(n, 0, low)
	c.setProjection(n, 1, high)
	c.defined[high] = true

	m.lowerPairArithmetic(n)

	require.Len(t, m.seq, 1)
	require.Equal(t, OpShlPair, m.seq[0].Op)
	require.Len(t, m.seq[0].Inputs, 3)
}
