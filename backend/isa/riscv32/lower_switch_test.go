package riscv32

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func newSwitch(c *mockCompiler, index *ir.Instruction, minValue int64, numCases int, defaultBlock ir.BlockID) *ir.Instruction {
	n := ir.NewInstruction(newVal(), ir.OpcodeSwitch, 0, index.ID())
	n.SetConstantValue(minValue)
	cases := make([]ir.BlockID, numCases+1)
	for i := 0; i < numCases; i++ {
		cases[i] = ir.BlockID(i + 10)
	}
	cases[numCases] = defaultBlock
	n.SetCaseBlocks(cases)
	return c.define(n)
}

func TestLowerSwitch_PicksJumpTableWhenEnabledAndCheap(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	m.flags.EnableSwitchJumpTable = true
	index := param(c)
	// 6 cases is the smallest count where table_cost (31) <= lookup_cost (32).
	sw := newSwitch(c, index, 0, 6, 99)

	m.lowerSwitch(sw)

	require.Equal(t, OpJump, m.seq[len(m.seq)-1].Op)
	found := false
	for _, inst := range m.seq {
		if inst.Op == OpJump && len(inst.Inputs) > 0 {
			found = true
		}
	}
	require.True(t, found, "expected an indexed jump among emitted instructions")
}

func TestLowerSwitch_FallsBackToDecisionTreeWhenDisabled(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	m.flags.EnableSwitchJumpTable = false
	index := param(c)
	sw := newSwitch(c, index, 0, 3, 99)

	m.lowerSwitch(sw)

	cmpCount := 0
	for _, inst := range m.seq {
		if inst.Op == OpCmp {
			cmpCount++
		}
	}
	require.Equal(t, 3, cmpCount)
}

func TestLowerSwitch_SubtractsMinValue(t *testing.T) {
	c := newMockCompiler()
	m := newTestMachine(c)
	m.flags.EnableSwitchJumpTable = false
	index := param(c)
	sw := newSwitch(c, index, 5, 2, 99)

	m.lowerSwitch(sw)

	require.Equal(t, OpSub, m.seq[0].Op)
}
