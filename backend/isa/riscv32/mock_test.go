package riscv32

import (
	"github.com/riscv-collab/riscv32isel/backend"
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// mockCompiler is a minimal backend.Compiler stand-in for exercising one
// Machine lowering rule in isolation, in tetratelabs/wazero's own style of
// hand-rolled test doubles over a mocking framework.
type mockCompiler struct {
	defs        map[ir.Value]*ir.Instruction
	projections map[ir.Value]map[int]*ir.Instruction
	lowered     map[*ir.Instruction]bool
	defined     map[*ir.Instruction]bool
	nextVReg    uint32
	coverAll    bool
}

func newMockCompiler() *mockCompiler {
	return &mockCompiler{
		defs:        make(map[ir.Value]*ir.Instruction),
		projections: make(map[ir.Value]map[int]*ir.Instruction),
		lowered:     make(map[*ir.Instruction]bool),
		defined:     make(map[*ir.Instruction]bool),
		coverAll:    true,
	}
}

func (c *mockCompiler) define(n *ir.Instruction) *ir.Instruction {
	c.defs[n.ID()] = n
	return n
}

func (c *mockCompiler) setProjection(parent *ir.Instruction, index int, proj *ir.Instruction) {
	if c.projections[parent.ID()] == nil {
		c.projections[parent.ID()] = make(map[int]*ir.Instruction)
	}
	c.projections[parent.ID()][index] = proj
	c.defs[proj.ID()] = proj
}

func (c *mockCompiler) ValueDefinition(v ir.Value) backend.SSAValueDefinition {
	return backend.SSAValueDefinition{V: v, Instr: c.defs[v]}
}

func (c *mockCompiler) CanCover(user, value *ir.Instruction) bool {
	return c.coverAll
}

func (c *mockCompiler) MarkLowered(node *ir.Instruction) {
	c.lowered[node] = true
}

func (c *mockCompiler) IsDefined(node *ir.Instruction) bool {
	if node == nil {
		return false
	}
	return c.defined[node]
}

func (c *mockCompiler) AllocateVReg(typ regalloc.RegType) regalloc.VReg {
	c.nextVReg++
	return regalloc.VReg(c.nextVReg).SetRegType(typ)
}

func (c *mockCompiler) FindProjection(node *ir.Instruction, index int) (*ir.Instruction, bool) {
	m, ok := c.projections[node.ID()]
	if !ok {
		return nil, false
	}
	p, ok := m[index]
	return p, ok
}

var _ backend.Compiler = (*mockCompiler)(nil)

// newTestMachine builds a Machine wired to a fresh mockCompiler, ready for
// LowerInstr calls in isolation.
func newTestMachine(c *mockCompiler) *Machine {
	m := NewMachine(DefaultFlags(), nil)
	m.SetCompiler(c)
	return m
}

var nextTestValue ir.Value = 1

func newVal() ir.Value {
	v := nextTestValue
	nextTestValue++
	return v
}

func constI32(c *mockCompiler, v int64) *ir.Instruction {
	n := ir.NewInstruction(newVal(), ir.OpcodeInt32Constant, 0)
	n.SetConstantValue(v)
	return c.define(n)
}

func param(c *mockCompiler) *ir.Instruction {
	n := ir.NewInstruction(newVal(), ir.OpcodeLoad, 0)
	n.SetRepresentation(ir.TypeI32)
	return c.define(n)
}

func binop(c *mockCompiler, op ir.Opcode, left, right *ir.Instruction) *ir.Instruction {
	n := ir.NewInstruction(newVal(), op, 0, left.ID(), right.ID())
	return c.define(n)
}
