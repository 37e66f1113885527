package riscv32

import (
	"github.com/riscv-collab/riscv32isel/backend"
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// immediateClass names which row of the immediate-range table (spec.md
// §4.1) an opcode falls under.
type immediateClass uint8

const (
	immediateClassDefault immediateClass = iota // signed 12-bit
	immediateClassShift                         // unsigned 5-bit
	immediateClassALU                           // signed 12-bit (named separately from default for clarity at call sites)
	immediateClassLoadStore                     // signed 32-bit
)

// immediateRangeOf reports op's immediate class, per spec.md §4.1's table.
func immediateRangeOf(op Opcode) immediateClass {
	switch op {
	case OpShl32, OpShr32, OpSar32:
		return immediateClassShift
	case OpAdd, OpAnd, OpOr, OpXor, OpTst:
		return immediateClassALU
	case OpLb, OpLbu, OpSb, OpLh, OpLhu, OpSh, OpLw, OpSw, OpLoadFloat, OpStoreFloat, OpLoadDouble, OpStoreDouble:
		return immediateClassLoadStore
	default:
		return immediateClassDefault
	}
}

// fitsImmediate reports whether v fits the immediate field of op.
func fitsImmediate(op Opcode, v int64) bool {
	switch immediateRangeOf(op) {
	case immediateClassShift:
		return v >= 0 && v <= 31
	case immediateClassLoadStore:
		return v >= -(1<<31) && v <= (1<<31)-1
	default: // ALU / default: signed 12-bit.
		return v >= -2048 && v <= 2047
	}
}

// OperandGenerator wraps the external Compiler to produce Operands for a
// single instruction's worth of inputs/outputs/temps (C1). Most operands in
// this package are built through its methods; machine.go (constants, moves,
// extends) and lower_atomic.go (fixed pair-atomic registers) call the
// Operand constructors in instr.go directly.
type OperandGenerator struct {
	c     backend.Compiler
	vregs map[ir.Value]regalloc.VReg
}

// NewOperandGenerator constructs an OperandGenerator bound to c.
func NewOperandGenerator(c backend.Compiler) *OperandGenerator {
	return &OperandGenerator{c: c, vregs: map[ir.Value]regalloc.VReg{}}
}

// Reset clears the per-function vreg cache, so it may be reused across the
// scoped-arena's next compilation without carrying over stale value ids.
func (g *OperandGenerator) Reset() {
	for k := range g.vregs {
		delete(g.vregs, k)
	}
}

// vregFor returns the VReg standing in for node's value, allocating one on
// first reference and memoizing it by node's SSA value so that every
// operand built for the same definition (one DefineAsRegister call plus
// however many later UseRegister calls) resolves to the same VReg rather
// than a fresh one per call site.
func (g *OperandGenerator) vregFor(node *ir.Instruction, rt regalloc.RegType) regalloc.VReg {
	v := node.ID()
	if vr, ok := g.vregs[v]; ok {
		return vr
	}
	vr := g.c.AllocateVReg(rt)
	g.vregs[v] = vr
	return vr
}

// UseRegister requires node's value in any register.
func (g *OperandGenerator) UseRegister(node *ir.Instruction) Operand {
	return UnallocatedOperand(PolicyAnyRegister, g.vregFor(node, regTypeOf(node)))
}

// UseUniqueRegister requires node's value in a register the allocator must
// not coalesce with any other live value (write-barrier and atomic-retry
// operands, per spec.md §4.2's invariant #4).
func (g *OperandGenerator) UseUniqueRegister(node *ir.Instruction) Operand {
	return UnallocatedOperand(PolicyUniqueRegister, g.vregFor(node, regTypeOf(node)))
}

// UseFixed requires node's value pinned to real register r.
func (g *OperandGenerator) UseFixed(node *ir.Instruction, r regalloc.RealReg) Operand {
	return FixedOperand(g.vregFor(node, regTypeOf(node)), r)
}

// UseRegisterOrImmediateZero materializes the architectural zero register
// when node is the integer constant 0 or the all-zero-bits float constant,
// otherwise falls back to UseRegister (spec.md §4.1).
func (g *OperandGenerator) UseRegisterOrImmediateZero(node *ir.Instruction) Operand {
	if isZeroConstant(node) {
		return UnallocatedOperand(PolicyRegisterOrImmediateZero, g.vregFor(node, regTypeOf(node)))
	}
	return g.UseRegister(node)
}

func isZeroConstant(node *ir.Instruction) bool {
	switch node.Opcode() {
	case ir.OpcodeInt32Constant, ir.OpcodeInt64Constant:
		return node.ConstantValue() == 0
	case ir.OpcodeFloat32Constant, ir.OpcodeFloat64Constant:
		return node.ConstantFloat() == 0 && !isNegativeZero(node.ConstantFloat())
	default:
		return false
	}
}

func isNegativeZero(f float64) bool {
	return f == 0 && (1/f) < 0
}

// UseImmediate unconditionally treats v as an immediate, interning it into
// pool and returning an Immediate operand. Used at call sites that have
// already range-checked v (e.g. via UseOperand).
func (g *OperandGenerator) UseImmediate(pool *ConstantPool, v int64) Operand {
	return ImmediateOperand(pool.InternInt(v))
}

// UseOperand returns an Immediate operand if node is an integer constant
// whose value fits op's immediate field, else a register operand — spec.md
// §4.1's central "does this fold to an immediate" decision point.
func (g *OperandGenerator) UseOperand(pool *ConstantPool, node *ir.Instruction, op Opcode) Operand {
	if isIntConstant(node) && fitsImmediate(op, node.ConstantValue()) {
		return g.UseImmediate(pool, node.ConstantValue())
	}
	return g.UseRegister(node)
}

func isIntConstant(node *ir.Instruction) bool {
	return node.Opcode() == ir.OpcodeInt32Constant || node.Opcode() == ir.OpcodeInt64Constant
}

// DefineAsRegister returns an output register operand for node, using the
// VReg vregFor memoizes for node's value.
func (g *OperandGenerator) DefineAsRegister(node *ir.Instruction) Operand {
	return UnallocatedOperand(PolicyAnyRegister, g.vregFor(node, regTypeOf(node)))
}

// DefineSameAsFirst ties node's output to the instruction's first input
// register (2-address-style RISC-V pseudo-instructions such as the
// div/mod family that alias the dividend, per spec.md §4.2.1).
func (g *OperandGenerator) DefineSameAsFirst(node *ir.Instruction) Operand {
	return UnallocatedOperand(PolicySameAsFirstInput, g.vregFor(node, regTypeOf(node)))
}

// DefineAsFixed pins node's output to real register r.
func (g *OperandGenerator) DefineAsFixed(node *ir.Instruction, r regalloc.RealReg) Operand {
	return FixedOperand(g.vregFor(node, regTypeOf(node)), r)
}

// NoOutput returns an empty output list, for instructions with no result
// value (pure side-effecting stores, branches, calls with no return slot).
func (g *OperandGenerator) NoOutput() []Operand { return nil }

// TempRegister allocates an integer scratch register.
func (g *OperandGenerator) TempRegister() Operand {
	return TempOperand(TempKindInt)
}

// TempImmediate returns a Temp-less Immediate operand for a scratch
// constant (e.g. a materialized mask or shift amount) not attached to any
// IR node.
func (g *OperandGenerator) TempImmediate(pool *ConstantPool, v int64) Operand {
	return ImmediateOperand(pool.InternInt(v))
}

// TempSimd128Register allocates a 128-bit vector scratch register.
func (g *OperandGenerator) TempSimd128Register() Operand {
	return TempOperand(TempKindSimd128)
}

// TempFpRegister allocates a floating point scratch register. v is not
// recorded: the returned Temp operand carries no pre-loaded value.
func (g *OperandGenerator) TempFpRegister(v float64) Operand {
	return TempOperand(TempKindFloat)
}

// regTypeOf derives the register class an IR node's value needs, from its
// representation payload when the opcode carries one, falling back to
// inferring integer-vs-float from the opcode family otherwise.
func regTypeOf(node *ir.Instruction) regalloc.RegType {
	switch node.Opcode() {
	case ir.OpcodeFloat32Constant, ir.OpcodeFloat64Constant,
		ir.OpcodeFloat32Add, ir.OpcodeFloat32Sub, ir.OpcodeFloat32Mul, ir.OpcodeFloat32Div,
		ir.OpcodeFloat64Add, ir.OpcodeFloat64Sub, ir.OpcodeFloat64Mul, ir.OpcodeFloat64Div,
		ir.OpcodeFloat64RoundDown, ir.OpcodeFloat64RoundUp, ir.OpcodeFloat64RoundTruncate, ir.OpcodeFloat64RoundTiesEven:
		return regalloc.RegTypeFloat
	case ir.OpcodeS128Const, ir.OpcodeI8x16Shuffle, ir.OpcodeI8x16Swizzle,
		ir.OpcodeF32x4Add, ir.OpcodeF64x2Add, ir.OpcodeI32x4Add, ir.OpcodeI32x4Sub, ir.OpcodeI32x4Mul:
		return regalloc.RegTypeFloat
	case ir.OpcodeLoad, ir.OpcodeProjection:
		if node.Representation().IsFloat() || node.Representation() == ir.TypeV128 {
			return regalloc.RegTypeFloat
		}
		return regalloc.RegTypeInt
	default:
		return regalloc.RegTypeInt
	}
}
