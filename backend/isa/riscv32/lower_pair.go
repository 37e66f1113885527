package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

var pairArithOpcode = map[ir.Opcode]Opcode{
	ir.OpcodeInt32PairAdd: OpAddPair,
	ir.OpcodeInt32PairSub: OpSubPair,
	ir.OpcodeInt32PairMul: OpMulPair,
	ir.OpcodeInt32PairShl: OpShlPair,
	ir.OpcodeInt32PairShr: OpShrPair,
	ir.OpcodeInt32PairSar: OpSarPair,
}

// pairLowOpcode is the 32-bit, single-register instruction each pair op
// degenerates to when only its low-half projection is live (spec.md §4.2.6).
var pairLowOpcode = map[ir.Opcode]Opcode{
	ir.OpcodeInt32PairAdd: OpAdd,
	ir.OpcodeInt32PairSub: OpSub,
	ir.OpcodeInt32PairMul: OpMul,
	ir.OpcodeInt32PairShl: OpShl32,
	ir.OpcodeInt32PairShr: OpShr32,
	ir.OpcodeInt32PairSar: OpSar32,
}

var shiftPairOp = map[ir.Opcode]bool{
	ir.OpcodeInt32PairShl: true,
	ir.OpcodeInt32PairShr: true,
	ir.OpcodeInt32PairSar: true,
}

// lowerPairArithmetic implements spec.md §4.2.6: Int32Pair{Add,Sub,Mul,Shl,
// Shr,Sar} lowered to dedicated pair opcodes consuming UniqueRegister half
// pairs, degenerating to the plain 32-bit instruction when the high-half
// projection is never consumed.
func (m *Machine) lowerPairArithmetic(node *ir.Instruction) {
	args := node.Args()
	lowA, highA := m.lookup(args[0]), m.lookup(args[1])

	high, highUsed := m.compiler.FindProjection(node, 1)
	if !highUsed || !m.compiler.IsDefined(high) {
		m.emitPairLowOnly(node, args, lowA)
		return
	}

	var inputs []Operand
	if shiftPairOp[node.Opcode()] {
		shiftAmount := m.lookup(args[2])
		inputs = []Operand{m.gen.UseUniqueRegister(lowA), m.gen.UseUniqueRegister(highA), m.gen.UseRegister(shiftAmount)}
	} else {
		lowB, highB := m.lookup(args[2]), m.lookup(args[3])
		inputs = []Operand{
			m.gen.UseUniqueRegister(lowA), m.gen.UseUniqueRegister(highA),
			m.gen.UseUniqueRegister(lowB), m.gen.UseUniqueRegister(highB),
		}
	}

	var outputs []Operand
	if low, lowUsed := m.compiler.FindProjection(node, 0); lowUsed {
		outputs = append(outputs, m.gen.DefineAsRegister(low))
	}
	outputs = append(outputs, m.gen.DefineAsRegister(high))

	m.emit(&Instruction{Op: pairArithOpcode[node.Opcode()], Outputs: outputs, Inputs: inputs})
}

// emitPairLowOnly emits the plain 32-bit instruction this pair op reduces
// to when its high-half result is dead.
func (m *Machine) emitPairLowOnly(node *ir.Instruction, args []ir.Value, lowA *ir.Instruction) {
	var inputs []Operand
	if shiftPairOp[node.Opcode()] {
		shiftAmount := m.lookup(args[2])
		inputs = []Operand{m.gen.UseRegister(lowA), m.gen.UseRegister(shiftAmount)}
	} else {
		lowB := m.lookup(args[2])
		inputs = []Operand{m.gen.UseRegister(lowA), m.gen.UseRegister(lowB)}
	}
	low, lowUsed := m.compiler.FindProjection(node, 0)
	target := node
	if lowUsed {
		target = low
	}
	m.emit(&Instruction{Op: pairLowOpcode[node.Opcode()], Outputs: []Operand{m.gen.DefineAsRegister(target)}, Inputs: inputs})
}
