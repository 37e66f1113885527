package riscv32

import (
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

var atomicBinopOpcode = map[ir.Opcode]Opcode{
	ir.OpcodeWord32AtomicAdd: OpAtomicAdd,
	ir.OpcodeWord32AtomicSub: OpAtomicSub,
	ir.OpcodeWord32AtomicAnd: OpAtomicAnd,
	ir.OpcodeWord32AtomicOr:  OpAtomicOr,
	ir.OpcodeWord32AtomicXor: OpAtomicXor,
}

// lowerAtomic implements spec.md §4.2.5's word-32 atomics: the base+index
// addressing synthesizer followed by an AtomicWidth::Word32 opcode, with
// UniqueRegister inputs/outputs throughout and the scratch-temp counts the
// spec fixes per shape (four for the read-modify-write binops, three for
// exchange/compare-exchange, none for a bare load/store).
func (m *Machine) lowerAtomic(node *ir.Instruction) {
	switch node.Opcode() {
	case ir.OpcodeWord32AtomicLoad:
		m.lowerAtomicLoad(node)
	case ir.OpcodeWord32AtomicStore:
		m.lowerAtomicStore(node)
	case ir.OpcodeWord32AtomicExchange:
		m.lowerAtomicExchange(node)
	case ir.OpcodeWord32AtomicCompareExchange:
		m.lowerAtomicCompareExchange(node)
	default:
		m.lowerAtomicBinop(node)
	}
}

func (m *Machine) atomicAddress(node *ir.Instruction) AddressOperands {
	base, index := m.lookup(node.Arg()), m.lookup(node.Arg2())
	addr := m.synthesizeAddress(base, index, OpAtomicLoad)
	if addr.Extra != nil {
		m.emit(addr.Extra)
	}
	return addr
}

func (m *Machine) atomicAddressInputs(addr AddressOperands) []Operand {
	if addr.Mode == AddressingModeRootImm {
		return []Operand{addr.Index}
	}
	return []Operand{addr.Base, addr.Index}
}

func (m *Machine) lowerAtomicLoad(node *ir.Instruction) {
	addr := m.atomicAddress(node)
	m.emit(&Instruction{
		Op:      OpAtomicLoad,
		Mode:    addr.Mode,
		Atom:    AtomicWidthWord32,
		Outputs: []Operand{m.gen.UseUniqueRegister(node)},
		Inputs:  m.atomicAddressInputs(addr),
	})
}

func (m *Machine) lowerAtomicStore(node *ir.Instruction) {
	value := m.lookup(node.Arg3())
	addr := m.atomicAddress(node)
	m.emit(&Instruction{
		Op:     OpAtomicStore,
		Mode:   addr.Mode,
		Atom:   AtomicWidthWord32,
		Inputs: append(m.atomicAddressInputs(addr), m.gen.UseUniqueRegister(value)),
	})
}

func (m *Machine) lowerAtomicExchange(node *ir.Instruction) {
	value := m.lookup(node.Arg3())
	addr := m.atomicAddress(node)
	m.emit(&Instruction{
		Op:      OpAtomicExchange,
		Mode:    addr.Mode,
		Atom:    AtomicWidthWord32,
		Outputs: []Operand{m.gen.UseUniqueRegister(node)},
		Inputs:  append(m.atomicAddressInputs(addr), m.gen.UseUniqueRegister(value)),
		Temps:   []Operand{m.gen.TempRegister(), m.gen.TempRegister(), m.gen.TempRegister()},
	})
}

func (m *Machine) lowerAtomicCompareExchange(node *ir.Instruction) {
	expected, replacement := m.lookup(node.Arg3()), m.lookup(node.Arg())
	addr := m.atomicAddress(node)
	m.emit(&Instruction{
		Op:      OpAtomicCompareExchange,
		Mode:    addr.Mode,
		Atom:    AtomicWidthWord32,
		Outputs: []Operand{m.gen.UseUniqueRegister(node)},
		Inputs:  append(m.atomicAddressInputs(addr), m.gen.UseUniqueRegister(expected), m.gen.UseUniqueRegister(replacement)),
		Temps:   []Operand{m.gen.TempRegister(), m.gen.TempRegister(), m.gen.TempRegister()},
	})
}

func (m *Machine) lowerAtomicBinop(node *ir.Instruction) {
	value := m.lookup(node.Arg3())
	addr := m.atomicAddress(node)
	m.emit(&Instruction{
		Op:      atomicBinopOpcode[node.Opcode()],
		Mode:    addr.Mode,
		Atom:    AtomicWidthWord32,
		Outputs: []Operand{m.gen.UseUniqueRegister(node)},
		Inputs:  append(m.atomicAddressInputs(addr), m.gen.UseUniqueRegister(value)),
		Temps:   []Operand{m.gen.TempRegister(), m.gen.TempRegister(), m.gen.TempRegister(), m.gen.TempRegister()},
	})
}

// pairRegs are the fixed argument registers spec.md §4.2.5's pair atomics
// pin their operands to: a0/a1 for the loaded value's low/high halves,
// a1/a2 for the stored value's low/high halves, t0 for scratch.
var (
	pairRegA0 = regalloc.RealReg(1)
	pairRegA1 = regalloc.RealReg(2)
	pairRegA2 = regalloc.RealReg(3)
	pairRegT0 = regalloc.RealReg(18)
)

// lowerPairAtomic implements the PairLoad/PairStore subset of spec.md
// §4.2.5's pair atomics; every other pair-atomic opcode is declared
// unimplemented at the dispatcher.
func (m *Machine) lowerPairAtomic(node *ir.Instruction) {
	base, index := m.lookup(node.Arg()), m.lookup(node.Arg2())
	addr := m.synthesizeAddress(base, index, OpPairAtomicLoad)
	if addr.Extra != nil {
		m.emit(addr.Extra)
	}
	inputs := m.atomicAddressInputs(addr)

	switch node.Opcode() {
	case ir.OpcodeWord32PairAtomicLoad:
		low, lowOK := m.compiler.FindProjection(node, 0)
		high, highOK := m.compiler.FindProjection(node, 1)
		outputs := make([]Operand, 0, 2)
		if lowOK {
			outputs = append(outputs, m.gen.DefineAsFixed(low, pairRegA0))
		}
		if highOK {
			outputs = append(outputs, m.gen.DefineAsFixed(high, pairRegA1))
		}
		m.emit(&Instruction{
			Op:      OpPairAtomicLoad,
			Mode:    addr.Mode,
			Outputs: outputs,
			Inputs:  inputs,
			Temps:   []Operand{FixedOperand(m.compiler.AllocateVReg(regalloc.RegTypeInt), pairRegT0)},
		})
	case ir.OpcodeWord32PairAtomicStore:
		args := node.Args()
		lowValue, highValue := m.lookup(args[2]), m.lookup(args[3])
		inputs = append(inputs, m.gen.UseFixed(lowValue, pairRegA1), m.gen.UseFixed(highValue, pairRegA2))
		m.emit(&Instruction{
			Op:     OpPairAtomicStore,
			Mode:   addr.Mode,
			Inputs: inputs,
			Temps:  []Operand{FixedOperand(m.compiler.AllocateVReg(regalloc.RegTypeInt), pairRegT0)},
		})
	}
}
