package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

// kCArgSlotCount is the number of stack slots this target's C ABI reserves
// ahead of the outgoing argument area (register-save/shadow space), mirrored
// from spec.md §4.2.8's argument-preparation rule.
const kCArgSlotCount = 4

// pointerWordSize is this target's native pointer/word size in bytes.
const pointerWordSize = 4

// lowerCall implements C7 (spec.md §4.2.8): argument preparation differs
// between the C calling convention and this target's own (JS/tail) calling
// convention, but result extraction is shared.
func (m *Machine) lowerCall(node *ir.Instruction) {
	argVals := node.Args()

	if node.CallKind() == ir.CallKindC {
		m.emit(&Instruction{Op: OpPrepareCallCFunction, Misc: uint32(len(argVals))})
		for i, v := range argVals {
			arg := m.lookup(v)
			m.emit(&Instruction{
				Op:     OpStoreToStackSlot,
				Misc:   uint32(kCArgSlotCount + i),
				Inputs: []Operand{m.gen.UseRegister(arg)},
			})
		}
	} else {
		if len(argVals) > 0 {
			m.emit(&Instruction{Op: OpStackClaim, Misc: uint32(len(argVals) * pointerWordSize)})
		}
		for i, v := range argVals {
			arg := m.lookup(v)
			m.emit(&Instruction{
				Op:     OpStoreToStackSlot,
				Misc:   uint32(i),
				Inputs: []Operand{m.gen.UseRegister(arg)},
			})
		}
	}

	op := OpCall
	switch node.Opcode() {
	case ir.OpcodeCallC:
		op = OpCallC
	case ir.OpcodeTailCall:
		op = OpTailCall
	}
	callInst := &Instruction{Op: op}
	if node.ExternalName() != "" {
		callInst.Mode = AddressingModeRootImm
	}
	m.emit(callInst)

	if node.Opcode() == ir.OpcodeTailCall {
		return
	}
	m.lowerCallResults(node)
}

// lowerCallResults extracts each of node's result projections via Peek at a
// reverse-slot index, stepping by the result's size in pointer words, and
// tags float results so the register allocator routes them through the FP
// file (spec.md §4.2.8's result-extraction rule).
func (m *Machine) lowerCallResults(node *ir.Instruction) {
	n := node.Returns()

	words := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		if proj, ok := m.compiler.FindProjection(node, i); ok {
			words[i] = resultWordSize(proj.Representation())
		} else {
			words[i] = 1
		}
		total += words[i]
	}

	offset := 0
	for i := 0; i < n; i++ {
		proj, ok := m.compiler.FindProjection(node, i)
		if !ok {
			offset += words[i]
			continue
		}
		reverseSlot := total - offset - words[i]
		m.emit(&Instruction{
			Op:      OpPeek,
			Misc:    uint32(reverseSlot),
			Outputs: []Operand{m.gen.DefineAsRegister(proj)},
		})
		offset += words[i]
	}
}

// resultWordSize is a result representation's footprint in pointer words.
func resultWordSize(rep ir.Type) int {
	switch rep {
	case ir.TypeF64, ir.TypeI64:
		return 2
	case ir.TypeV128:
		return 4
	default:
		return 1
	}
}
