package riscv32

import (
	"github.com/riscv-collab/riscv32isel/ir"
)

// RootOffsetResolver resolves an external-reference's symbolic name to its
// known, constant offset from the host VM's root register, if one is
// currently known (spec.md §1's "root-register base address and external-
// reference tables of the host VM" — an external collaborator, consumed
// only through this one narrow query).
type RootOffsetResolver interface {
	ResolveRootOffset(name string) (offset int32, ok bool)
}

// loadStoreOpcode is the representation -> opcode table of spec.md §4.2.2,
// picking the signed or unsigned load form and substituting the unaligned
// variant when unaligned is true. It panics via unreachableRepresentation
// for the representations this target rejects outright.
func loadStoreOpcode(node *ir.Instruction, t ir.Type, isLoad, signed, unaligned bool) Opcode {
	if t.Unsupported64BitHost() {
		unreachableRepresentation(node, t)
	}
	switch t {
	case ir.TypeF32:
		if isLoad {
			if unaligned {
				return OpULoadFloat
			}
			return OpLoadFloat
		}
		if unaligned {
			return OpUStoreFloat
		}
		return OpStoreFloat
	case ir.TypeF64:
		if isLoad {
			if unaligned {
				return OpULoadDouble
			}
			return OpLoadDouble
		}
		if unaligned {
			return OpUStoreDouble
		}
		return OpStoreDouble
	case ir.TypeI8:
		if isLoad {
			if signed {
				return OpLb
			}
			return OpLbu
		}
		return OpSb
	case ir.TypeI16:
		if isLoad {
			if unaligned {
				if signed {
					return OpUlh
				}
				return OpUlhu
			}
			if signed {
				return OpLh
			}
			return OpLhu
		}
		if unaligned {
			return OpUsh
		}
		return OpSh
	case ir.TypeI32, ir.TypeTagged, ir.TypeTaggedPointer:
		if isLoad {
			if unaligned {
				return OpUlw
			}
			return OpLw
		}
		if unaligned {
			return OpUsw
		}
		return OpSw
	case ir.TypeV128:
		if isLoad {
			return OpRvvLd
		}
		return OpRvvSt
	default:
		unreachableRepresentation(node, t)
		panic("unreachable")
	}
}

// AddressOperands is the result of the addressing-mode synthesizer (C4): the
// mode plus the operands the caller should attach to its load/store/atomic
// instruction, and any extra instruction needed to materialize a combined
// base+index temporary (spec.md §4.2.2 rule 3).
type AddressOperands struct {
	Mode    AddressingMode
	Base    Operand // valid for BaseImm/BaseReg.
	Index   Operand // immediate (BaseImm/RootImm) or register (BaseReg).
	Extra   *Instruction
}

// synthesizeAddress implements spec.md §4.2.2's three-rule addressing-mode
// algorithm for a load/store/atomic whose effective address is base+index,
// where op is the architectural opcode that will consume the result (its
// immediate-range class decides whether rule 2 applies).
func (m *Machine) synthesizeAddress(base, index *ir.Instruction, op Opcode) AddressOperands {
	g := m.gen

	// Rule 1: base is a resolved external reference, index is a constant,
	// and the combined delta fits a 32-bit immediate -> RootImm.
	if base.Opcode() == ir.OpcodeExternalConstant && m.rootResolver != nil {
		if rootOffset, ok := m.rootResolver.ResolveRootOffset(base.ExternalName()); ok {
			if isIntConstant(index) {
				delta := int64(rootOffset) + index.ConstantValue()
				if delta >= -(1<<31) && delta <= (1<<31)-1 {
					return AddressOperands{
						Mode:  AddressingModeRootImm,
						Index: g.UseImmediate(m.pool, delta),
					}
				}
			}
		}
	}

	// Rule 2: index fits the opcode's immediate range -> BaseImm.
	if isIntConstant(index) && fitsImmediate(op, index.ConstantValue()) {
		return AddressOperands{
			Mode:  AddressingModeBaseImm,
			Base:  g.UseRegister(base),
			Index: g.UseImmediate(m.pool, index.ConstantValue()),
		}
	}

	// Rule 3: materialize base+index into a scratch register, then BaseImm
	// with immediate 0.
	tmp := g.TempRegister()
	add := &Instruction{
		Op:      OpAdd,
		Outputs: []Operand{tmp},
		Inputs:  []Operand{g.UseRegister(base), g.UseRegister(index)},
	}
	return AddressOperands{
		Mode:  AddressingModeBaseImm,
		Base:  tmp,
		Index: g.UseImmediate(m.pool, 0),
		Extra: add,
	}
}

// lowerLoad lowers an ir.OpcodeLoad/OpcodeUnalignedLoad node (spec.md
// §4.2.2).
func (m *Machine) lowerLoad(node *ir.Instruction) {
	base, index := m.lookup(node.Arg()), m.lookup(node.Arg2())
	unaligned := node.Opcode() == ir.OpcodeUnalignedLoad
	// Loads are conservatively treated as the signed form when the
	// representation is narrower than a word, matching this target's RISC-V
	// Lb/Lh (sign-extending) default; callers needing the zero-extending
	// form route through an explicit ZeroExtendWordNToInt32 wrapper, which
	// lowerExtend lowers separately as an AND mask (Lbu/Lhu are never
	// selected here).
	op := loadStoreOpcode(node, node.Representation(), true, true, unaligned)
	addr := m.synthesizeAddress(base, index, op)
	if addr.Extra != nil {
		m.emit(addr.Extra)
	}
	inst := &Instruction{
		Op:      op,
		Mode:    addr.Mode,
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
	}
	if addr.Mode == AddressingModeRootImm {
		inst.Inputs = []Operand{addr.Index}
	} else {
		inst.Inputs = []Operand{addr.Base, addr.Index}
	}
	m.emit(inst)
}

// lowerStore lowers an ir.OpcodeStore/OpcodeUnalignedStore node, including
// write-barrier emission (spec.md §4.2.2's "Write barriers" rule and
// §3's invariant #4: a write-barrier store never accepts an immediate value
// operand).
func (m *Machine) lowerStore(node *ir.Instruction) {
	base, index, value := m.lookup(node.Arg()), m.lookup(node.Arg2()), m.lookup(node.Arg3())
	unaligned := node.Opcode() == ir.OpcodeUnalignedStore

	if node.WriteBarrierKind() != ir.WriteBarrierKindNone && m.flags.EnableWriteBarriers {
		m.emit(&Instruction{
			Op:      OpArchStoreWithWriteBarrier,
			Misc:    uint32(node.WriteBarrierKind()),
			Inputs:  []Operand{m.gen.UseUniqueRegister(base), m.gen.UseUniqueRegister(index), m.gen.UseUniqueRegister(value)},
			Temps:   []Operand{m.gen.TempRegister(), m.gen.TempRegister()},
		})
		return
	}

	op := loadStoreOpcode(node, node.Representation(), false, true, unaligned)
	addr := m.synthesizeAddress(base, index, op)
	if addr.Extra != nil {
		m.emit(addr.Extra)
	}
	inst := &Instruction{Op: op, Mode: addr.Mode}
	valueOperand := m.gen.UseRegister(value)
	if addr.Mode == AddressingModeRootImm {
		inst.Inputs = []Operand{addr.Index, valueOperand}
	} else {
		inst.Inputs = []Operand{addr.Base, addr.Index, valueOperand}
	}
	m.emit(inst)
}
