// Package riscv32 implements the RISC-V 32-bit instruction-selection pass:
// the single backend.Machine that lowers a read-only mid-IR (package ir)
// into a virtual-register instruction stream for this target. Register
// allocation, prologue/epilogue synthesis, relocation, and binary encoding
// are later, external passes (see package backend's doc comment) and have
// no code here.
package riscv32

import (
	"fmt"

	"github.com/riscv-collab/riscv32isel/regalloc"
)

// Opcode is the closed set of RISC-V (scalar + vector-extension) machine
// opcodes this selector ever emits. Kept as one flat enum rather than a
// class hierarchy, per spec.md §9's "operand polymorphism" design note:
// the dispatcher over this and ir.Opcode is meant to compile to a tight
// jump table, not a chain of dynamic dispatch.
type Opcode uint32

const (
	OpInvalid Opcode = iota

	// Integer ALU.
	OpAdd
	OpSub
	OpAnd
	OpOr
	OpXor
	OpNor
	OpTst
	OpShl32
	OpShr32
	OpSar32
	OpMul
	OpDiv32
	OpDivU32
	OpMod32
	OpModU32
	OpAddOvf
	OpSubOvf
	OpMulOvf32
	OpSignExtendByte
	OpSignExtendShort

	// Moves / constants.
	OpMove
	OpLoadImmediate

	// Compares / flags.
	OpCmpZero
	OpCmp
	OpCmpStackPointer

	// Memory.
	OpLoadFloat
	OpStoreFloat
	OpLoadDouble
	OpStoreDouble
	OpLb
	OpLbu
	OpSb
	OpLh
	OpLhu
	OpSh
	OpLw
	OpSw
	OpUlh
	OpUlhu
	OpUlw
	OpUsh
	OpUsw
	OpULoadFloat
	OpUStoreFloat
	OpULoadDouble
	OpUStoreDouble
	OpRvvLd
	OpRvvSt
	OpArchStoreWithWriteBarrier

	// Atomics.
	OpAtomicLoad
	OpAtomicStore
	OpAtomicExchange
	OpAtomicCompareExchange
	OpAtomicAdd
	OpAtomicSub
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpPairAtomicLoad
	OpPairAtomicStore

	// 64-bit-on-32-bit pair arithmetic.
	OpAddPair
	OpSubPair
	OpMulPair
	OpShlPair
	OpShrPair
	OpSarPair

	// Calls / stack / frame.
	OpPrepareCallCFunction
	OpStoreToStackSlot
	OpStackClaim
	OpPeek
	OpCall
	OpCallC
	OpTailCall
	OpReturn
	OpJump
	OpBranch

	// SIMD.
	OpVectorBinop // generic table-driven one-to-one SIMD op, see simdBinopTable.
	OpVwmul
	OpVwmulu
	OpVslidedown
	OpI8x16Shuffle
	OpVrgather
	OpS128Zero
	OpS128AllOnes
	OpS128Const
	OpS128LoadSplat
	OpS128Load32Zero
	OpS128Load64Zero
	OpS128Load64ExtendS
	OpS128Load64ExtendU
	OpS128LoadLane
	OpS128StoreLane

	opMax
)

// AddressingMode is the 2-bit addressing-mode field packed into every
// memory-referencing instruction (spec.md §6's opcode encoding).
type AddressingMode uint8

const (
	// AddressingModeNone means the instruction has no memory operand.
	AddressingModeNone AddressingMode = iota
	// AddressingModeBaseImm is base register + signed immediate ("MRI").
	AddressingModeBaseImm
	// AddressingModeBaseReg is base register + index register, with no
	// immediate.
	AddressingModeBaseReg
	// AddressingModeRootImm is root-register + signed immediate, used for
	// external-reference loads/stores whose address is statically known
	// relative to the host VM's root register (spec.md §4.2.2 rule 1).
	AddressingModeRootImm
)

// AtomicWidth is the 1-bit atomic-width field packed into atomic
// instructions. This target only ever selects Word32 atomics directly; a
// 64-bit atomic access is split into a PairLoad/PairStore pair upstream.
type AtomicWidth uint8

const (
	AtomicWidthNone AtomicWidth = iota
	AtomicWidthWord32
)

// ElementWidth tags the per-lane width of a SIMD operand (spec.md §4.2.7's
// E8/E16/E32/E64).
type ElementWidth uint8

const (
	E8 ElementWidth = iota
	E16
	E32
	E64
)

// LMUL is the RISC-V vector extension's register group multiplier.
type LMUL uint8

const (
	LMULM1 LMUL = iota
	LMULMF2
	LMULM2
)

// OperandKind is the tag of the Operand sum type (spec.md §3's "Operand.
// Tagged variant").
type OperandKind uint8

const (
	OperandKindUnallocated OperandKind = iota
	OperandKindImmediate
	OperandKindTemp
)

// Policy is the allocation policy an Unallocated operand carries, exactly
// spec.md §3's five variants.
type Policy uint8

const (
	// PolicyAnyRegister accepts any register the allocator assigns.
	PolicyAnyRegister Policy = iota
	// PolicySameAsFirstInput ties this output to the first input's register
	// (2-address-style instructions).
	PolicySameAsFirstInput
	// PolicyFixedRegister pins this operand to a specific RealReg.
	PolicyFixedRegister
	// PolicyUniqueRegister forbids the allocator from coalescing this
	// operand with any other live value (required for write-barrier and
	// atomic-retry-loop operands that are read and rewritten in place).
	PolicyUniqueRegister
	// PolicyRegisterOrImmediateZero accepts the architectural zero register
	// in place of an explicit register when the value is a known zero.
	PolicyRegisterOrImmediateZero
)

// TempKind distinguishes the three kinds of scratch register a Temp operand
// may draw: integer, floating-point and 128-bit vector.
type TempKind uint8

const (
	TempKindInt TempKind = iota
	TempKindFloat
	TempKindSimd128
)

// Operand is the tagged union described in spec.md §3. It is stored as a
// flat struct (not an interface/class hierarchy), per spec.md §9's design
// note. Most are built through operand_gen.go's OperandGenerator; machine.go
// and lower_atomic.go also call the constructors below directly.
type Operand struct {
	Kind OperandKind

	// Unallocated fields.
	Policy    Policy
	VRegID    uint32 // the virtual id this operand refers to, valid when Kind == OperandKindUnallocated.
	FixedReg  regalloc.RealReg
	RegType   regalloc.RegType

	// Immediate field: index into the owning sequence's ConstantPool.
	ConstIndex int

	// Temp field.
	TempKind TempKind
}

// UnallocatedOperand constructs an Unallocated operand bound to vreg with
// the given policy.
func UnallocatedOperand(policy Policy, vreg regalloc.VReg) Operand {
	return Operand{Kind: OperandKindUnallocated, Policy: policy, VRegID: uint32(vreg.ID()), RegType: vreg.RegType()}
}

// FixedOperand constructs an Unallocated operand pinned to a specific real
// register.
func FixedOperand(vreg regalloc.VReg, r regalloc.RealReg) Operand {
	return Operand{Kind: OperandKindUnallocated, Policy: PolicyFixedRegister, VRegID: uint32(vreg.ID()), FixedReg: r, RegType: vreg.RegType()}
}

// ImmediateOperand constructs an Immediate operand pointing at constIndex in
// the owning sequence's ConstantPool.
func ImmediateOperand(constIndex int) Operand {
	return Operand{Kind: OperandKindImmediate, ConstIndex: constIndex}
}

// TempOperand constructs a scratch-register Temp operand.
func TempOperand(kind TempKind) Operand {
	return Operand{Kind: OperandKindTemp, TempKind: kind}
}

// String implements fmt.Stringer, used by Format for golden-output tests.
func (o Operand) String() string {
	switch o.Kind {
	case OperandKindImmediate:
		return fmt.Sprintf("#%d", o.ConstIndex)
	case OperandKindTemp:
		return "tmp"
	default:
		if o.Policy == PolicyFixedRegister {
			return fmt.Sprintf("v%d(%s)", o.VRegID, o.FixedReg)
		}
		return fmt.Sprintf("v%d", o.VRegID)
	}
}

// Instruction is the emitted record described in spec.md §3: an
// architecture opcode, its packed auxiliary fields, its operand lists, and
// an optional flags continuation.
type Instruction struct {
	Op   Opcode
	Mode AddressingMode
	Atom AtomicWidth
	Misc uint32

	Outputs []Operand
	Inputs  []Operand
	Temps   []Operand

	Flags *FlagsContinuation
}

// String implements fmt.Stringer.
func (i *Instruction) String() string {
	s := i.Op.String()
	for _, o := range i.Outputs {
		s += " " + o.String() + ","
	}
	for n, o := range i.Inputs {
		if n > 0 {
			s += ","
		}
		s += " " + o.String()
	}
	if i.Mode == AddressingModeRootImm {
		s += " [root-imm]"
	}
	if i.Flags != nil {
		s += " " + i.Flags.String()
	}
	return s
}

// String implements fmt.Stringer. Table-driven rather than a switch since
// the point of the closed-enum opcode design (spec.md §9) is that this is
// the single place new opcodes need a name.
func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return "op(?)"
}
