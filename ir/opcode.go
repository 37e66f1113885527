// Package ir defines the read-only contract this instruction selector consumes
// from the mid-level IR: the operator vocabulary (Opcode), the node shape
// (Instruction/Value), and the machine representations a load/store can carry.
//
// The mid-IR builder itself — the thing that actually constructs graphs of
// these nodes, runs the optimization passes, and schedules nodes into blocks —
// is an external collaborator (see spec.md §1) and is not implemented here.
// This package only needs to describe what a node looks like once handed to
// the selector.
package ir

// Opcode represents a mid-IR operator kind. The full vocabulary this pass is
// specified against is on the order of ~400 entries (see spec.md §1); named
// below are the operators this selector has a lowering rule for or explicitly
// rejects (spec.md §4.2.9), the control-flow operators, and a few neighbouring
// operators (such as the Float32/Float64 arithmetic family) that have no
// lowering rule. Any opcode without a lowering rule is outside this target's
// implemented subset, and the dispatcher's default arm reports it as
// unimplemented (see diagnostics.go in backend/isa/riscv32).
type Opcode uint32

const (
	OpcodeInvalid Opcode = iota

	// --- control flow (handled by the driver outside LowerInstr, except
	// Switch, which LowerInstr lowers; named here since VisitSwitch and
	// branch fusion need to recognize them) ---

	// OpcodeJump is an unconditional jump to a target block.
	OpcodeJump
	// OpcodeBranch is a conditional branch on a single boolean value.
	OpcodeBranch
	// OpcodeSwitch dispatches on an integer value across N case blocks plus
	// a default, per spec.md §4.2.4.
	OpcodeSwitch
	// OpcodeReturn returns from the function.
	OpcodeReturn
	// OpcodeDeoptimize is a side-exit that bails to a slower execution tier.
	OpcodeDeoptimize
	// OpcodeTrap aborts execution with a host-defined trap id.
	OpcodeTrap

	// --- constants ---

	// OpcodeInt32Constant is a 32-bit integer constant.
	OpcodeInt32Constant
	// OpcodeInt64Constant is a 64-bit integer constant.
	OpcodeInt64Constant
	// OpcodeFloat32Constant is an IEEE-754 32-bit float constant.
	OpcodeFloat32Constant
	// OpcodeFloat64Constant is an IEEE-754 64-bit float constant.
	OpcodeFloat64Constant
	// OpcodeExternalConstant resolves to an address relative to the host
	// VM's root register at a (possibly not yet known) offset.
	OpcodeExternalConstant

	// --- integer ALU (spec.md §4.2.1) ---

	// OpcodeInt32Add ...
	OpcodeInt32Add
	// OpcodeInt32Sub ...
	OpcodeInt32Sub
	// OpcodeInt32Mul ...
	OpcodeInt32Mul
	// OpcodeInt32Div is signed 32-bit division.
	OpcodeInt32Div
	// OpcodeUint32Div is unsigned 32-bit division.
	OpcodeUint32Div
	// OpcodeInt32Mod is signed 32-bit remainder.
	OpcodeInt32Mod
	// OpcodeUint32Mod is unsigned 32-bit remainder.
	OpcodeUint32Mod
	// OpcodeInt32AddWithOverflow produces a sum plus an overflow projection.
	OpcodeInt32AddWithOverflow
	// OpcodeInt32SubWithOverflow produces a difference plus an overflow projection.
	OpcodeInt32SubWithOverflow
	// OpcodeInt32MulWithOverflow produces a product plus an overflow projection.
	OpcodeInt32MulWithOverflow

	// --- bitwise (spec.md §4.2.1) ---

	// OpcodeWord32And ...
	OpcodeWord32And
	// OpcodeWord32Or ...
	OpcodeWord32Or
	// OpcodeWord32Xor ...
	OpcodeWord32Xor
	// OpcodeWord32Tst is a bitwise-and used only to produce flags.
	OpcodeWord32Tst

	// --- shifts (spec.md §4.1, §4.2.1) ---

	// OpcodeWord32Shl is a logical left shift.
	OpcodeWord32Shl
	// OpcodeWord32Shr is a logical (unsigned) right shift.
	OpcodeWord32Shr
	// OpcodeWord32Sar is an arithmetic (signed) right shift.
	OpcodeWord32Sar
	// OpcodeWord32Rol is a left rotate. Unimplemented on this target (spec.md §4.2.9).
	OpcodeWord32Rol

	// --- bit utilities ---

	// OpcodeWord32ReverseBits reverses the bits of a word. Unimplemented (spec.md §4.2.9).
	OpcodeWord32ReverseBits
	// OpcodeWord64ReverseBytes reverses the bytes of a doubleword. Unimplemented (spec.md §4.2.9).
	OpcodeWord64ReverseBytes
	// OpcodeSimd128ReverseBytes reverses the bytes of a 128-bit vector. Unimplemented (spec.md §4.2.9).
	OpcodeSimd128ReverseBytes

	// --- conversions / extensions ---

	// OpcodeSignExtendWord8ToInt32 sign-extends an 8-bit value.
	OpcodeSignExtendWord8ToInt32
	// OpcodeSignExtendWord16ToInt32 sign-extends a 16-bit value.
	OpcodeSignExtendWord16ToInt32
	// OpcodeZeroExtendWord8ToInt32 zero-extends an 8-bit value.
	OpcodeZeroExtendWord8ToInt32
	// OpcodeZeroExtendWord16ToInt32 zero-extends a 16-bit value.
	OpcodeZeroExtendWord16ToInt32

	// --- comparisons / flags (spec.md §4.2.3) ---

	// OpcodeWord32Equal tests two words for bitwise equality.
	OpcodeWord32Equal
	// OpcodeInt32LessThan is signed less-than.
	OpcodeInt32LessThan
	// OpcodeInt32LessThanOrEqual is signed less-than-or-equal.
	OpcodeInt32LessThanOrEqual
	// OpcodeUint32LessThan is unsigned less-than.
	OpcodeUint32LessThan
	// OpcodeUint32LessThanOrEqual is unsigned less-than-or-equal.
	OpcodeUint32LessThanOrEqual
	// OpcodeFloat32Equal ...
	OpcodeFloat32Equal
	// OpcodeFloat32LessThan ...
	OpcodeFloat32LessThan
	// OpcodeFloat32LessThanOrEqual ...
	OpcodeFloat32LessThanOrEqual
	// OpcodeFloat64Equal ...
	OpcodeFloat64Equal
	// OpcodeFloat64LessThan ...
	OpcodeFloat64LessThan
	// OpcodeFloat64LessThanOrEqual ...
	OpcodeFloat64LessThanOrEqual
	// OpcodeStackPointerGreaterThan compares the stack pointer against a limit.
	OpcodeStackPointerGreaterThan
	// OpcodeProjection extracts one of a multi-result node's outputs (e.g. the
	// overflow bit of an *WithOverflow op, or the high half of a Pair op).
	OpcodeProjection

	// --- floating point ---

	// OpcodeFloat32Add ...
	OpcodeFloat32Add
	// OpcodeFloat32Sub ...
	OpcodeFloat32Sub
	// OpcodeFloat32Mul ...
	OpcodeFloat32Mul
	// OpcodeFloat32Div ...
	OpcodeFloat32Div
	// OpcodeFloat64Add ...
	OpcodeFloat64Add
	// OpcodeFloat64Sub ...
	OpcodeFloat64Sub
	// OpcodeFloat64Mul ...
	OpcodeFloat64Mul
	// OpcodeFloat64Div ...
	OpcodeFloat64Div
	// OpcodeFloat64RoundDown rounds towards negative infinity.
	OpcodeFloat64RoundDown
	// OpcodeFloat64RoundUp rounds towards positive infinity.
	OpcodeFloat64RoundUp
	// OpcodeFloat64RoundTruncate rounds towards zero.
	OpcodeFloat64RoundTruncate
	// OpcodeFloat64RoundTiesEven rounds to nearest, ties to even.
	OpcodeFloat64RoundTiesEven
	// OpcodeFloat64RoundTiesAway rounds to nearest, ties away from zero. Unimplemented (spec.md §4.2.9).
	OpcodeFloat64RoundTiesAway

	// --- abs-with-overflow (unimplemented on this target, spec.md §4.2.9) ---

	// OpcodeInt32AbsWithOverflow computes |x| and an overflow projection for INT32_MIN.
	OpcodeInt32AbsWithOverflow
	// OpcodeInt64AbsWithOverflow computes |x| and an overflow projection for INT64_MIN.
	OpcodeInt64AbsWithOverflow

	// --- memory (spec.md §4.2.2) ---

	// OpcodeLoad loads a value of the node's MachineRepresentation from [base+index].
	OpcodeLoad
	// OpcodeStore stores a value to [base+index].
	OpcodeStore
	// OpcodeUnalignedLoad is Load without the alignment guarantee.
	OpcodeUnalignedLoad
	// OpcodeUnalignedStore is Store without the alignment guarantee.
	OpcodeUnalignedStore
	// OpcodeProtectedLoad is a trap-on-fault load. Unimplemented (spec.md §4.2.9).
	OpcodeProtectedLoad
	// OpcodeProtectedStore is a trap-on-fault store. Unimplemented (spec.md §4.2.9).
	OpcodeProtectedStore

	// --- atomics (spec.md §4.2.5) ---

	// OpcodeWord32AtomicLoad ...
	OpcodeWord32AtomicLoad
	// OpcodeWord32AtomicStore ...
	OpcodeWord32AtomicStore
	// OpcodeWord32AtomicExchange ...
	OpcodeWord32AtomicExchange
	// OpcodeWord32AtomicCompareExchange ...
	OpcodeWord32AtomicCompareExchange
	// OpcodeWord32AtomicAdd ...
	OpcodeWord32AtomicAdd
	// OpcodeWord32AtomicSub ...
	OpcodeWord32AtomicSub
	// OpcodeWord32AtomicAnd ...
	OpcodeWord32AtomicAnd
	// OpcodeWord32AtomicOr ...
	OpcodeWord32AtomicOr
	// OpcodeWord32AtomicXor ...
	OpcodeWord32AtomicXor
	// OpcodeWord32PairAtomicLoad loads a 64-bit value as two 32-bit halves.
	OpcodeWord32PairAtomicLoad
	// OpcodeWord32PairAtomicStore stores a 64-bit value as two 32-bit halves.
	OpcodeWord32PairAtomicStore
	// OpcodeWord32PairAtomicAdd is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicAdd
	// OpcodeWord32PairAtomicSub is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicSub
	// OpcodeWord32PairAtomicAnd is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicAnd
	// OpcodeWord32PairAtomicOr is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicOr
	// OpcodeWord32PairAtomicXor is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicXor
	// OpcodeWord32PairAtomicExchange is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicExchange
	// OpcodeWord32PairAtomicCompareExchange is unimplemented on this target (spec.md §4.2.5).
	OpcodeWord32PairAtomicCompareExchange

	// --- 64-bit-on-32-bit pair arithmetic (spec.md §4.2.6) ---

	// OpcodeInt32PairAdd adds two 64-bit values represented as (low,high) halves.
	OpcodeInt32PairAdd
	// OpcodeInt32PairSub subtracts two 64-bit values represented as (low,high) halves.
	OpcodeInt32PairSub
	// OpcodeInt32PairMul multiplies two 64-bit values represented as (low,high) halves.
	OpcodeInt32PairMul
	// OpcodeInt32PairShl shifts a 64-bit pair left by a 32-bit shift amount.
	OpcodeInt32PairShl
	// OpcodeInt32PairShr shifts a 64-bit pair right (logical) by a 32-bit shift amount.
	OpcodeInt32PairShr
	// OpcodeInt32PairSar shifts a 64-bit pair right (arithmetic) by a 32-bit shift amount.
	OpcodeInt32PairSar

	// --- calls ---

	// OpcodeCall is a direct call using the JS calling convention.
	OpcodeCall
	// OpcodeCallC is a call into a C function, argument-marshalled per the C ABI.
	OpcodeCallC
	// OpcodeTailCall is a tail call.
	OpcodeTailCall

	// --- SIMD (spec.md §4.2.7) ---

	// OpcodeF32x4Add ...
	OpcodeF32x4Add
	// OpcodeF64x2Add ...
	OpcodeF64x2Add
	// OpcodeI32x4Add ...
	OpcodeI32x4Add
	// OpcodeI32x4Sub ...
	OpcodeI32x4Sub
	// OpcodeI32x4Mul ...
	OpcodeI32x4Mul
	// OpcodeI16x8ExtMulLowI8x16S ...
	OpcodeI16x8ExtMulLowI8x16S
	// OpcodeI16x8ExtMulHighI8x16S ...
	OpcodeI16x8ExtMulHighI8x16S
	// OpcodeI32x4ExtMulLowI16x8U ...
	OpcodeI32x4ExtMulLowI16x8U
	// OpcodeI32x4ExtMulHighI16x8U ...
	OpcodeI32x4ExtMulHighI16x8U
	// OpcodeI64x2ExtMulLowI32x4S ...
	OpcodeI64x2ExtMulLowI32x4S
	// OpcodeI64x2ExtMulHighI32x4S ...
	OpcodeI64x2ExtMulHighI32x4S
	// OpcodeI8x16Shuffle selects 16 bytes from the concatenation of two inputs.
	OpcodeI8x16Shuffle
	// OpcodeI8x16Swizzle selects bytes from a single input by a per-lane index.
	OpcodeI8x16Swizzle
	// OpcodeS128Const materializes an arbitrary 128-bit constant.
	OpcodeS128Const
	// OpcodeS128Load loads a 128-bit vector.
	OpcodeS128Load
	// OpcodeS128Store stores a 128-bit vector.
	OpcodeS128Store
	// OpcodeS128LoadSplat loads a scalar and splats it across all lanes.
	OpcodeS128LoadSplat
	// OpcodeS128Load32Zero loads 32 bits into lane 0, zeroing the rest.
	OpcodeS128Load32Zero
	// OpcodeS128Load64Zero loads 64 bits into lane 0, zeroing the rest.
	OpcodeS128Load64Zero
	// OpcodeS128Load64ExtendS loads 64 bits and sign-extends each lane to double width.
	OpcodeS128Load64ExtendS
	// OpcodeS128Load64ExtendU loads 64 bits and zero-extends each lane to double width.
	OpcodeS128Load64ExtendU
	// OpcodeS128LoadLane loads a single lane, leaving the others untouched.
	OpcodeS128LoadLane
	// OpcodeS128StoreLane stores a single lane.
	OpcodeS128StoreLane

	opcodeMax
)

// String implements fmt.Stringer with a best-effort name; unnamed opcodes in
// the ~400-entry vocabulary this pass is specified against, but not reachable
// by any RISC-V 32 selection rule, report "opcode(?)".
func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return "opcode(?)"
}

var opcodeNames = buildOpcodeNames()

func buildOpcodeNames() map[Opcode]string {
	// Populated via reflection-free explicit table to keep String() cheap;
	// see opcode_string.go for the generated-style table.
	return opcodeNameTable
}
