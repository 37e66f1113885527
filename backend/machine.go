package backend

import (
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// Machine is the per-target instruction selector. package riscv32 provides
// the sole implementation. The external driver (out of scope, see spec.md
// §1) walks one function's blocks and instructions and calls into Machine in
// scheduling order; everything downstream of the emitted instruction stream
// — register allocation, prologue/epilogue synthesis, relocation, and
// binary encoding — belongs to later, external passes and has no surface
// here.
type Machine interface {
	// SetCompiler binds the Compiler collaborator for the lifetime of this
	// Machine. Called once before the first compilation.
	SetCompiler(Compiler)

	// SetCurrentABI installs the FunctionABI computed for the function
	// currently being compiled, for use by LowerInstr's Call/Return
	// handling (C7).
	SetCurrentABI(abi ABI)

	// StartBlock is called when the driver begins lowering the given
	// block, in case per-block state needs resetting.
	StartBlock(block ir.BlockID)

	// EndBlock is called when the driver finishes lowering the current
	// block.
	EndBlock()

	// LowerSingleBranch lowers an unconditional jump (spec.md's control-flow
	// handling, adjacent to but distinct from the flags-producing branch
	// fusion in LowerInstr).
	LowerSingleBranch(b *ir.Instruction)

	// LowerConditionalBranch lowers a conditional branch, including the
	// Compare/Branch Fuser's negation-loop and fusion rewrites (C6).
	LowerConditionalBranch(b *ir.Instruction)

	// LowerInstr is the main dispatcher (spec.md §2's "large closed-form
	// switch"): one call per IR instruction in the block, in reverse
	// scheduling order, skipping any node already marked lowered via
	// Compiler.MarkLowered. A single call may lower more than one IR node
	// at once when a peephole fusion rule folds producers into their
	// consumer.
	LowerInstr(*ir.Instruction)

	// Reset clears all per-pass state, so one Machine value can be reused
	// to compile many functions in sequence from a pooled allocator
	// (spec.md §5's scoped-arena reuse model).
	Reset()

	// InsertMove emits a register-to-register move of the given type.
	InsertMove(dst, src regalloc.VReg, typ ir.Type)

	// InsertReturn emits the function's return sequence.
	InsertReturn()

	// InsertLoadConstantBlockArg emits the instruction(s) needed to
	// materialize a constant block argument into vr, for values the driver
	// could not otherwise place into a register as part of normal lowering
	// (e.g. constants flowing into a block parameter across a critical
	// edge).
	InsertLoadConstantBlockArg(instr *ir.Instruction, vr regalloc.VReg)

	// Format returns a human-readable dump of the instructions emitted so
	// far. Used by tests to assert on lowering output (spec.md §8's worked
	// examples), never by production code.
	Format() string

	// ArgsResultsRegs returns the registers used for argument/result
	// passing, consulted by Call/Return ABI Lowering (C7).
	ArgsResultsRegs() (argInts, argFloats, resultInts, resultFloats []regalloc.RealReg)

	// Capabilities reports which optional operator lowerings and alignment
	// requirements this Machine supports (C8, Capability Advertisement).
	Capabilities() Capabilities
}

// Capabilities is the Capability Advertisement record (C8): a snapshot of
// which optional lowerings and alignment assumptions this particular
// Machine instance was configured to support, so the surrounding pipeline
// can decide whether to route a given function through this target at all.
type Capabilities struct {
	// UnalignedLoadStore reports whether Load/Store may be emitted directly
	// for sub-word-aligned addresses, as opposed to requiring the driver to
	// pre-split unaligned accesses.
	UnalignedLoadStore bool
	// WriteBarriers reports whether Store emits the GC write-barrier
	// sequence for tagged/tagged-pointer stores.
	WriteBarriers bool
	// Atomics64BitPair reports whether the 64-bit-on-32-bit pair atomic
	// read-modify-write operators (spec.md §4.2.5) are implemented, as
	// opposed to only plain pair load/store.
	Atomics64BitPair bool
	// SwitchJumpTable reports whether dense Switch nodes may lower to a
	// jump table, as opposed to always lowering to a decision tree of
	// compares.
	SwitchJumpTable bool
	// Word32ShiftIsSafe reports whether a Word32 shift amount is taken
	// modulo the word width in hardware, as opposed to needing an explicit
	// mask before the shift is emitted.
	Word32ShiftIsSafe bool
	// Int32DivIsSafe reports whether a signed 32-bit divide/mod by a
	// runtime-supplied divisor yields a defined result in hardware on
	// overflow/zero, as opposed to needing a guard sequence before the
	// instruction.
	Int32DivIsSafe bool
	// Uint32DivIsSafe reports the unsigned counterpart of Int32DivIsSafe.
	Uint32DivIsSafe bool
	// Float32RoundDown reports whether Float32RoundDown has a lowering.
	Float32RoundDown bool
	// Float32RoundUp reports whether Float32RoundUp has a lowering.
	Float32RoundUp bool
	// Float32RoundTruncate reports whether Float32RoundTruncate has a
	// lowering.
	Float32RoundTruncate bool
	// Float32RoundTiesEven reports whether Float32RoundTiesEven has a
	// lowering.
	Float32RoundTiesEven bool
}
