// Package backend defines the external driver contract this selection pass
// is built against: the Compiler collaborator that supplies CanCover
// (spec.md §3's sole folding authority), virtual register allocation, and
// projection lookup; the Frame collaborator that supplies spill-slot
// bookkeeping; and the FunctionABI/Signature types the Call/Return ABI
// Lowering rules (C7) build argument layouts from. None of these interfaces
// is implemented by this package — the mid-IR builder, the register
// allocator, and the frame/stack-slot allocator own the real
// implementations (spec.md §1) — but package riscv32 is written entirely
// against them, so they're specified precisely here.
package backend

import (
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// Compiler is the external driver's interface into the surrounding mid-IR
// and register-allocation bookkeeping. It is supplied once, at Machine
// construction, and consulted throughout the single walk over the
// function's instructions.
type Compiler interface {
	// ValueDefinition returns how and where v was defined.
	ValueDefinition(v ir.Value) SSAValueDefinition

	// CanCover reports whether value may be folded directly into user's
	// lowering, rather than being materialized into its own register first.
	// This is the sole authority for every peephole fusion in this package
	// (spec.md §3's invariant): a selection rule must call this before
	// folding any node into its own output and must not fold without it,
	// since the inner node may have other consumers the register allocator
	// still depends on.
	CanCover(user, value *ir.Instruction) bool

	// MarkLowered records that node has already been lowered as part of an
	// earlier fused handler, so the driver's reverse walk skips emitting it
	// again.
	MarkLowered(node *ir.Instruction)

	// IsDefined reports whether node has already produced a virtual
	// register (via an earlier call to this Compiler during the same
	// walk), which selection rules use to decide whether a projection's
	// parent still needs lowering or has already been handled by a sibling
	// projection.
	IsDefined(node *ir.Instruction) bool

	// AllocateVReg allocates a fresh virtual register of the given class.
	AllocateVReg(typ regalloc.RegType) regalloc.VReg

	// FindProjection returns the Instruction representing the given
	// projection index of node, if the mid-IR builder materialized one.
	FindProjection(node *ir.Instruction, index int) (*ir.Instruction, bool)
}

// Frame is the external frame/stack-slot allocator's interface (spec.md §1).
// This pass only ever requests spill slots for values it cannot keep live in
// registers across a call or a materialized constant too large to re-derive
// cheaply; the frame's own layout, alignment to the platform's stack
// discipline, and prologue/epilogue emission are entirely its concern.
type Frame interface {
	// AllocateSpillSlot reserves size bytes aligned to align and returns the
	// slot's frame-relative index.
	AllocateSpillSlot(size, align int) int
}
