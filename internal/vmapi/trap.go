// Package vmapi holds the small set of host-VM-facing enums that the
// instruction selector needs to name but does not own: trap identifiers and
// deoptimization reasons. Ported from the shape of
// internal/engine/wazevo/wazevoapi.ExitCode in tetratelabs/wazero.
package vmapi

// TrapID identifies why a Trap flags-continuation (see riscv32.FlagsContinuation)
// aborts execution. The host VM owns the actual trap-handling tables; this pass
// only needs a stable identifier to stamp onto the emitted instruction.
type TrapID uint32

const (
	TrapIDUnreachable TrapID = iota
	TrapIDMemoryOutOfBounds
	TrapIDIntegerDivideByZero
	TrapIDIntegerOverflow
	TrapIDInvalidConversionToInteger
	TrapIDTableOutOfBounds
	TrapIDIndirectCallTypeMismatch
	TrapIDStackOverflow

	trapIDMax
)

// String implements fmt.Stringer.
func (t TrapID) String() string {
	switch t {
	case TrapIDUnreachable:
		return "unreachable"
	case TrapIDMemoryOutOfBounds:
		return "memory_out_of_bounds"
	case TrapIDIntegerDivideByZero:
		return "integer_divide_by_zero"
	case TrapIDIntegerOverflow:
		return "integer_overflow"
	case TrapIDInvalidConversionToInteger:
		return "invalid_conversion_to_integer"
	case TrapIDTableOutOfBounds:
		return "table_out_of_bounds"
	case TrapIDIndirectCallTypeMismatch:
		return "indirect_call_type_mismatch"
	case TrapIDStackOverflow:
		return "stack_overflow"
	default:
		return "unknown_trap"
	}
}

// Valid reports whether t is a known trap id.
func (t TrapID) Valid() bool { return t < trapIDMax }

// DeoptReason identifies why a Deoptimize flags-continuation bails out of
// compiled code back to a slower execution tier, along with the feedback slot
// the runtime should update so future compilations avoid repeating the deopt.
type DeoptReason uint32

const (
	DeoptReasonWrongType DeoptReason = iota
	DeoptReasonOutOfBounds
	DeoptReasonOverflow
	DeoptReasonDivisionByZero
	DeoptReasonHole
	DeoptReasonMinusZero

	deoptReasonMax
)

// String implements fmt.Stringer.
func (d DeoptReason) String() string {
	switch d {
	case DeoptReasonWrongType:
		return "wrong_type"
	case DeoptReasonOutOfBounds:
		return "out_of_bounds"
	case DeoptReasonOverflow:
		return "overflow"
	case DeoptReasonDivisionByZero:
		return "division_by_zero"
	case DeoptReasonHole:
		return "hole"
	case DeoptReasonMinusZero:
		return "minus_zero"
	default:
		return "unknown_deopt_reason"
	}
}

// Valid reports whether d is a known deopt reason.
func (d DeoptReason) Valid() bool { return d < deoptReasonMax }

// FeedbackSlot identifies the runtime feedback-vector slot a deoptimization
// should invalidate, keeping future compilations from repeating the same
// speculative assumption. The slot's own storage is owned by the host VM.
type FeedbackSlot uint32
