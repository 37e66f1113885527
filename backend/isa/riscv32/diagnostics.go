package riscv32

import (
	"fmt"

	"github.com/riscv-collab/riscv32isel/ir"
)

// unimplemented reports a fatal "unimplemented operator" diagnostic
// (spec.md §7): a node whose operator kind has no selection rule on this
// target. The pass is total with respect to its declared operator subset
// and fails loudly outside it — there is no recoverable path here, so this
// panics rather than returning an error (see SPEC_FULL.md §2's error
// taxonomy: this mirrors wazevo's own "BUG: ..." panic convention for
// the same class of internal-contract violation).
func unimplemented(node *ir.Instruction) {
	panic(fmt.Sprintf("BUG: unimplemented operator %s (node v%d)", node.Opcode(), node.ID()))
}

// unreachableRepresentation reports a fatal "unreachable representation"
// diagnostic (spec.md §7): a load/store whose machine representation this
// target rejects outright (compressed, 64-bit, sandboxed pointers, map
// words).
func unreachableRepresentation(node *ir.Instruction, t ir.Type) {
	panic(fmt.Sprintf("BUG: unreachable representation %s for node v%d (opcode %s)", t, node.ID(), node.Opcode()))
}

// invariantViolation reports a fatal internal-consistency check failure
// (spec.md §7's third taxonomy entry): arity mismatches, malformed operand
// lists, and similar contract violations this pass itself is responsible
// for never producing.
func invariantViolation(format string, args ...interface{}) {
	panic("BUG: " + fmt.Sprintf(format, args...))
}
