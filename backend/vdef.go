package backend

import (
	"github.com/riscv-collab/riscv32isel/ir"
)

// SSAValueDefinition records how and where one IR value was defined, as seen
// from the external driver: the node that produced it (nil for block
// parameters/live-ins the driver defines some other way) and the number of
// remaining consumers. RefCount backs Compiler.CanCover: a node may be
// folded into exactly one user, and only when that user is its sole
// remaining consumer.
type SSAValueDefinition struct {
	V ir.Value
	// Instr is non-nil when this definition comes from an instruction node,
	// as opposed to a block parameter.
	Instr *ir.Instruction
	// RefCount is the number of uses of V remaining at the point this
	// definition is inspected.
	RefCount uint32
}

// IsFromInstr reports whether this definition originates from an
// instruction node (as opposed to a block parameter).
func (d *SSAValueDefinition) IsFromInstr() bool {
	return d.Instr != nil
}
