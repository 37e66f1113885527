package backend

import "github.com/riscv-collab/riscv32isel/ir"

// Signature is a function's parameter/result type list, as handed to the
// Call/Return ABI Lowering rules (C7) to compute argument and result slot
// layouts for a particular call site or function entry.
type Signature struct {
	Params  []ir.Type
	Results []ir.Type
}
