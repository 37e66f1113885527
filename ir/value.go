package ir

// Value is an opaque reference to a single SSA-form result: either a node's
// primary output or one of its projections. The mid-IR builder (out of
// scope, see package doc) owns the actual numbering; this pass only ever
// reads a Value back to find the Instruction that defines it.
type Value uint32

// ValueInvalid is the zero Value, never produced by a real node.
const ValueInvalid Value = 0

// Valid reports whether v refers to a real node output.
func (v Value) Valid() bool { return v != ValueInvalid }
