package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

// BinopMatch is a thin view over a binary-operator node, exposing its two
// operands without every selection rule re-deriving Arg()/Arg2() itself
// (C2 — mirrors ssa.Instruction's own paired Arg/Arg2 accessor style from
// tetratelabs/wazero).
type BinopMatch struct {
	Node        *ir.Instruction
	Left, Right *ir.Instruction
}

// MatchBinop resolves node's two inputs into their defining Instructions via
// lookup and returns a BinopMatch. lookup
// resolves an ir.Value back to the Instruction that defines it (supplied by
// the caller since ir package itself has no graph-wide value→def index —
// that index belongs to the mid-IR builder, out of scope).
func MatchBinop(node *ir.Instruction, lookup func(ir.Value) *ir.Instruction) BinopMatch {
	return BinopMatch{Node: node, Left: lookup(node.Arg()), Right: lookup(node.Arg2())}
}

// RightIsIntConstant returns m.Right's integer constant and whether it is one.
func (m BinopMatch) RightIsIntConstant() (int64, bool) {
	if isIntConstant(m.Right) {
		return m.Right.ConstantValue(), true
	}
	return 0, false
}

// LeftIsIntConstant returns m.Left's integer constant and whether it is one.
func (m BinopMatch) LeftIsIntConstant() (int64, bool) {
	if isIntConstant(m.Left) {
		return m.Left.ConstantValue(), true
	}
	return 0, false
}

// CompareMatch is a thin view over a comparison node: its two operands plus
// the Condition its opcode maps to.
type CompareMatch struct {
	Node        *ir.Instruction
	Left, Right *ir.Instruction
	Cond        Condition
}

// MatchCompare resolves node's two inputs and its Condition into a
// CompareMatch, or reports false if node's opcode is not one of the
// comparison operators the fusion switch recognizes.
func MatchCompare(node *ir.Instruction, lookup func(ir.Value) *ir.Instruction) (CompareMatch, bool) {
	cond, ok := conditionForOpcode(node.Opcode())
	if !ok {
		return CompareMatch{}, false
	}
	return CompareMatch{Node: node, Left: lookup(node.Arg()), Right: lookup(node.Arg2()), Cond: cond}, true
}

// Binop views m as a BinopMatch, so callers can reuse
// RightIsIntConstant/LeftIsIntConstant without duplicating them.
func (m CompareMatch) Binop() BinopMatch {
	return BinopMatch{Node: m.Node, Left: m.Left, Right: m.Right}
}

// conditionForOpcode maps an ir comparison opcode to its Condition, per
// spec.md §4.2.3's fusion switch.
func conditionForOpcode(op ir.Opcode) (Condition, bool) {
	switch op {
	case ir.OpcodeWord32Equal, ir.OpcodeFloat32Equal, ir.OpcodeFloat64Equal:
		return CondEqual, true
	case ir.OpcodeInt32LessThan:
		return CondSignedLessThan, true
	case ir.OpcodeInt32LessThanOrEqual:
		return CondSignedLessThanOrEqual, true
	case ir.OpcodeUint32LessThan:
		return CondUnsignedLessThan, true
	case ir.OpcodeUint32LessThanOrEqual:
		return CondUnsignedLessThanOrEqual, true
	// Ordered float less-than/less-equal use the unsigned-less-than flag
	// encoding on this target (spec.md §9's "float compare polarity" note:
	// this reflects the RISC-V flag-register convention, not a bug).
	case ir.OpcodeFloat32LessThan, ir.OpcodeFloat64LessThan:
		return CondUnsignedLessThan, true
	case ir.OpcodeFloat32LessThanOrEqual, ir.OpcodeFloat64LessThanOrEqual:
		return CondUnsignedLessThanOrEqual, true
	case ir.OpcodeStackPointerGreaterThan:
		return CondStackPointerGreaterThan, true
	default:
		return 0, false
	}
}

// IsWordCompareZero reports whether node is Word32Equal(x, 0), the shape
// VisitWordCompareZero's negation loop folds. Only the 32-bit form is
// recognized; the ir package has no 64-bit equality opcode.
func IsWordCompareZero(node *ir.Instruction, lookup func(ir.Value) *ir.Instruction) (x *ir.Instruction, ok bool) {
	if node.Opcode() != ir.OpcodeWord32Equal {
		return nil, false
	}
	left, right := lookup(node.Arg()), lookup(node.Arg2())
	if right != nil && isIntConstant(right) && right.ConstantValue() == 0 {
		return left, true
	}
	if left != nil && isIntConstant(left) && left.ConstantValue() == 0 {
		return right, true
	}
	return nil, false
}
