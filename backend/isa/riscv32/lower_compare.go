package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

// visitWordCompareZero is C6's entry point (spec.md §4.2.3): it runs the
// negation loop that folds chains of `x == 0` comparisons into a single
// branch polarity, then dispatches to the fusion switch once the loop
// bottoms out at a non-foldable value.
func (m *Machine) visitWordCompareZero(user, value *ir.Instruction, cont *FlagsContinuation) {
	// Negation loop: while CanCover(user, value) and value is
	// Word32Equal(x, 0), fold it away and negate (there is no 64-bit form
	// in this IR).
	for {
		if !m.compiler.CanCover(user, value) {
			break
		}
		inner, ok := IsWordCompareZero(value, m.lookup)
		if !ok || inner == nil {
			break
		}
		m.compiler.MarkLowered(value)
		user, value = value, inner
		cont.Negate()
	}

	if !m.compiler.CanCover(user, value) {
		m.emitCmpZero(value, cont)
		return
	}

	if match, ok := MatchCompare(value, m.lookup); ok {
		switch value.Opcode() {
		case ir.OpcodeFloat32Equal, ir.OpcodeFloat32LessThan, ir.OpcodeFloat32LessThanOrEqual,
			ir.OpcodeFloat64Equal, ir.OpcodeFloat64LessThan, ir.OpcodeFloat64LessThanOrEqual:
			m.visitFloatCompare(match, cont)
		case ir.OpcodeStackPointerGreaterThan:
			m.emitStackPointerCompare(value, cont)
		default:
			m.visitWordCompare(match, cont)
		}
		m.compiler.MarkLowered(value)
		return
	}

	switch value.Opcode() {
	case ir.OpcodeProjection:
		if m.tryFuseOverflowProjection(value, cont) {
			return
		}
	case ir.OpcodeWord32And:
		m.emitTst(value, cont)
		m.compiler.MarkLowered(value)
		return
	}

	m.emitCmpZero(value, cont)
}

// tryFuseOverflowProjection implements spec.md §4.2.3's bullet:
// "Projection(op-with-overflow, 1) and projection-0 is either absent or
// already defined -> recurse into the parent *WithOverflow with an
// Overflow continuation."
func (m *Machine) tryFuseOverflowProjection(value *ir.Instruction, cont *FlagsContinuation) bool {
	if value.LaneIndex() != 1 { // projection index is carried via LaneIndex for Projection nodes.
		return false
	}
	parent := m.lookup(value.Arg())
	if parent == nil {
		return false
	}
	switch parent.Opcode() {
	case ir.OpcodeInt32AddWithOverflow, ir.OpcodeInt32SubWithOverflow, ir.OpcodeInt32MulWithOverflow:
	default:
		return false
	}
	if proj0, ok := m.compiler.FindProjection(parent, 0); ok && !m.compiler.IsDefined(proj0) {
		return false
	}
	overflowCont := DeoptimizeContinuation(CondOverflow, 0, 0)
	if cont.Kind != FlagsNone {
		overflowCont = cont
		overflowCont.Condition = CondOverflow
	}
	m.lowerWithOverflow(parent, overflowCont)
	m.compiler.MarkLowered(value)
	return true
}

// normalizeCompareOperands implements spec.md §4.2.3's "Operand
// normalization in compare": if the right side is not an immediate but the
// left is, swap the operands and commute the continuation, so the
// immediate-bearing operand always lands on the right (the only position
// the CmpS/addi-style encodings accept one).
func (m *Machine) normalizeCompareOperands(bm BinopMatch, cont *FlagsContinuation) (*ir.Instruction, *ir.Instruction) {
	if _, rightIsConst := bm.RightIsIntConstant(); !rightIsConst {
		if _, leftIsConst := bm.LeftIsIntConstant(); leftIsConst {
			cont.Commute()
			return bm.Right, bm.Left
		}
	}
	return bm.Left, bm.Right
}

// overwriteAndNegateIfEqual assigns cond to cont, honoring any inversion the
// negation loop accumulated: if cont's condition is still CondEqual (the
// parity left behind by an odd number of folded `x == 0` layers over the
// NotEqual default a Branch/Set continuation starts from), cond is negated
// before assignment so the outer inversion survives the fusion switch
// (spec.md §4.2.3's "OverwriteAndNegateIfEqual").
func overwriteAndNegateIfEqual(cont *FlagsContinuation, cond Condition) {
	if cont.Condition == CondEqual {
		cond = negated[cond]
	}
	cont.Condition = cond
}

// visitWordCompare emits the integer-compare flags-producing instruction
// for value, honoring the right-side-immediate normalization rule and the
// Set-vs-Branch right-operand register requirement.
func (m *Machine) visitWordCompare(match CompareMatch, cont *FlagsContinuation) {
	overwriteAndNegateIfEqual(cont, match.Cond)
	left, right := m.normalizeCompareOperands(match.Binop(), cont)

	leftOp := m.gen.UseRegister(left)
	var rightOp Operand
	if cont.Kind == FlagsSet {
		// Boolean materialization: the right side must be in a register.
		rightOp = m.gen.UseRegister(right)
	} else {
		rightOp = m.gen.UseOperand(m.pool, right, OpCmp)
	}
	m.emit(&Instruction{Op: OpCmp, Inputs: []Operand{leftOp, rightOp}, Flags: cont})
}

// visitFloatCompare emits a float compare, using the unsigned-less-than
// flag encoding for ordered LessThan/LessThanOrEqual (spec.md §9's "float
// compare polarity" note: this is this target's RISC-V flag-register
// convention, not an oversight).
func (m *Machine) visitFloatCompare(match CompareMatch, cont *FlagsContinuation) {
	overwriteAndNegateIfEqual(cont, match.Cond)
	m.emit(&Instruction{Op: OpCmp, Inputs: []Operand{m.gen.UseRegister(match.Left), m.gen.UseRegister(match.Right)}, Flags: cont})
}

// emitCmpZero emits a plain compare-against-zero when no more specific
// fusion applies.
func (m *Machine) emitCmpZero(value *ir.Instruction, cont *FlagsContinuation) {
	m.emit(&Instruction{Op: OpCmpZero, Inputs: []Operand{m.gen.UseRegister(value)}, Flags: cont})
}

// emitTst emits the dedicated test-and-branch instruction for Word32And
// fused directly into a flags continuation (spec.md §4.2.3's "Word32And ->
// Tst" rule). Per spec.md §4.1's immediate-range table, Tst always keeps
// its immediate operand (if any) on the right.
func (m *Machine) emitTst(value *ir.Instruction, cont *FlagsContinuation) {
	left, right := m.lookup(value.Arg()), m.lookup(value.Arg2())
	if isIntConstant(left) && !isIntConstant(right) {
		left, right = right, left
	}
	m.emit(&Instruction{
		Op:     OpTst,
		Inputs: []Operand{m.gen.UseRegister(left), m.gen.UseOperand(m.pool, right, OpTst)},
		Flags:  cont,
	})
}

// emitStackPointerCompare emits the dedicated stack-pointer-compare opcode
// for StackPointerGreaterThan.
func (m *Machine) emitStackPointerCompare(value *ir.Instruction, cont *FlagsContinuation) {
	limit := m.lookup(value.Arg())
	cont.Condition = CondStackPointerGreaterThan
	m.emit(&Instruction{Op: OpCmpStackPointer, Inputs: []Operand{m.gen.UseRegister(limit)}, Flags: cont})
}
