package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

var binopOpcode = map[ir.Opcode]Opcode{
	ir.OpcodeInt32Add: OpAdd,
	ir.OpcodeInt32Sub: OpSub,
	ir.OpcodeWord32And: OpAnd,
	ir.OpcodeWord32Or:  OpOr,
	ir.OpcodeWord32Xor: OpXor,
}

var commutative = map[ir.Opcode]bool{
	ir.OpcodeInt32Add:  true,
	ir.OpcodeWord32And: true,
	ir.OpcodeWord32Or:  true,
	ir.OpcodeWord32Xor: true,
}

// lowerALUBinop is the shared VisitBinop routine of spec.md §4.2.1 for the
// plain commutative/non-commutative integer ALU operators, plus the
// Xor/Nor peephole rewrite.
func (m *Machine) lowerALUBinop(node *ir.Instruction) {
	bm := MatchBinop(node, m.lookup)

	if node.Opcode() == ir.OpcodeWord32Xor {
		if rc, ok := rightIsAllOnes(bm.Right); ok && rc {
			m.emitNorPeephole(node, bm.Left)
			return
		}
	}

	m.emitBinop(node, binopOpcode[node.Opcode()], bm, commutative[node.Opcode()], nil)
}

func rightIsAllOnes(n *ir.Instruction) (bool, bool) {
	if n == nil || !isIntConstant(n) {
		return false, false
	}
	return n.ConstantValue() == -1, true
}

// emitNorPeephole implements `Xor(x, -1) -> Nor(x, 0)` and
// `Xor(Or(a, b), -1)` with `b` non-constant `-> Nor(a, b)`.
func (m *Machine) emitNorPeephole(node, left *ir.Instruction) {
	if left != nil && left.Opcode() == ir.OpcodeWord32Or && m.compiler.CanCover(node, left) {
		a, b := m.lookup(left.Arg()), m.lookup(left.Arg2())
		if !isIntConstant(b) {
			m.compiler.MarkLowered(left)
			m.emit(&Instruction{
				Op:      OpNor,
				Outputs: []Operand{m.gen.DefineAsRegister(node)},
				Inputs:  []Operand{m.gen.UseRegister(a), m.gen.UseRegister(b)},
			})
			return
		}
	}
	zero := m.gen.UseImmediate(m.pool, 0)
	m.emit(&Instruction{
		Op:      OpNor,
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
		Inputs:  []Operand{m.gen.UseRegister(left), zero},
	})
}

// emitBinop implements VisitBinop's three-way operand-shape decision
// (spec.md §4.2.1, steps 1-3) and its output-policy rule (step 4).
func (m *Machine) emitBinop(node *ir.Instruction, op Opcode, bm BinopMatch, commutativeOp bool, cont *FlagsContinuation) {
	var inputs []Operand
	if c, ok := bm.RightIsIntConstant(); ok && fitsImmediate(op, c) {
		inputs = []Operand{m.gen.UseRegisterOrImmediateZero(bm.Left), m.gen.UseImmediate(m.pool, c)}
	} else if commutativeOp {
		if c, ok := bm.LeftIsIntConstant(); ok && fitsImmediate(op, c) {
			inputs = []Operand{m.gen.UseRegisterOrImmediateZero(bm.Right), m.gen.UseImmediate(m.pool, c)}
		}
	}
	if inputs == nil {
		inputs = []Operand{m.gen.UseRegister(bm.Left), m.gen.UseRegister(bm.Right)}
	}

	var out Operand
	if cont != nil && cont.IsDeoptOrTrap() {
		out = m.gen.DefineSameAsFirst(node)
	} else {
		out = m.gen.DefineAsRegister(node)
	}
	m.emit(&Instruction{Op: op, Outputs: []Operand{out}, Inputs: inputs, Flags: cont})
}

// lowerShift handles Word32Shl/Shr/Sar, including the mask-fold and
// sign-extend-canonicalization peepholes of spec.md §4.2.1.
func (m *Machine) lowerShift(node *ir.Instruction) {
	x, amount := m.lookup(node.Arg()), m.lookup(node.Arg2())

	switch node.Opcode() {
	case ir.OpcodeWord32Shl:
		if m.tryFoldShiftOfMaskedAnd(node, x, amount) {
			return
		}
	case ir.OpcodeWord32Sar:
		if m.tryFoldSignExtendShift(node, x, amount) {
			return
		}
	}

	op := map[ir.Opcode]Opcode{ir.OpcodeWord32Shl: OpShl32, ir.OpcodeWord32Shr: OpShr32, ir.OpcodeWord32Sar: OpSar32}[node.Opcode()]
	var amt Operand
	if isIntConstant(amount) && fitsImmediate(op, amount.ConstantValue()) {
		amt = m.gen.UseImmediate(m.pool, amount.ConstantValue())
	} else {
		amt = m.gen.UseRegister(amount)
	}
	m.emit(&Instruction{Op: op, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{m.gen.UseRegister(x), amt}})
}

// tryFoldShiftOfMaskedAnd implements:
// `Shl(And(x, mask), k)` where mask is a contiguous bit-run rooted at bit 0
// with width w, 1 <= k <= 31, k + w >= 32 -> drop the mask; emit Shl(x, k).
func (m *Machine) tryFoldShiftOfMaskedAnd(node, inner, amount *ir.Instruction) bool {
	if !isIntConstant(amount) {
		return false
	}
	k := amount.ConstantValue()
	if k < 1 || k > 31 {
		return false
	}
	if inner == nil || inner.Opcode() != ir.OpcodeWord32And || !m.compiler.CanCover(node, inner) {
		return false
	}
	maskNode := m.lookup(inner.Arg2())
	if maskNode == nil || !isIntConstant(maskNode) {
		maskNode = m.lookup(inner.Arg())
	}
	if maskNode == nil || !isIntConstant(maskNode) {
		return false
	}
	w, ok := contiguousMaskWidthFromZero(uint32(maskNode.ConstantValue()))
	if !ok || k+int64(w) < 32 {
		return false
	}
	m.compiler.MarkLowered(inner)
	x := m.lookup(inner.Arg())
	if x == maskNode {
		x = m.lookup(inner.Arg2())
	}
	m.emit(&Instruction{
		Op:      OpShl32,
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
		Inputs:  []Operand{m.gen.UseRegister(x), m.gen.UseImmediate(m.pool, k)},
	})
	return true
}

// contiguousMaskWidthFromZero reports the width of mask if it is a
// contiguous run of set bits rooted at bit 0 (0b0...011...1), e.g.
// 0x0000FFFF has width 16.
func contiguousMaskWidthFromZero(mask uint32) (width int, ok bool) {
	if mask == 0 {
		return 0, false
	}
	w := 0
	for m := mask; m&1 == 1; m >>= 1 {
		w++
	}
	if (uint32(1)<<uint(w))-1 != mask {
		return 0, false
	}
	return w, true
}

// tryFoldSignExtendShift implements:
// `Sar(Shl(x, k), k)` with k in {16, 24} -> SignExtend{Short,Byte}(x).
// `k = 32` -> `Shl(x, 0)` (canonicalize to the zero-extended low word).
func (m *Machine) tryFoldSignExtendShift(node, inner, amount *ir.Instruction) bool {
	if !isIntConstant(amount) {
		return false
	}
	k := amount.ConstantValue()
	if inner == nil || inner.Opcode() != ir.OpcodeWord32Shl || !m.compiler.CanCover(node, inner) {
		return false
	}
	innerAmount := m.lookup(inner.Arg2())
	if innerAmount == nil || !isIntConstant(innerAmount) || innerAmount.ConstantValue() != k {
		return false
	}
	if k != 16 && k != 24 && k != 32 {
		return false
	}
	x := m.lookup(inner.Arg())
	m.compiler.MarkLowered(inner)

	switch k {
	case 16:
		m.emit(&Instruction{Op: OpSignExtendShort, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{m.gen.UseRegister(x)}})
		return true
	case 24:
		m.emit(&Instruction{Op: OpSignExtendByte, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{m.gen.UseRegister(x)}})
		return true
	case 32:
		m.emit(&Instruction{
			Op:      OpShl32,
			Outputs: []Operand{m.gen.DefineAsRegister(node)},
			Inputs:  []Operand{m.gen.UseRegister(x), m.gen.UseImmediate(m.pool, 0)},
		})
		return true
	default:
		return false
	}
}

// lowerTst lowers a standalone Word32Tst that reaches LowerInstr directly
// (i.e. its flags were never consumed by a fusible branch/set user, so it
// must still materialize a boolean).
func (m *Machine) lowerTst(node *ir.Instruction) {
	cont := SetContinuation(CondNotEqual, uint32(node.ID()))
	m.emitTst(node, cont)
}

// lowerMul implements spec.md §4.2.1's `Int32Mul` power-of-two rewrites,
// falling back to a plain register-register multiply.
func (m *Machine) lowerMul(node *ir.Instruction) {
	bm := MatchBinop(node, m.lookup)
	left, right := bm.Left, bm.Right
	x, c, ok := resolveMulConstant(left, right)
	if ok && c > 0 {
		if shift, ok := log2PowerOfTwo(c); ok {
			m.emit(&Instruction{
				Op:      OpShl32,
				Outputs: []Operand{m.gen.DefineAsRegister(node)},
				Inputs:  []Operand{m.gen.UseRegister(x), m.gen.UseImmediate(m.pool, shift)},
			})
			return
		}
		if shift, ok := log2PowerOfTwo(c + 1); ok {
			tmp := m.gen.TempRegister()
			m.emit(&Instruction{Op: OpShl32, Outputs: []Operand{tmp}, Inputs: []Operand{m.gen.UseRegister(x), m.gen.UseImmediate(m.pool, shift)}})
			m.emit(&Instruction{Op: OpSub, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{tmp, m.gen.UseRegister(x)}})
			return
		}
	}
	m.emit(&Instruction{
		Op:      OpMul,
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
		Inputs:  []Operand{m.gen.UseRegister(left), m.gen.UseRegister(right)},
	})
}

func resolveMulConstant(left, right *ir.Instruction) (x *ir.Instruction, c int64, ok bool) {
	if isIntConstant(right) {
		return left, right.ConstantValue(), true
	}
	if isIntConstant(left) {
		return right, left.ConstantValue(), true
	}
	return nil, 0, false
}

func log2PowerOfTwo(c int64) (int64, bool) {
	if c <= 0 || c&(c-1) != 0 {
		return 0, false
	}
	shift := int64(0)
	for v := c; v > 1; v >>= 1 {
		shift++
	}
	return shift, true
}

// lowerDivMod implements spec.md §4.2.1's division/modulo rule: never folds
// constants (this target has no immediate-division form). Signed div/mod
// alias the dividend's register (DefineSameAsFirst), matching this target's
// pseudo-instruction expansion for the INT32_MIN/-1 overflow case; the
// unsigned forms have no such special case and define a fresh register.
func (m *Machine) lowerDivMod(node *ir.Instruction) {
	bm := MatchBinop(node, m.lookup)
	left, right := bm.Left, bm.Right
	op := map[ir.Opcode]Opcode{
		ir.OpcodeInt32Div: OpDiv32, ir.OpcodeUint32Div: OpDivU32,
		ir.OpcodeInt32Mod: OpMod32, ir.OpcodeUint32Mod: OpModU32,
	}[node.Opcode()]

	var out Operand
	if node.Opcode() == ir.OpcodeInt32Div || node.Opcode() == ir.OpcodeInt32Mod {
		out = m.gen.DefineSameAsFirst(node)
	} else {
		out = m.gen.DefineAsRegister(node)
	}
	m.emit(&Instruction{
		Op:      op,
		Outputs: []Operand{out},
		Inputs:  []Operand{m.gen.UseRegister(left), m.gen.UseRegister(right)},
	})
}

// lowerWithOverflow lowers Int32{Add,Sub,Mul}WithOverflow. cont is the
// Overflow continuation supplied by a fused projection-1 consumer
// (lower_compare.go's tryFuseOverflowProjection), or nil if only
// projection-0 (the sum/difference/product) is used, in which case the
// flags continuation is None (spec.md §4.2.1).
func (m *Machine) lowerWithOverflow(node *ir.Instruction, cont *FlagsContinuation) {
	bm := MatchBinop(node, m.lookup)
	op := map[ir.Opcode]Opcode{
		ir.OpcodeInt32AddWithOverflow: OpAddOvf,
		ir.OpcodeInt32SubWithOverflow: OpSubOvf,
		ir.OpcodeInt32MulWithOverflow: OpMulOvf32,
	}[node.Opcode()]

	// Reached directly from LowerInstr (projection-1 unused, or this is
	// projection-0's own definition site): the flags output is discarded.
	if cont == nil {
		cont = NoneContinuation()
	}
	m.emitBinop(node, op, bm, op == OpAddOvf, cont)
}
