package riscv32

import "github.com/riscv-collab/riscv32isel/ir"

// simdBinopMisc tags OpVectorBinop's Misc field with which table-driven
// vector opcode to emit (spec.md §4.2.7's "unary/binary/shift/ternary SIMD"
// shape: a one-to-one mapping from IR kind to vector opcode, not a family of
// dedicated Go opcodes, since the architectural encoding differs only in
// this one field).
const (
	simdOpF32x4Add uint32 = iota
	simdOpF64x2Add
	simdOpI32x4Add
	simdOpI32x4Sub
	simdOpI32x4Mul
)

var simdBinopTable = map[ir.Opcode]uint32{
	ir.OpcodeF32x4Add: simdOpF32x4Add,
	ir.OpcodeF64x2Add: simdOpF64x2Add,
	ir.OpcodeI32x4Add: simdOpI32x4Add,
	ir.OpcodeI32x4Sub: simdOpI32x4Sub,
	ir.OpcodeI32x4Mul: simdOpI32x4Mul,
}

// lowerSimdBinop implements the table-driven one-to-one binop shape.
func (m *Machine) lowerSimdBinop(node *ir.Instruction) {
	left, right := m.lookup(node.Arg()), m.lookup(node.Arg2())
	m.emit(&Instruction{
		Op:      OpVectorBinop,
		Misc:    simdBinopTable[node.Opcode()],
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
		Inputs:  []Operand{m.gen.UseRegister(left), m.gen.UseRegister(right)},
	})
}

// extMulInfo names whether an ExtMul* opcode is signed or unsigned, and the
// element width (in bits) of its *narrow* operand, needed to compute the
// High variant's Vslidedown amount (VLEN / element-width / 2).
type extMulInfo struct {
	signed      bool
	high        bool
	elementBits int
}

var extMulTable = map[ir.Opcode]extMulInfo{
	ir.OpcodeI16x8ExtMulLowI8x16S:   {signed: true, high: false, elementBits: 8},
	ir.OpcodeI16x8ExtMulHighI8x16S:  {signed: true, high: true, elementBits: 8},
	ir.OpcodeI32x4ExtMulLowI16x8U:   {signed: false, high: false, elementBits: 16},
	ir.OpcodeI32x4ExtMulHighI16x8U:  {signed: false, high: true, elementBits: 16},
	ir.OpcodeI64x2ExtMulLowI32x4S:   {signed: true, high: false, elementBits: 32},
	ir.OpcodeI64x2ExtMulHighI32x4S:  {signed: true, high: true, elementBits: 32},
}

// vlenBits is this target's fixed vector register length (spec.md §4.2.7's
// VLEN term); a 128-bit SIMD unit built on a 128-bit vector register file.
const vlenBits = 128

// lowerExtMul implements spec.md §4.2.7's extended-multiply-pair shape:
// Vwmul/Vwmulu over the low or high half of each input, with the High
// variants first sliding each input down by VLEN/element-width/2 lanes.
func (m *Machine) lowerExtMul(node *ir.Instruction) {
	info := extMulTable[node.Opcode()]
	left, right := m.lookup(node.Arg()), m.lookup(node.Arg2())
	leftOp, rightOp := m.gen.UseRegister(left), m.gen.UseRegister(right)

	if info.high {
		slideAmount := vlenBits / info.elementBits / 2
		leftTmp, rightTmp := m.gen.TempSimd128Register(), m.gen.TempSimd128Register()
		m.emit(&Instruction{Op: OpVslidedown, Outputs: []Operand{leftTmp}, Inputs: []Operand{leftOp, m.gen.UseImmediate(m.pool, int64(slideAmount))}})
		m.emit(&Instruction{Op: OpVslidedown, Outputs: []Operand{rightTmp}, Inputs: []Operand{rightOp, m.gen.UseImmediate(m.pool, int64(slideAmount))}})
		leftOp, rightOp = leftTmp, rightTmp
	}

	op := OpVwmulu
	if info.signed {
		op = OpVwmul
	}
	m.emit(&Instruction{Op: op, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{leftOp, rightOp}})
}

// lowerShuffle implements spec.md §4.2.7's shuffle shape: ShuffleMask is
// taken as is (no canonicalization or swizzle detection is done) as the
// 16-byte permutation this target always emits through
// its Vrgather-backed fallback path (spec.md §9: no dedicated narrow-shuffle
// opcode family, one lowering for every permutation), packed as four 32-bit
// immediates of 4 lanes each.
func (m *Machine) lowerShuffle(node *ir.Instruction) {
	left, right := m.lookup(node.Arg()), m.lookup(node.Arg2())
	mask := node.ShuffleMask()
	var packed [4]int64
	for word := 0; word < 4; word++ {
		var v int64
		for lane := 0; lane < 4; lane++ {
			v |= int64(mask[word*4+lane]) << (8 * lane)
		}
		packed[word] = v
	}
	inputs := []Operand{m.gen.UseRegister(left), m.gen.UseRegister(right)}
	for _, v := range packed {
		inputs = append(inputs, m.gen.UseImmediate(m.pool, v))
	}
	m.emit(&Instruction{Op: OpI8x16Shuffle, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: inputs})
}

// lowerSwizzle implements `I8x16Swizzle -> Vrgather`.
func (m *Machine) lowerSwizzle(node *ir.Instruction) {
	table, indices := m.lookup(node.Arg()), m.lookup(node.Arg2())
	m.emit(&Instruction{
		Op:      OpVrgather,
		Outputs: []Operand{m.gen.DefineAsRegister(node)},
		Inputs:  []Operand{m.gen.UseRegister(table), m.gen.UseRegister(indices)},
	})
}

// lowerS128Const implements spec.md §4.2.7's constant shape: all-zero and
// all-ones get their own dedicated opcodes, everything else is four 32-bit
// immediates via S128Const.
func (m *Machine) lowerS128Const(node *ir.Instruction) {
	bytes := node.ShuffleMask() // reused as the 16-byte constant payload.
	switch {
	case allBytesEqual(bytes, 0x00):
		m.emit(&Instruction{Op: OpS128Zero, Outputs: []Operand{m.gen.DefineAsRegister(node)}})
	case allBytesEqual(bytes, 0xff):
		m.emit(&Instruction{Op: OpS128AllOnes, Outputs: []Operand{m.gen.DefineAsRegister(node)}})
	default:
		var inputs []Operand
		for word := 0; word < 4; word++ {
			var v int64
			for lane := 0; lane < 4; lane++ {
				v |= int64(bytes[word*4+lane]) << (8 * lane)
			}
			inputs = append(inputs, m.gen.UseImmediate(m.pool, v))
		}
		m.emit(&Instruction{Op: OpS128Const, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: inputs})
	}
}

func allBytesEqual(b [16]byte, v byte) bool {
	for _, x := range b {
		if x != v {
			return false
		}
	}
	return true
}

var simdLoadStoreOpcode = map[ir.Opcode]Opcode{
	ir.OpcodeS128LoadSplat:      OpS128LoadSplat,
	ir.OpcodeS128Load32Zero:     OpS128Load32Zero,
	ir.OpcodeS128Load64Zero:     OpS128Load64Zero,
	ir.OpcodeS128Load64ExtendS:  OpS128Load64ExtendS,
	ir.OpcodeS128Load64ExtendU:  OpS128Load64ExtendU,
	ir.OpcodeS128LoadLane:       OpS128LoadLane,
	ir.OpcodeS128StoreLane:      OpS128StoreLane,
}

// elementWidthAndLMUL derives the element-width tag and LMUL for the
// load-transform/load-lane/store-lane family from the node's machine
// representation. lowerSimdLoadStore packs both into the instruction's Misc
// field, not into immediate operands.
func elementWidthAndLMUL(t ir.Type) (ElementWidth, LMUL) {
	switch t {
	case ir.TypeI8:
		return E8, LMULMF2
	case ir.TypeI16:
		return E16, LMULMF2
	case ir.TypeI32, ir.TypeF32:
		return E32, LMULM1
	default:
		return E64, LMULM2
	}
}

// lowerSimdLoadStore implements spec.md §4.2.7's load-transform/load-lane/
// store-lane shape, plus the plain S128Load/S128Store pair, all addressed
// through the shared addressing synthesizer (C4).
func (m *Machine) lowerSimdLoadStore(node *ir.Instruction) {
	switch node.Opcode() {
	case ir.OpcodeS128Load:
		m.lowerLoad(node)
		return
	case ir.OpcodeS128Store:
		m.lowerStore(node)
		return
	}

	base, index := m.lookup(node.Arg()), m.lookup(node.Arg2())
	op := simdLoadStoreOpcode[node.Opcode()]
	addr := m.synthesizeAddress(base, index, op)
	if addr.Extra != nil {
		m.emit(addr.Extra)
	}
	ew, lmul := elementWidthAndLMUL(node.Representation())
	misc := uint32(ew) | uint32(lmul)<<2 | uint32(node.LaneIndex())<<4

	inst := &Instruction{Op: op, Mode: addr.Mode, Misc: misc}
	addrInputs := m.atomicAddressInputs(addr) // same base/index shape as the atomic family.
	if node.Opcode() == ir.OpcodeS128StoreLane {
		value := m.lookup(node.Arg3())
		inst.Inputs = append(addrInputs, m.gen.UseRegister(value))
	} else {
		inst.Inputs = addrInputs
		if node.Opcode() == ir.OpcodeS128LoadLane {
			existing := m.lookup(node.Arg3())
			inst.Inputs = append(inst.Inputs, m.gen.UseRegister(existing))
		}
		inst.Outputs = []Operand{m.gen.DefineAsRegister(node)}
	}
	m.emit(inst)
}
