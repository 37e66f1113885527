package riscv32

import (
	"strings"

	"github.com/riscv-collab/riscv32isel/backend"
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// Register file layout for the default ABI: the integer/float argument and
// result registers this target's calling convention assigns, in order.
// Concrete RealReg numbers are opaque to this package (the register
// allocator owns the mapping to actual x0-x31/f0-f31); only their relative
// order within the argument-passing sequence matters here.
var (
	defaultArgInts    = []regalloc.RealReg{1, 2, 3, 4, 5, 6, 7, 8}
	defaultArgFloats  = []regalloc.RealReg{9, 10, 11, 12, 13, 14, 15, 16}
	defaultRetInts    = []regalloc.RealReg{1, 2}
	defaultRetFloats  = []regalloc.RealReg{9, 10}
	zeroReg           = regalloc.RealReg(0)
	stackPointerReg   = regalloc.RealReg(17)
)

// Machine is the RISC-V 32-bit backend.Machine implementation: the
// per-function mutable state spec.md §3 names (the is-defined set, the
// frame handle, the instruction sequence, capability flags) plus the
// dispatcher that drives C1-C8 against one IR function's worth of nodes.
type Machine struct {
	compiler backend.Compiler
	flags    Flags
	gen      *OperandGenerator
	pool     *ConstantPool
	frame    backend.Frame

	rootResolver RootOffsetResolver

	abi backend.ABI

	seq []*Instruction

	// defined tracks which node ids have already produced a virtual
	// register during this walk (spec.md §3's "is defined" set), backing
	// IsDefined-style queries this package itself needs (distinct from, but
	// analogous to, the external Compiler.IsDefined).
	defined map[ir.Value]bool
}

// NewMachine constructs a Machine. rootResolver may be nil if the embedding
// pipeline has no external-reference table available yet (RootImm addresses
// then never fire, and every load/store falls through to rules 2/3 of
// spec.md §4.2.2).
func NewMachine(flags Flags, rootResolver RootOffsetResolver) *Machine {
	m := &Machine{flags: flags, rootResolver: rootResolver, pool: &ConstantPool{}}
	return m
}

// SetCompiler implements backend.Machine.
func (m *Machine) SetCompiler(c backend.Compiler) {
	m.compiler = c
	m.gen = NewOperandGenerator(c)
}

// SetCurrentABI implements backend.Machine.
func (m *Machine) SetCurrentABI(abi backend.ABI) { m.abi = abi }

// StartBlock implements backend.Machine.
func (m *Machine) StartBlock(ir.BlockID) {}

// EndBlock implements backend.Machine.
func (m *Machine) EndBlock() {}

// Reset implements backend.Machine: clears all per-pass state so one
// Machine value may compile many functions in sequence from a pooled
// allocator (spec.md §5's scoped-arena reuse model; see SPEC_FULL.md §4.5).
func (m *Machine) Reset() {
	m.seq = m.seq[:0]
	for k := range m.defined {
		delete(m.defined, k)
	}
	m.pool.Reset()
	m.abi = nil
	m.gen.Reset()
}

// Format implements backend.Machine: a human-readable dump of the emitted
// instruction stream, used by tests to assert on lowering output (spec.md
// §8's worked examples); never used by production code.
func (m *Machine) Format() string {
	var b strings.Builder
	for _, inst := range m.seq {
		b.WriteString(inst.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ArgsResultsRegs implements backend.Machine and backend.ABIRegInfo.
func (m *Machine) ArgsResultsRegs() (argInts, argFloats, resultInts, resultFloats []regalloc.RealReg) {
	return defaultArgInts, defaultArgFloats, defaultRetInts, defaultRetFloats
}

// Capabilities implements backend.Machine (C8, Capability Advertisement).
func (m *Machine) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		UnalignedLoadStore: m.flags.HasUnalignedAccess,
		WriteBarriers:      m.flags.EnableWriteBarriers,
		Atomics64BitPair:   false, // PairAdd/Sub/And/Or/Xor/Exchange/CompareExchange are unimplemented, spec.md §4.2.5.
		SwitchJumpTable:    m.flags.EnableSwitchJumpTable,
		// Word32ShiftIsSafe: Sll/Srl/Sra mask their shift amount to the
		// low 5 bits in hardware, so lowerShift never needs to emit an
		// explicit mask ahead of the shift instruction.
		Word32ShiftIsSafe: true,
		// Int32DivIsSafe/Uint32DivIsSafe: Div/Divu/Rem/Remu are defined for
		// divide-by-zero and the INT32_MIN/-1 overflow case in hardware
		// (spec.md §4.2.1), so lowerDivMod never needs to emit a guard
		// sequence around the bare instruction.
		Int32DivIsSafe:  true,
		Uint32DivIsSafe: true,
		// Float32Round{Down,Up,Truncate,TiesEven}: this target has no
		// Float32Round lowering (it rejects the Float64Round family
		// outright, spec.md §4.2.9), so none of these are supported.
		Float32RoundDown:     false,
		Float32RoundUp:       false,
		Float32RoundTruncate: false,
		Float32RoundTiesEven: false,
	}
}

// InsertMove implements backend.Machine.
func (m *Machine) InsertMove(dst, src regalloc.VReg, typ ir.Type) {
	m.emit(&Instruction{
		Op:      OpMove,
		Outputs: []Operand{UnallocatedOperand(PolicyAnyRegister, dst)},
		Inputs:  []Operand{UnallocatedOperand(PolicyAnyRegister, src)},
	})
}

// InsertReturn implements backend.Machine.
func (m *Machine) InsertReturn() {
	m.emit(&Instruction{Op: OpReturn})
}

// InsertLoadConstantBlockArg implements backend.Machine.
func (m *Machine) InsertLoadConstantBlockArg(instr *ir.Instruction, vr regalloc.VReg) {
	idx := m.pool.InternInt(instr.ConstantValue())
	m.emit(&Instruction{
		Op:      OpLoadImmediate,
		Outputs: []Operand{UnallocatedOperand(PolicyAnyRegister, vr)},
		Inputs:  []Operand{ImmediateOperand(idx)},
	})
}

// LowerSingleBranch implements backend.Machine.
func (m *Machine) LowerSingleBranch(b *ir.Instruction) {
	tb, _ := b.BranchTargets()
	m.emit(&Instruction{Op: OpJump, Misc: uint32(tb)})
}

// LowerConditionalBranch implements backend.Machine.
func (m *Machine) LowerConditionalBranch(b *ir.Instruction) {
	tb, fb := b.BranchTargets()
	cond := m.lookup(b.Arg())
	cont := BranchContinuation(CondNotEqual, uint32(tb), uint32(fb))
	m.visitWordCompareZero(b, cond, cont)
}

// emit appends inst to the instruction sequence (spec.md §3's append-only
// emitter, single-writer per §5).
func (m *Machine) emit(inst *Instruction) {
	m.seq = append(m.seq, inst)
}

// lookup resolves v back to the Instruction that defines it, via the
// external Compiler (mirrors ssa.Builder.ValueDefinition in
// tetratelabs/wazero: the mid-IR builder, not this pass, owns the
// value->definition index).
func (m *Machine) lookup(v ir.Value) *ir.Instruction {
	if !v.Valid() {
		return nil
	}
	return m.compiler.ValueDefinition(v).Instr
}

func (m *Machine) markDefined(node *ir.Instruction) {
	if m.defined == nil {
		m.defined = make(map[ir.Value]bool)
	}
	m.defined[node.ID()] = true
	m.compiler.MarkLowered(node)
}

// LowerInstr is the main dispatcher (spec.md §2's "large closed-form
// switch" / §9's "large closed-world dispatch" design note): one call per
// IR instruction, in reverse scheduling order. A single call may lower more
// than one IR node when a peephole fusion rule folds producers into their
// consumer — those folded producer nodes are marked lowered via
// Compiler.MarkLowered so the driver's walk skips emitting them again.
func (m *Machine) LowerInstr(node *ir.Instruction) {
	switch op := node.Opcode(); op {
	case ir.OpcodeInt32Add, ir.OpcodeInt32Sub, ir.OpcodeWord32And, ir.OpcodeWord32Or, ir.OpcodeWord32Xor:
		m.lowerALUBinop(node)
	case ir.OpcodeInt32Mul:
		m.lowerMul(node)
	case ir.OpcodeInt32Div, ir.OpcodeUint32Div, ir.OpcodeInt32Mod, ir.OpcodeUint32Mod:
		m.lowerDivMod(node)
	case ir.OpcodeInt32AddWithOverflow, ir.OpcodeInt32SubWithOverflow, ir.OpcodeInt32MulWithOverflow:
		m.lowerWithOverflow(node, nil)
	case ir.OpcodeWord32Shl, ir.OpcodeWord32Shr, ir.OpcodeWord32Sar:
		m.lowerShift(node)
	case ir.OpcodeWord32Tst:
		m.lowerTst(node)

	case ir.OpcodeWord32Rol, ir.OpcodeWord32ReverseBits, ir.OpcodeWord64ReverseBytes,
		ir.OpcodeSimd128ReverseBytes, ir.OpcodeInt32AbsWithOverflow, ir.OpcodeInt64AbsWithOverflow,
		ir.OpcodeFloat64RoundTiesAway, ir.OpcodeFloat64RoundDown, ir.OpcodeFloat64RoundUp,
		ir.OpcodeFloat64RoundTruncate, ir.OpcodeFloat64RoundTiesEven,
		ir.OpcodeProtectedLoad, ir.OpcodeProtectedStore:
		unimplemented(node) // spec.md §4.2.9: architecturally unsupported on this target.

	case ir.OpcodeLoad, ir.OpcodeUnalignedLoad:
		m.lowerLoad(node)
	case ir.OpcodeStore, ir.OpcodeUnalignedStore:
		m.lowerStore(node)

	case ir.OpcodeWord32Equal, ir.OpcodeInt32LessThan, ir.OpcodeInt32LessThanOrEqual,
		ir.OpcodeUint32LessThan, ir.OpcodeUint32LessThanOrEqual,
		ir.OpcodeFloat32Equal, ir.OpcodeFloat32LessThan, ir.OpcodeFloat32LessThanOrEqual,
		ir.OpcodeFloat64Equal, ir.OpcodeFloat64LessThan, ir.OpcodeFloat64LessThanOrEqual,
		ir.OpcodeStackPointerGreaterThan:
		// CondNotEqual is the Set continuation's neutral starting condition,
		// matching LowerConditionalBranch's Branch continuation: zero folds
		// in the negation loop must leave overwriteAndNegateIfEqual a no-op.
		m.visitWordCompareZero(node, node, SetContinuation(CondNotEqual, uint32(node.ID())))

	case ir.OpcodeSwitch:
		m.lowerSwitch(node)

	case ir.OpcodeWord32AtomicLoad, ir.OpcodeWord32AtomicStore, ir.OpcodeWord32AtomicExchange,
		ir.OpcodeWord32AtomicCompareExchange, ir.OpcodeWord32AtomicAdd, ir.OpcodeWord32AtomicSub,
		ir.OpcodeWord32AtomicAnd, ir.OpcodeWord32AtomicOr, ir.OpcodeWord32AtomicXor:
		m.lowerAtomic(node)
	case ir.OpcodeWord32PairAtomicLoad, ir.OpcodeWord32PairAtomicStore:
		m.lowerPairAtomic(node)
	case ir.OpcodeWord32PairAtomicAdd, ir.OpcodeWord32PairAtomicSub, ir.OpcodeWord32PairAtomicAnd,
		ir.OpcodeWord32PairAtomicOr, ir.OpcodeWord32PairAtomicXor, ir.OpcodeWord32PairAtomicExchange,
		ir.OpcodeWord32PairAtomicCompareExchange:
		unimplemented(node) // spec.md §4.2.5: declared unimplemented in the source.

	case ir.OpcodeInt32PairAdd, ir.OpcodeInt32PairSub, ir.OpcodeInt32PairMul,
		ir.OpcodeInt32PairShl, ir.OpcodeInt32PairShr, ir.OpcodeInt32PairSar:
		m.lowerPairArithmetic(node)

	case ir.OpcodeF32x4Add, ir.OpcodeF64x2Add, ir.OpcodeI32x4Add, ir.OpcodeI32x4Sub, ir.OpcodeI32x4Mul:
		m.lowerSimdBinop(node)
	case ir.OpcodeI16x8ExtMulLowI8x16S, ir.OpcodeI16x8ExtMulHighI8x16S,
		ir.OpcodeI32x4ExtMulLowI16x8U, ir.OpcodeI32x4ExtMulHighI16x8U,
		ir.OpcodeI64x2ExtMulLowI32x4S, ir.OpcodeI64x2ExtMulHighI32x4S:
		m.lowerExtMul(node)
	case ir.OpcodeI8x16Shuffle:
		m.lowerShuffle(node)
	case ir.OpcodeI8x16Swizzle:
		m.lowerSwizzle(node)
	case ir.OpcodeS128Const:
		m.lowerS128Const(node)
	case ir.OpcodeS128Load, ir.OpcodeS128Store, ir.OpcodeS128LoadSplat, ir.OpcodeS128Load32Zero,
		ir.OpcodeS128Load64Zero, ir.OpcodeS128Load64ExtendS, ir.OpcodeS128Load64ExtendU,
		ir.OpcodeS128LoadLane, ir.OpcodeS128StoreLane:
		m.lowerSimdLoadStore(node)

	case ir.OpcodeCall, ir.OpcodeCallC, ir.OpcodeTailCall:
		m.lowerCall(node)

	case ir.OpcodeInt32Constant, ir.OpcodeInt64Constant, ir.OpcodeFloat32Constant,
		ir.OpcodeFloat64Constant, ir.OpcodeExternalConstant:
		// Constants are folded into their consumers' immediate operands
		// wherever CanCover/UseOperand allows; a constant reaching LowerInstr
		// directly (used by more than one consumer, or outliving an
		// immediate's range) is materialized on its own via LoadImmediate.
		m.lowerConstant(node)

	case ir.OpcodeSignExtendWord8ToInt32, ir.OpcodeSignExtendWord16ToInt32,
		ir.OpcodeZeroExtendWord8ToInt32, ir.OpcodeZeroExtendWord16ToInt32:
		m.lowerExtend(node)

	case ir.OpcodeProjection:
		// Projections are consumed directly by their parent's fused handler
		// (e.g. the overflow bit of an *WithOverflow op, or a pair op's high
		// half); reaching here means the projection's parent was already
		// lowered and marked, so this is a no-op.

	default:
		unimplemented(node)
	}
	m.markDefined(node)
}

func (m *Machine) lowerConstant(node *ir.Instruction) {
	switch node.Opcode() {
	case ir.OpcodeInt32Constant, ir.OpcodeInt64Constant:
		idx := m.pool.InternInt(node.ConstantValue())
		m.emit(&Instruction{Op: OpLoadImmediate, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{ImmediateOperand(idx)}})
	case ir.OpcodeFloat32Constant, ir.OpcodeFloat64Constant:
		idx := m.pool.InternFloat(node.ConstantFloat())
		m.emit(&Instruction{Op: OpLoadImmediate, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{ImmediateOperand(idx)}})
	case ir.OpcodeExternalConstant:
		m.emit(&Instruction{Op: OpLoadImmediate, Outputs: []Operand{m.gen.DefineAsRegister(node)}})
	}
}

func (m *Machine) lowerExtend(node *ir.Instruction) {
	x := m.gen.UseRegister(m.lookup(node.Arg()))
	var op Opcode
	switch node.Opcode() {
	case ir.OpcodeSignExtendWord8ToInt32:
		op = OpSignExtendByte
	case ir.OpcodeSignExtendWord16ToInt32:
		op = OpSignExtendShort
	default:
		// Zero-extension has no dedicated opcode on this target: it is a
		// masked AND against the register. The 16-bit mask (0xffff) exceeds
		// the ALU's signed-12-bit immediate field (spec.md §4.1's table), so
		// it is first materialized into a scratch register via
		// LoadImmediate, then ANDed in register form.
		mask := zeroExtendMask(node.Opcode())
		if fitsImmediate(OpAnd, mask) {
			idx := m.pool.InternInt(mask)
			m.emit(&Instruction{Op: OpAnd, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{x, ImmediateOperand(idx)}})
			return
		}
		tmp := m.gen.TempRegister()
		idx := m.pool.InternInt(mask)
		m.emit(&Instruction{Op: OpLoadImmediate, Outputs: []Operand{tmp}, Inputs: []Operand{ImmediateOperand(idx)}})
		m.emit(&Instruction{Op: OpAnd, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{x, tmp}})
		return
	}
	m.emit(&Instruction{Op: op, Outputs: []Operand{m.gen.DefineAsRegister(node)}, Inputs: []Operand{x}})
}

func zeroExtendMask(op ir.Opcode) int64 {
	if op == ir.OpcodeZeroExtendWord8ToInt32 {
		return 0xff
	}
	return 0xffff
}
