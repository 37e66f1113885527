package ir

// BlockID identifies a basic block in the surrounding control-flow graph.
// The graph itself (block list, predecessors/successors, dominance) belongs
// to the mid-IR builder; this pass only carries block ids through Branch and
// Switch targets.
type BlockID uint32

// WriteBarrierKind tells a Store handler whether the stored value may be a
// heap pointer requiring a write barrier, a pre-verified non-pointer value
// that never does, or a value the pass must conservatively assume might be a
// pointer.
type WriteBarrierKind uint8

const (
	// WriteBarrierKindNone means the stored representation cannot hold a
	// pointer (e.g. TypeI8/TypeI16/TypeI32/TypeF32/TypeF64/TypeV128): never
	// emit a barrier.
	WriteBarrierKindNone WriteBarrierKind = iota
	// WriteBarrierKindAssumeValue means the stored value's representation is
	// TypeTagged (might be a small integer or a pointer): emit the
	// conditional barrier sequence.
	WriteBarrierKindAssumeValue
	// WriteBarrierKindFull means the stored value's representation is
	// TypeTaggedPointer (statically known to be a pointer): emit the
	// unconditional barrier sequence.
	WriteBarrierKindFull
)

// CallKind distinguishes the calling convention a Call/TailCall/CallC node
// requires, which determines how Call/Return ABI Lowering marshals
// arguments.
type CallKind uint8

const (
	// CallKindJS is the host VM's own JS-to-JS calling convention.
	CallKindJS CallKind = iota
	// CallKindC is the platform C ABI, used for calls into VM runtime
	// functions and builtins implemented in C.
	CallKindC
)

// Instruction is a read-only view over one mid-IR node: its operator kind,
// its inline parameter payload, its ordered inputs, and its projections.
// Nothing in this package ever mutates an Instruction or extends its
// lifetime past what the surrounding IR already guarantees (see package
// doc); selection rules only read it and record, via the external Compiler,
// that its value has been "defined" into a register.
type Instruction struct {
	id     Value
	opcode Opcode
	block  BlockID

	// args holds the ordered input Values. Most opcodes use 1-3 of them;
	// Arg/Arg2/Arg3 below are thin named accessors over this slice, mirroring
	// ssa.Instruction's own Arg/Arg2/Arg3 accessor split rather than forcing
	// every call site to index a raw slice.
	args []Value

	// Inline parameter payload. Only the field(s) relevant to opcode are
	// meaningful; which ones is determined entirely by opcode, exactly as
	// tetratelabs/wazero's ssa.Instruction packs an opcode-dependent union of
	// fields rather than a separate struct type per opcode.
	constI64   int64
	constF64   float64
	rep        Type
	laneIndex  int8
	shuffle    [16]byte
	wbKind     WriteBarrierKind
	callKind   CallKind
	extName    string
	trueBlock  BlockID
	falseBlock BlockID
	caseBlocks []BlockID

	// projections maps projection index -> the Instruction that represents
	// it, populated by the mid-IR builder (out of scope) before this pass
	// ever sees the node. FindProjection on the external Compiler is the
	// normal way selection rules reach these; the field gives a fake/test
	// Compiler implementation something to walk, and Returns counts from it.
	projections map[int]*Instruction
}

// NewInstruction constructs an Instruction. Exported for use by tests and by
// any harness driving this pass from a source other than a real mid-IR
// builder; production use is expected to come from the external builder
// producing values of this shape, not from direct construction by the
// selector itself.
func NewInstruction(id Value, opcode Opcode, block BlockID, args ...Value) *Instruction {
	return &Instruction{id: id, opcode: opcode, block: block, args: args}
}

// ID returns the Value this instruction defines.
func (i *Instruction) ID() Value { return i.id }

// Opcode returns the node's operator kind.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// Block returns the basic block this node is scheduled into.
func (i *Instruction) Block() BlockID { return i.block }

// Arg returns the first input.
func (i *Instruction) Arg() Value { return i.arg(0) }

// Arg2 returns the second input.
func (i *Instruction) Arg2() Value { return i.arg(1) }

// Arg3 returns the third input.
func (i *Instruction) Arg3() Value { return i.arg(2) }

// Args returns every input, in order. Used by variable-arity nodes (Switch
// case targets aside, which use CaseBlocks/Arg for the index) such as Call.
func (i *Instruction) Args() []Value { return i.args }

func (i *Instruction) arg(n int) Value {
	if n >= len(i.args) {
		return ValueInvalid
	}
	return i.args[n]
}

// Returns reports how many values this node defines: 1 for ordinary nodes, or
// more for nodes with projections (e.g. Int32AddWithOverflow defines the sum
// at projection 0 and the overflow bit at projection 1).
func (i *Instruction) Returns() int {
	if len(i.projections) == 0 {
		return 1
	}
	max := 0
	for idx := range i.projections {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// ConstantValue returns the node's integer constant payload, valid for
// OpcodeInt32Constant/OpcodeInt64Constant/OpcodeExternalConstant-class nodes;
// OpcodeSwitch reuses it as its minimum case value.
func (i *Instruction) ConstantValue() int64 { return i.constI64 }

// SetConstantValue sets the integer constant payload. Construction helper for
// tests/harness use (see NewInstruction doc).
func (i *Instruction) SetConstantValue(v int64) *Instruction { i.constI64 = v; return i }

// ConstantFloat returns the node's float constant payload, valid only for
// OpcodeFloat32Constant/OpcodeFloat64Constant nodes.
func (i *Instruction) ConstantFloat() float64 { return i.constF64 }

// SetConstantFloat sets the float constant payload.
func (i *Instruction) SetConstantFloat(v float64) *Instruction { i.constF64 = v; return i }

// Representation returns the machine representation payload, valid for
// Load/Store/atomic/SIMD-load-store nodes.
func (i *Instruction) Representation() Type { return i.rep }

// SetRepresentation sets the machine representation payload.
func (i *Instruction) SetRepresentation(t Type) *Instruction { i.rep = t; return i }

// LaneIndex returns the lane-index payload, valid for extract/replace-lane
// and single-lane load/store SIMD nodes; OpcodeProjection nodes reuse it as
// their projection index.
func (i *Instruction) LaneIndex() int8 { return i.laneIndex }

// SetLaneIndex sets the lane-index payload.
func (i *Instruction) SetLaneIndex(l int8) *Instruction { i.laneIndex = l; return i }

// ShuffleMask returns the 16-byte shuffle-index payload, valid for
// OpcodeI8x16Shuffle; OpcodeS128Const reuses it as its 16-byte constant.
func (i *Instruction) ShuffleMask() [16]byte { return i.shuffle }

// SetShuffleMask sets the shuffle-index payload.
func (i *Instruction) SetShuffleMask(m [16]byte) *Instruction { i.shuffle = m; return i }

// WriteBarrierKind returns the write-barrier classification payload, valid
// only for OpcodeStore.
func (i *Instruction) WriteBarrierKind() WriteBarrierKind { return i.wbKind }

// SetWriteBarrierKind sets the write-barrier classification payload.
func (i *Instruction) SetWriteBarrierKind(k WriteBarrierKind) *Instruction { i.wbKind = k; return i }

// CallKind returns the calling-convention payload, valid only for
// OpcodeCall/OpcodeTailCall/OpcodeCallC.
func (i *Instruction) CallKind() CallKind { return i.callKind }

// SetCallKind sets the calling-convention payload.
func (i *Instruction) SetCallKind(k CallKind) *Instruction { i.callKind = k; return i }

// ExternalName returns the symbolic name payload, valid only for
// OpcodeExternalConstant (the root-register-relative table this pass
// addresses symbolically and leaves for the host VM to resolve).
func (i *Instruction) ExternalName() string { return i.extName }

// SetExternalName sets the symbolic name payload.
func (i *Instruction) SetExternalName(n string) *Instruction { i.extName = n; return i }

// BranchTargets returns the true/false block payload, valid only for
// OpcodeBranch.
func (i *Instruction) BranchTargets() (trueBlock, falseBlock BlockID) {
	return i.trueBlock, i.falseBlock
}

// SetBranchTargets sets the true/false block payload.
func (i *Instruction) SetBranchTargets(t, f BlockID) *Instruction {
	i.trueBlock, i.falseBlock = t, f
	return i
}

// CaseBlocks returns the case-block payload (last entry is the default),
// valid only for OpcodeSwitch.
func (i *Instruction) CaseBlocks() []BlockID { return i.caseBlocks }

// SetCaseBlocks sets the case-block payload.
func (i *Instruction) SetCaseBlocks(blocks []BlockID) *Instruction { i.caseBlocks = blocks; return i }

// SetProjection records inst as the Instruction representing projection
// index of the receiver. Construction helper; real builders populate this
// before handing the graph to this pass.
func (i *Instruction) SetProjection(index int, inst *Instruction) *Instruction {
	if i.projections == nil {
		i.projections = make(map[int]*Instruction)
	}
	i.projections[index] = inst
	return i
}

// Projection returns the Instruction representing projection index, if any.
func (i *Instruction) Projection(index int) (*Instruction, bool) {
	inst, ok := i.projections[index]
	return inst, ok
}
