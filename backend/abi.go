package backend

import (
	"fmt"

	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

// ABIArgKind is the kind of ABI argument/result slot.
type ABIArgKind byte

const (
	// ABIArgKindReg is an argument or result passed in a register.
	ABIArgKindReg ABIArgKind = iota
	// ABIArgKindStack is an argument or result passed on the stack.
	ABIArgKindStack
)

// String implements fmt.Stringer.
func (a ABIArgKind) String() string {
	switch a {
	case ABIArgKindReg:
		return "reg"
	case ABIArgKindStack:
		return "stack"
	default:
		panic("BUG: invalid ABIArgKind")
	}
}

// ABIArg represents either an argument or a result value's location.
type ABIArg struct {
	// Index is the argument's position in the signature.
	Index int
	// Kind says whether Reg or Offset is the live field.
	Kind ABIArgKind
	// Reg is valid when Kind == ABIArgKindReg. Always a real-register-backed VReg.
	Reg regalloc.VReg
	// Offset is valid when Kind == ABIArgKindStack: the byte offset from the
	// start of the argument (or result) stack area.
	Offset int64
	// Type is the argument's IR representation.
	Type ir.Type
}

// String implements fmt.Stringer.
func (a *ABIArg) String() string {
	return fmt.Sprintf("args[%d]: %s", a.Index, a.Kind)
}

// ABIRegInfo supplies the fixed register assignment order a FunctionABI
// draws from: which RealRegs carry integer vs. floating-point/vector
// arguments and results, per the target's calling convention.
type ABIRegInfo interface {
	// ArgsResultsRegs returns the ordered integer and float/vector
	// registers available for argument and result passing.
	ArgsResultsRegs() (argInts, argFloats, resultInts, resultFloats []regalloc.RealReg)
}

// FunctionABI computes and caches argument/result slot layout for one
// function signature (C7, Call/Return ABI Lowering). Two calling
// conventions share this layout algorithm on this target — CallKindJS and
// CallKindC both assign integer arguments to the integer register file, in
// order, spilling to the stack once the register file is exhausted, and
// likewise for float/vector arguments — only the register sets an
// ABIRegInfo supplies differ between them.
type FunctionABI[R ABIRegInfo] struct {
	r           R
	Initialized bool

	Args, Rets                 []ABIArg
	ArgStackSize, RetStackSize int64

	ArgRealRegs []regalloc.VReg
	RetRealRegs []regalloc.VReg
}

// NewFunctionABI constructs a FunctionABI bound to the given register info.
func NewFunctionABI[R ABIRegInfo](r R) *FunctionABI[R] {
	return &FunctionABI[R]{r: r}
}

// Init computes the argument/result layout for sig, overwriting any
// previous layout. Called once per distinct signature seen by the pass;
// callers may reuse a FunctionABI across calls sharing a signature to avoid
// recomputing this layout on every call site.
func (a *FunctionABI[R]) Init(sig *Signature) {
	argInts, argFloats, resultInts, resultFloats := a.r.ArgsResultsRegs()

	if len(a.Rets) < len(sig.Results) {
		a.Rets = make([]ABIArg, len(sig.Results))
	}
	a.Rets = a.Rets[:len(sig.Results)]
	a.RetStackSize = setABIArgs(a.Rets, sig.Results, resultInts, resultFloats)

	if argsNum := len(sig.Params); len(a.Args) < argsNum {
		a.Args = make([]ABIArg, argsNum)
	}
	a.Args = a.Args[:len(sig.Params)]
	a.ArgStackSize = setABIArgs(a.Args, sig.Params, argInts, argFloats)

	a.RetRealRegs = a.RetRealRegs[:0]
	for i := range a.Rets {
		if r := &a.Rets[i]; r.Kind == ABIArgKindReg {
			a.RetRealRegs = append(a.RetRealRegs, r.Reg)
		}
	}
	a.ArgRealRegs = a.ArgRealRegs[:0]
	for i := range a.Args {
		if arg := &a.Args[i]; arg.Kind == ABIArgKindReg {
			a.ArgRealRegs = append(a.ArgRealRegs, arg.Reg)
		}
	}

	a.Initialized = true
}

// setABIArgs assigns each of types a register or a stack slot, in order,
// from ints/floats, and reports the total stack area consumed.
func setABIArgs(s []ABIArg, types []ir.Type, ints, floats []regalloc.RealReg) (stackSize int64) {
	il, fl := len(ints), len(floats)

	var stackOffset int64
	intIdx, floatIdx := 0, 0
	for i, typ := range types {
		arg := &s[i]
		arg.Index = i
		arg.Type = typ
		if typ.IsInt() {
			if intIdx >= il {
				arg.Kind = ABIArgKindStack
				const slotSize = 4 // RISC-V 32 native word size.
				arg.Offset = stackOffset
				stackOffset += slotSize
			} else {
				arg.Kind = ABIArgKindReg
				arg.Reg = regalloc.FromRealReg(ints[intIdx], regalloc.RegTypeInt)
				intIdx++
			}
		} else {
			if floatIdx >= fl {
				arg.Kind = ABIArgKindStack
				slotSize := int64(8)
				if typ.Bits() == 128 {
					slotSize = 16
				}
				arg.Offset = stackOffset
				stackOffset += slotSize
			} else {
				arg.Kind = ABIArgKindReg
				arg.Reg = regalloc.FromRealReg(floats[floatIdx], regalloc.RegTypeFloat)
				floatIdx++
			}
		}
	}
	return stackOffset
}

// AlignedArgResultStackSlotSize returns the total argument+result stack area
// size, rounded up to RISC-V's 16-byte stack alignment requirement.
func (a *FunctionABI[R]) AlignedArgResultStackSlotSize() int64 {
	size := a.RetStackSize + a.ArgStackSize
	return (size + 15) &^ 15
}

// ArgSlots returns the computed argument slot layout.
func (a *FunctionABI[R]) ArgSlots() []ABIArg { return a.Args }

// RetSlots returns the computed result slot layout.
func (a *FunctionABI[R]) RetSlots() []ABIArg { return a.Rets }

// ABI is the type-erased view of a FunctionABI that Machine.SetCurrentABI
// accepts, since backend.Machine cannot itself be generic over the concrete
// ABIRegInfo each target supplies.
type ABI interface {
	ArgSlots() []ABIArg
	RetSlots() []ABIArg
	AlignedArgResultStackSlotSize() int64
}
