package riscv32

import (
	"fmt"

	"github.com/riscv-collab/riscv32isel/internal/vmapi"
)

// Condition is a flags-register predicate, the full set spec.md §3 names.
type Condition uint8

const (
	CondEqual Condition = iota
	CondNotEqual
	CondSignedLessThan
	CondSignedLessThanOrEqual
	CondSignedGreaterThan
	CondSignedGreaterThanOrEqual
	CondUnsignedLessThan
	CondUnsignedLessThanOrEqual
	CondUnsignedGreaterThan
	CondUnsignedGreaterThanOrEqual
	CondOverflow
	CondNotOverflow
	CondStackPointerGreaterThan
)

// String implements fmt.Stringer.
func (c Condition) String() string {
	switch c {
	case CondEqual:
		return "eq"
	case CondNotEqual:
		return "ne"
	case CondSignedLessThan:
		return "slt"
	case CondSignedLessThanOrEqual:
		return "sle"
	case CondSignedGreaterThan:
		return "sgt"
	case CondSignedGreaterThanOrEqual:
		return "sge"
	case CondUnsignedLessThan:
		return "ult"
	case CondUnsignedLessThanOrEqual:
		return "ule"
	case CondUnsignedGreaterThan:
		return "ugt"
	case CondUnsignedGreaterThanOrEqual:
		return "uge"
	case CondOverflow:
		return "ovf"
	case CondNotOverflow:
		return "novf"
	case CondStackPointerGreaterThan:
		return "sp.gt"
	default:
		return "cond(?)"
	}
}

// negated maps each Condition to its logical negation, used by Negate.
var negated = map[Condition]Condition{
	CondEqual:                      CondNotEqual,
	CondNotEqual:                   CondEqual,
	CondSignedLessThan:             CondSignedGreaterThanOrEqual,
	CondSignedLessThanOrEqual:      CondSignedGreaterThan,
	CondSignedGreaterThan:          CondSignedLessThanOrEqual,
	CondSignedGreaterThanOrEqual:   CondSignedLessThan,
	CondUnsignedLessThan:           CondUnsignedGreaterThanOrEqual,
	CondUnsignedLessThanOrEqual:    CondUnsignedGreaterThan,
	CondUnsignedGreaterThan:        CondUnsignedLessThanOrEqual,
	CondUnsignedGreaterThanOrEqual: CondUnsignedLessThan,
	CondOverflow:                   CondNotOverflow,
	CondNotOverflow:                CondOverflow,
	CondStackPointerGreaterThan:    CondStackPointerGreaterThan, // has no meaningful negation; left as identity.
}

// commuted maps each Condition to the condition that holds when its two
// operands are swapped.
var commuted = map[Condition]Condition{
	CondEqual:                      CondEqual,
	CondNotEqual:                   CondNotEqual,
	CondSignedLessThan:             CondSignedGreaterThan,
	CondSignedLessThanOrEqual:      CondSignedGreaterThanOrEqual,
	CondSignedGreaterThan:          CondSignedLessThan,
	CondSignedGreaterThanOrEqual:   CondSignedLessThanOrEqual,
	CondUnsignedLessThan:           CondUnsignedGreaterThan,
	CondUnsignedLessThanOrEqual:    CondUnsignedGreaterThanOrEqual,
	CondUnsignedGreaterThan:        CondUnsignedLessThan,
	CondUnsignedGreaterThanOrEqual: CondUnsignedLessThanOrEqual,
	CondOverflow:                   CondOverflow,
	CondNotOverflow:                CondNotOverflow,
}

// FlagsContinuationKind is the tag of the FlagsContinuation sum type,
// spec.md §3's four variants plus None.
type FlagsContinuationKind uint8

const (
	FlagsNone FlagsContinuationKind = iota
	FlagsSet
	FlagsBranch
	FlagsDeoptimize
	FlagsTrap
)

// FlagsContinuation is how a comparison's flags output is consumed: folded
// straight into a boolean materialization, a branch, a deoptimization, or a
// trap. Exactly one comparison-producing instruction carries a non-nil
// FlagsContinuation; everything downstream of it (VisitWordCompareZero's
// negation loop and fusion switch, C6) mutates it in place via Negate/
// Commute rather than allocating a new one, so that folding a chain of
// negations costs O(1) per step.
type FlagsContinuation struct {
	Kind      FlagsContinuationKind
	Condition Condition

	// Set: materialize into DestVReg.
	DestVReg uint32

	// Branch: target blocks.
	TrueBlock, FalseBlock uint32

	// Deoptimize: reason + feedback slot.
	DeoptReason vmapi.DeoptReason
	Feedback    vmapi.FeedbackSlot

	// Trap: trap id.
	TrapID vmapi.TrapID
}

// NoneContinuation returns a continuation for a comparison whose flags are
// never consumed (the comparison's boolean result is produced directly into
// a register some other way).
func NoneContinuation() *FlagsContinuation {
	return &FlagsContinuation{Kind: FlagsNone}
}

// SetContinuation returns a continuation that materializes cond into dest as
// a 0/1 value.
func SetContinuation(cond Condition, dest uint32) *FlagsContinuation {
	return &FlagsContinuation{Kind: FlagsSet, Condition: cond, DestVReg: dest}
}

// BranchContinuation returns a continuation that branches to trueBlock if
// cond holds, falseBlock otherwise.
func BranchContinuation(cond Condition, trueBlock, falseBlock uint32) *FlagsContinuation {
	return &FlagsContinuation{Kind: FlagsBranch, Condition: cond, TrueBlock: trueBlock, FalseBlock: falseBlock}
}

// DeoptimizeContinuation returns a continuation that bails to a slower tier
// when cond holds.
func DeoptimizeContinuation(cond Condition, reason vmapi.DeoptReason, feedback vmapi.FeedbackSlot) *FlagsContinuation {
	return &FlagsContinuation{Kind: FlagsDeoptimize, Condition: cond, DeoptReason: reason, Feedback: feedback}
}

// TrapContinuation returns a continuation that traps when cond holds.
func TrapContinuation(cond Condition, trap vmapi.TrapID) *FlagsContinuation {
	return &FlagsContinuation{Kind: FlagsTrap, Condition: cond, TrapID: trap}
}

// Negate inverts the continuation's condition in place. Negate().Negate()
// is the identity (spec.md §8's round-trip property).
func (f *FlagsContinuation) Negate() {
	f.Condition = negated[f.Condition]
}

// Commute swaps the continuation's condition to match a swap of its two
// comparison operands, in place.
func (f *FlagsContinuation) Commute() {
	f.Condition = commuted[f.Condition]
}

// IsDeoptOrTrap reports whether this continuation is a side-exit (used by
// VisitBinop's output-policy rule: deopt/trap continuations keep their
// inputs live past the instruction, so the output is SameAsFirst rather than
// AnyRegister).
func (f *FlagsContinuation) IsDeoptOrTrap() bool {
	return f.Kind == FlagsDeoptimize || f.Kind == FlagsTrap
}

// String implements fmt.Stringer.
func (f *FlagsContinuation) String() string {
	switch f.Kind {
	case FlagsNone:
		return ""
	case FlagsSet:
		return fmt.Sprintf("set.%s -> v%d", f.Condition, f.DestVReg)
	case FlagsBranch:
		return fmt.Sprintf("branch.%s t%d/f%d", f.Condition, f.TrueBlock, f.FalseBlock)
	case FlagsDeoptimize:
		return fmt.Sprintf("deopt.%s(%s)", f.Condition, f.DeoptReason)
	case FlagsTrap:
		return fmt.Sprintf("trap.%s(%s)", f.Condition, f.TrapID)
	default:
		return "flags(?)"
	}
}
