// Package regalloc defines the virtual-register identity type this
// selection pass hands to the external register allocator (out of scope,
// see spec.md §1): VReg itself, plus a small bitset-backed VRegSet. The
// allocator's own internals
// (linear-scan intervals, live ranges, coloring, spill-slot assignment) are
// a separate, external collaborator and are not reproduced here.
package regalloc

import (
	"fmt"
	"math/bits"

	"github.com/riscv-collab/riscv32isel/ir"
)

// VReg represents a register assigned to one IR value. A VReg may or may not
// be backed by a physical register; RealReg reports which, if any.
type VReg uint64

// VRegID is the lower 32 bits of VReg: the pure identifier, without the
// packed RealReg/RegType info.
type VRegID uint32

const MaxVRegID = ^VRegID(0)

// RealReg returns the RealReg this VReg is pinned to, if any.
func (v VReg) RealReg() RealReg {
	return RealReg(v >> 32)
}

// IsRealReg reports whether this VReg is backed by a physical register, as
// opposed to one still awaiting allocation.
func (v VReg) IsRealReg() bool {
	return v.RealReg() != RealRegInvalid
}

// FromRealReg returns a VReg pinned to the given RealReg and RegType. Used
// by backend.FunctionABI to express an ABI argument/result register as a
// concrete VReg.
func FromRealReg(r RealReg, typ RegType) VReg {
	rid := VRegID(r)
	if rid > vRegIDReservedForRealNum {
		panic(fmt.Sprintf("invalid real reg %d", r))
	}
	return VReg(r).SetRealReg(r).SetRegType(typ)
}

// SetRealReg sets the RealReg of this VReg and returns the updated VReg.
func (v VReg) SetRealReg(r RealReg) VReg {
	return VReg(r)<<32 | (v & 0xff_00_ffffffff)
}

// RegType returns the RegType of this VReg.
func (v VReg) RegType() RegType {
	return RegType(v >> 40)
}

// SetRegType sets the RegType of this VReg and returns the updated VReg.
func (v VReg) SetRegType(t RegType) VReg {
	return VReg(t)<<40 | (v & 0x00_ff_ffffffff)
}

// ID returns the VRegID of this VReg.
func (v VReg) ID() VRegID {
	return VRegID(v & 0xffffffff)
}

// Valid reports whether this VReg is a real, well-formed register reference.
func (v VReg) Valid() bool {
	return v.ID() != vRegIDInvalid && v.RegType() != RegTypeInvalid
}

// String implements fmt.Stringer.
func (v VReg) String() string {
	if v.IsRealReg() {
		return fmt.Sprintf("r%d", v.ID())
	}
	return fmt.Sprintf("v%d?", v.ID())
}

// RealReg represents a physical register. The register file itself (which
// numbers correspond to which of x0-x31/f0-f31) is the register allocator's
// concern; this pass only ever threads opaque RealReg values through fixed-
// register policies (the ABI's argument/return registers, the hard-wired
// "zero" register, etc).
type RealReg byte

const RealRegInvalid RealReg = 0

const (
	vRegIDInvalid VRegID = 1 << 31
	// vRegIDReservedForRealNum reserves the low ids for this target's real
	// registers (32 integer, 32 float, see RealRegsNumMax): virtual register
	// allocation begins just past it.
	vRegIDReservedForRealNum VRegID = 64
	VRegIDNonReservedBegin         = vRegIDReservedForRealNum
	VRegInvalid                    = VReg(vRegIDInvalid)
)

// String implements fmt.Stringer.
func (r RealReg) String() string {
	if r == RealRegInvalid {
		return "invalid"
	}
	return fmt.Sprintf("r%d", r)
}

// RegType represents the register class a VReg belongs to: RISC-V's integer
// file (x0-x31) or its floating-point file (f0-f31, also used for SIMD
// vector values on this target since there is no separate vector file in
// scope).
type RegType byte

const (
	RegTypeInvalid RegType = iota
	RegTypeInt
	RegTypeFloat
	NumRegType
)

// String implements fmt.Stringer.
func (r RegType) String() string {
	switch r {
	case RegTypeInt:
		return "int"
	case RegTypeFloat:
		return "float"
	default:
		return "invalid"
	}
}

// RegTypeOf returns the RegType the Operand Generator should allocate for a
// value of the given IR representation.
func RegTypeOf(t ir.Type) RegType {
	switch t {
	case ir.TypeI8, ir.TypeI16, ir.TypeI32, ir.TypeI64, ir.TypeTagged, ir.TypeTaggedPointer:
		return RegTypeInt
	case ir.TypeF32, ir.TypeF64, ir.TypeV128:
		return RegTypeFloat
	default:
		panic("BUG: no register class for representation " + t.String())
	}
}

// RealRegsNumMax bounds the real-register id space this target pins fixed
// operands to: 32 integer registers (x0-x31) plus 32 floating-point
// registers (f0-f31, also standing in for SIMD vector values here).
const RealRegsNumMax = 64

// VRegSet is a bitset-backed set of virtual registers, one sub-bitset per
// RegType. The selection pass does not use it: its "is this node already
// defined" set is a map held by the riscv32 Machine.
type VRegSet [NumRegType]VRegTypeSet

func (s *VRegSet) Contains(v VReg) bool {
	return s[v.RegType()].Contains(v.ID())
}

func (s *VRegSet) Insert(v VReg) {
	if v.IsRealReg() {
		panic("BUG: cannot insert real registers into a virtual register set")
	}
	s[v.RegType()].Insert(v.ID())
}

func (s *VRegSet) Range(f func(VReg)) {
	for i := range s {
		s[i].Range(func(id VRegID) {
			f(VReg(id).SetRegType(RegType(i)))
		})
	}
}

func (s *VRegSet) Reset() {
	for i := range s {
		s[i].Reset()
	}
}

// VRegTypeSet implements a set for virtual registers of a single RegType,
// using a bitset offset by the minimum inserted id to keep the footprint
// proportional to the id range actually used, not the raw id values.
type VRegTypeSet struct {
	min VRegID
	set bitset
	any bool
}

func (s *VRegTypeSet) Contains(id VRegID) bool {
	if !s.any {
		return false
	}
	return s.set.has(uint(id - s.min))
}

func (s *VRegTypeSet) Insert(id VRegID) {
	if !s.any {
		s.min, s.any = id, true
	} else if id < s.min {
		var ids []VRegID
		s.Range(func(x VRegID) { ids = append(ids, x) })
		s.set.reset()
		s.min = id
		for _, x := range ids {
			s.set.set(uint(x - s.min))
		}
	}
	s.set.set(uint(id - s.min))
}

func (s *VRegTypeSet) Range(f func(VRegID)) {
	s.set.scan(func(i uint) { f(VRegID(i) + s.min) })
}

func (s *VRegTypeSet) Reset() {
	s.min, s.any = 0, false
	s.set.reset()
}

type bitset struct {
	bits []uint64
	// Most bitsets here have short backing arrays (single-function scope);
	// this buffer holds up to 320 bits before spilling the backing array to
	// the heap.
	buf [5]uint64
}

func (b *bitset) reset() {
	b.bits, b.buf = nil, [5]uint64{}
}

func (b *bitset) scan(f func(uint)) {
	for i, v := range b.bits {
		for j := uint(i * 64); v != 0; j++ {
			n := uint(bits.TrailingZeros64(v))
			j += n
			v >>= (n + 1)
			f(j)
		}
	}
}

func (b *bitset) has(i uint) bool {
	index, shift := i/64, i%64
	return index < uint(len(b.bits)) && ((b.bits[index] & (1 << shift)) != 0)
}

func (b *bitset) set(i uint) {
	index, shift := i/64, i%64
	if index >= uint(len(b.bits)) {
		if index < uint(len(b.buf)) {
			b.bits = b.buf[:]
		} else {
			b.bits = append(b.bits, make([]uint64, (index+1)-uint(len(b.bits)))...)
			b.buf = [5]uint64{}
		}
	}
	b.bits[index] |= 1 << shift
}
