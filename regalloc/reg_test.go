package regalloc

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
)

func TestRegTypeOf(t *testing.T) {
	require.Equal(t, RegTypeInt, RegTypeOf(ir.TypeI32))
	require.Equal(t, RegTypeInt, RegTypeOf(ir.TypeI64))
	require.Equal(t, RegTypeInt, RegTypeOf(ir.TypeTagged))
	require.Equal(t, RegTypeFloat, RegTypeOf(ir.TypeF32))
	require.Equal(t, RegTypeFloat, RegTypeOf(ir.TypeF64))
	require.Equal(t, RegTypeFloat, RegTypeOf(ir.TypeV128))
}

func TestVReg_String(t *testing.T) {
	require.Equal(t, "v0?", VReg(0).String())
	require.Equal(t, "v100?", VReg(100).String())
	require.Equal(t, "r5", FromRealReg(5, RegTypeInt).String())
}

func Test_FromRealReg(t *testing.T) {
	r := FromRealReg(5, RegTypeInt)
	require.Equal(t, RealReg(5), r.RealReg())
	require.Equal(t, VRegID(5), r.ID())
}

func TestVRegSet(t *testing.T) {
	var s VRegSet
	a := VReg(3).SetRegType(RegTypeInt)
	b := VReg(9).SetRegType(RegTypeFloat)

	require.False(t, s.Contains(a))
	s.Insert(a)
	s.Insert(b)
	require.True(t, s.Contains(a))
	require.True(t, s.Contains(b))

	var seen []VReg
	s.Range(func(v VReg) { seen = append(seen, v) })
	require.Len(t, seen, 2)

	s.Reset()
	require.False(t, s.Contains(a))
	require.False(t, s.Contains(b))
}
