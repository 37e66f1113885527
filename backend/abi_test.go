package backend

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
	"github.com/riscv-collab/riscv32isel/ir"
	"github.com/riscv-collab/riscv32isel/regalloc"
)

const (
	a0 = regalloc.RealRegInvalid + 1 + iota
	a1
	a2
	a3
	fa0
	fa1
)

type mockRegInfo struct{}

func (mockRegInfo) ArgsResultsRegs() (argInts, argFloats, resultInts, resultFloats []regalloc.RealReg) {
	ints := []regalloc.RealReg{a0, a1, a2, a3}
	floats := []regalloc.RealReg{fa0, fa1}
	return ints, floats, ints, floats
}

func TestFunctionABI_Init(t *testing.T) {
	abi := NewFunctionABI[mockRegInfo](mockRegInfo{})
	abi.Init(&Signature{
		Params:  []ir.Type{ir.TypeI32, ir.TypeI32, ir.TypeF64, ir.TypeI32, ir.TypeI32, ir.TypeI32},
		Results: []ir.Type{ir.TypeI32},
	})

	require.True(t, abi.Initialized)
	require.Len(t, abi.Args, 6)
	require.Equal(t, ABIArgKindReg, abi.Args[0].Kind)
	require.Equal(t, ABIArgKindReg, abi.Args[2].Kind) // float arg takes the float file, not the int file.
	require.Equal(t, ABIArgKindReg, abi.Args[4].Kind) // fourth int arg takes the last int register.
	require.Equal(t, ABIArgKindStack, abi.Args[5].Kind)
	require.Equal(t, int64(0), abi.Args[5].Offset)

	require.Len(t, abi.Rets, 1)
	require.Equal(t, ABIArgKindReg, abi.Rets[0].Kind)
}

func TestFunctionABI_AlignedArgResultStackSlotSize(t *testing.T) {
	abi := NewFunctionABI[mockRegInfo](mockRegInfo{})
	abi.Init(&Signature{Params: []ir.Type{ir.TypeI32, ir.TypeI32, ir.TypeI32, ir.TypeI32, ir.TypeI32}})
	require.Equal(t, int64(16), abi.AlignedArgResultStackSlotSize())
}
