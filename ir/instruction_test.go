package ir

import (
	"testing"

	"github.com/riscv-collab/riscv32isel/internal/require"
)

func TestInstructionArgs(t *testing.T) {
	inst := NewInstruction(10, OpcodeInt32Add, 1, 7, 8)
	require.Equal(t, Value(7), inst.Arg())
	require.Equal(t, Value(8), inst.Arg2())
	require.Equal(t, ValueInvalid, inst.Arg3())
	require.Equal(t, 1, inst.Returns())
}

func TestInstructionProjections(t *testing.T) {
	sum := NewInstruction(1, OpcodeInt32AddWithOverflow, 0, 2, 3)
	overflow := NewInstruction(2, OpcodeProjection, 0)
	sum.SetProjection(1, overflow)

	require.Equal(t, 2, sum.Returns())
	got, ok := sum.Projection(1)
	require.True(t, ok)
	require.Equal(t, overflow, got)

	_, ok = sum.Projection(0)
	require.False(t, ok)
}

func TestInstructionConstantPayload(t *testing.T) {
	c := NewInstruction(5, OpcodeInt32Constant, 0)
	c.SetConstantValue(42)
	require.Equal(t, int64(42), c.ConstantValue())

	f := NewInstruction(6, OpcodeFloat64Constant, 0)
	f.SetConstantFloat(3.5)
	require.Equal(t, 3.5, f.ConstantFloat())
}

func TestInstructionLoadRepresentation(t *testing.T) {
	ld := NewInstruction(9, OpcodeLoad, 0, 1, 2)
	ld.SetRepresentation(TypeI16)
	require.Equal(t, TypeI16, ld.Representation())
}

func TestInstructionBranchTargets(t *testing.T) {
	br := NewInstruction(11, OpcodeBranch, 0, 1)
	br.SetBranchTargets(2, 3)
	tb, fb := br.BranchTargets()
	require.Equal(t, BlockID(2), tb)
	require.Equal(t, BlockID(3), fb)
}

func TestTypeClassification(t *testing.T) {
	require.True(t, TypeI32.IsInt())
	require.False(t, TypeI32.IsFloat())
	require.True(t, TypeF64.IsFloat())
	require.True(t, TypeCompressed.Unsupported64BitHost())
	require.True(t, TypeSandboxedPointer.Unsupported64BitHost())
	require.True(t, TypeMapWord.Unsupported64BitHost())
	require.False(t, TypeI32.Unsupported64BitHost())
	require.Equal(t, 32, TypeI32.Bits())
	require.Equal(t, 64, TypeI64.Bits())
}

func TestOpcodeString(t *testing.T) {
	require.Equal(t, "Int32Add", OpcodeInt32Add.String())
	require.Equal(t, "Word32Rol", OpcodeWord32Rol.String())
}
