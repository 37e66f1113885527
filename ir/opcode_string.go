package ir

// opcodeNameTable backs Opcode.String(). Kept as a separate file/table (rather
// than a switch) since the list only grows, matching ssa.Opcode's own
// generated-table style in tetratelabs/wazero.
var opcodeNameTable = map[Opcode]string{
	OpcodeInvalid: "Invalid",

	OpcodeJump:       "Jump",
	OpcodeBranch:     "Branch",
	OpcodeSwitch:     "Switch",
	OpcodeReturn:     "Return",
	OpcodeDeoptimize: "Deoptimize",
	OpcodeTrap:       "Trap",

	OpcodeInt32Constant:    "Int32Constant",
	OpcodeInt64Constant:    "Int64Constant",
	OpcodeFloat32Constant:  "Float32Constant",
	OpcodeFloat64Constant:  "Float64Constant",
	OpcodeExternalConstant: "ExternalConstant",

	OpcodeInt32Add:             "Int32Add",
	OpcodeInt32Sub:             "Int32Sub",
	OpcodeInt32Mul:             "Int32Mul",
	OpcodeInt32Div:             "Int32Div",
	OpcodeUint32Div:            "Uint32Div",
	OpcodeInt32Mod:             "Int32Mod",
	OpcodeUint32Mod:            "Uint32Mod",
	OpcodeInt32AddWithOverflow: "Int32AddWithOverflow",
	OpcodeInt32SubWithOverflow: "Int32SubWithOverflow",
	OpcodeInt32MulWithOverflow: "Int32MulWithOverflow",

	OpcodeWord32And: "Word32And",
	OpcodeWord32Or:  "Word32Or",
	OpcodeWord32Xor: "Word32Xor",
	OpcodeWord32Tst: "Word32Tst",

	OpcodeWord32Shl: "Word32Shl",
	OpcodeWord32Shr: "Word32Shr",
	OpcodeWord32Sar: "Word32Sar",
	OpcodeWord32Rol: "Word32Rol",

	OpcodeWord32ReverseBits:    "Word32ReverseBits",
	OpcodeWord64ReverseBytes:   "Word64ReverseBytes",
	OpcodeSimd128ReverseBytes:  "Simd128ReverseBytes",

	OpcodeSignExtendWord8ToInt32:  "SignExtendWord8ToInt32",
	OpcodeSignExtendWord16ToInt32: "SignExtendWord16ToInt32",
	OpcodeZeroExtendWord8ToInt32:  "ZeroExtendWord8ToInt32",
	OpcodeZeroExtendWord16ToInt32: "ZeroExtendWord16ToInt32",

	OpcodeWord32Equal:             "Word32Equal",
	OpcodeInt32LessThan:           "Int32LessThan",
	OpcodeInt32LessThanOrEqual:    "Int32LessThanOrEqual",
	OpcodeUint32LessThan:          "Uint32LessThan",
	OpcodeUint32LessThanOrEqual:   "Uint32LessThanOrEqual",
	OpcodeFloat32Equal:            "Float32Equal",
	OpcodeFloat32LessThan:         "Float32LessThan",
	OpcodeFloat32LessThanOrEqual:  "Float32LessThanOrEqual",
	OpcodeFloat64Equal:            "Float64Equal",
	OpcodeFloat64LessThan:         "Float64LessThan",
	OpcodeFloat64LessThanOrEqual:  "Float64LessThanOrEqual",
	OpcodeStackPointerGreaterThan: "StackPointerGreaterThan",
	OpcodeProjection:              "Projection",

	OpcodeFloat32Add:           "Float32Add",
	OpcodeFloat32Sub:           "Float32Sub",
	OpcodeFloat32Mul:           "Float32Mul",
	OpcodeFloat32Div:           "Float32Div",
	OpcodeFloat64Add:           "Float64Add",
	OpcodeFloat64Sub:           "Float64Sub",
	OpcodeFloat64Mul:           "Float64Mul",
	OpcodeFloat64Div:           "Float64Div",
	OpcodeFloat64RoundDown:     "Float64RoundDown",
	OpcodeFloat64RoundUp:       "Float64RoundUp",
	OpcodeFloat64RoundTruncate: "Float64RoundTruncate",
	OpcodeFloat64RoundTiesEven: "Float64RoundTiesEven",
	OpcodeFloat64RoundTiesAway: "Float64RoundTiesAway",

	OpcodeInt32AbsWithOverflow: "Int32AbsWithOverflow",
	OpcodeInt64AbsWithOverflow: "Int64AbsWithOverflow",

	OpcodeLoad:            "Load",
	OpcodeStore:           "Store",
	OpcodeUnalignedLoad:   "UnalignedLoad",
	OpcodeUnalignedStore:  "UnalignedStore",
	OpcodeProtectedLoad:   "ProtectedLoad",
	OpcodeProtectedStore:  "ProtectedStore",

	OpcodeWord32AtomicLoad:            "Word32AtomicLoad",
	OpcodeWord32AtomicStore:           "Word32AtomicStore",
	OpcodeWord32AtomicExchange:        "Word32AtomicExchange",
	OpcodeWord32AtomicCompareExchange: "Word32AtomicCompareExchange",
	OpcodeWord32AtomicAdd:             "Word32AtomicAdd",
	OpcodeWord32AtomicSub:             "Word32AtomicSub",
	OpcodeWord32AtomicAnd:             "Word32AtomicAnd",
	OpcodeWord32AtomicOr:              "Word32AtomicOr",
	OpcodeWord32AtomicXor:             "Word32AtomicXor",
	OpcodeWord32PairAtomicLoad:            "Word32PairAtomicLoad",
	OpcodeWord32PairAtomicStore:           "Word32PairAtomicStore",
	OpcodeWord32PairAtomicAdd:             "Word32PairAtomicAdd",
	OpcodeWord32PairAtomicSub:             "Word32PairAtomicSub",
	OpcodeWord32PairAtomicAnd:             "Word32PairAtomicAnd",
	OpcodeWord32PairAtomicOr:              "Word32PairAtomicOr",
	OpcodeWord32PairAtomicXor:             "Word32PairAtomicXor",
	OpcodeWord32PairAtomicExchange:        "Word32PairAtomicExchange",
	OpcodeWord32PairAtomicCompareExchange: "Word32PairAtomicCompareExchange",

	OpcodeInt32PairAdd: "Int32PairAdd",
	OpcodeInt32PairSub: "Int32PairSub",
	OpcodeInt32PairMul: "Int32PairMul",
	OpcodeInt32PairShl: "Int32PairShl",
	OpcodeInt32PairShr: "Int32PairShr",
	OpcodeInt32PairSar: "Int32PairSar",

	OpcodeCall:     "Call",
	OpcodeCallC:    "CallC",
	OpcodeTailCall: "TailCall",

	OpcodeF32x4Add:             "F32x4Add",
	OpcodeF64x2Add:             "F64x2Add",
	OpcodeI32x4Add:             "I32x4Add",
	OpcodeI32x4Sub:             "I32x4Sub",
	OpcodeI32x4Mul:             "I32x4Mul",
	OpcodeI16x8ExtMulLowI8x16S:  "I16x8ExtMulLowI8x16S",
	OpcodeI16x8ExtMulHighI8x16S: "I16x8ExtMulHighI8x16S",
	OpcodeI32x4ExtMulLowI16x8U:  "I32x4ExtMulLowI16x8U",
	OpcodeI32x4ExtMulHighI16x8U: "I32x4ExtMulHighI16x8U",
	OpcodeI64x2ExtMulLowI32x4S:  "I64x2ExtMulLowI32x4S",
	OpcodeI64x2ExtMulHighI32x4S: "I64x2ExtMulHighI32x4S",
	OpcodeI8x16Shuffle:   "I8x16Shuffle",
	OpcodeI8x16Swizzle:   "I8x16Swizzle",
	OpcodeS128Const:      "S128Const",
	OpcodeS128Load:       "S128Load",
	OpcodeS128Store:      "S128Store",
	OpcodeS128LoadSplat:  "S128LoadSplat",
	OpcodeS128Load32Zero: "S128Load32Zero",
	OpcodeS128Load64Zero: "S128Load64Zero",
	OpcodeS128Load64ExtendS: "S128Load64ExtendS",
	OpcodeS128Load64ExtendU: "S128Load64ExtendU",
	OpcodeS128LoadLane:   "S128LoadLane",
	OpcodeS128StoreLane:  "S128StoreLane",
}
