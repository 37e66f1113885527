package riscv32

var opcodeNames = map[Opcode]string{
	OpInvalid: "invalid",

	OpAdd: "add", OpSub: "sub", OpAnd: "and", OpOr: "or", OpXor: "xor", OpNor: "nor",
	OpTst: "tst", OpShl32: "sll", OpShr32: "srl", OpSar32: "sra", OpMul: "mul",
	OpDiv32: "div", OpDivU32: "divu", OpMod32: "rem", OpModU32: "remu",
	OpAddOvf: "add.ovf", OpSubOvf: "sub.ovf", OpMulOvf32: "mul.ovf",
	OpSignExtendByte: "sext.b", OpSignExtendShort: "sext.h",

	OpMove: "mv", OpLoadImmediate: "li",

	OpCmpZero: "cmpz", OpCmp: "cmp", OpCmpStackPointer: "cmp.sp",

	OpLoadFloat: "flw", OpStoreFloat: "fsw", OpLoadDouble: "fld", OpStoreDouble: "fsd",
	OpLb: "lb", OpLbu: "lbu", OpSb: "sb", OpLh: "lh", OpLhu: "lhu", OpSh: "sh",
	OpLw: "lw", OpSw: "sw",
	OpUlh: "ulh", OpUlhu: "ulhu", OpUlw: "ulw", OpUsh: "ush", OpUsw: "usw",
	OpULoadFloat: "uflw", OpUStoreFloat: "ufsw", OpULoadDouble: "ufld", OpUStoreDouble: "ufsd",
	OpRvvLd: "vle", OpRvvSt: "vse",
	OpArchStoreWithWriteBarrier: "store.wb",

	OpAtomicLoad: "lr", OpAtomicStore: "amoswap.store", OpAtomicExchange: "amoswap",
	OpAtomicCompareExchange: "cas", OpAtomicAdd: "amoadd", OpAtomicSub: "amosub",
	OpAtomicAnd: "amoand", OpAtomicOr: "amoor", OpAtomicXor: "amoxor",
	OpPairAtomicLoad: "pair.load", OpPairAtomicStore: "pair.store",

	OpAddPair: "add.pair", OpSubPair: "sub.pair", OpMulPair: "mul.pair",
	OpShlPair: "shl.pair", OpShrPair: "shr.pair", OpSarPair: "sar.pair",

	OpPrepareCallCFunction: "prepare.call.c", OpStoreToStackSlot: "store.stack",
	OpStackClaim: "stack.claim", OpPeek: "peek",
	OpCall: "call", OpCallC: "call.c", OpTailCall: "tail.call",
	OpReturn: "ret", OpJump: "j", OpBranch: "b",

	OpVectorBinop: "v.binop", OpVwmul: "vwmul", OpVwmulu: "vwmulu", OpVslidedown: "vslidedown",
	OpI8x16Shuffle: "i8x16.shuffle", OpVrgather: "vrgather",
	OpS128Zero: "s128.zero", OpS128AllOnes: "s128.allones", OpS128Const: "s128.const",
	OpS128LoadSplat: "s128.load.splat", OpS128Load32Zero: "s128.load32.zero",
	OpS128Load64Zero: "s128.load64.zero", OpS128Load64ExtendS: "s128.load64.exts",
	OpS128Load64ExtendU: "s128.load64.extu", OpS128LoadLane: "s128.load.lane",
	OpS128StoreLane: "s128.store.lane",
}
