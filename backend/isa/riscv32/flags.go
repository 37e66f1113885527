package riscv32

// Flags is the target-configuration knob set (SPEC_FULL.md §2's ambient
// config layer): plain struct fields threaded through the Machine
// constructor, mirroring how tetratelabs/wazero threads its own debug/feature
// consts as constructor arguments rather than through a generic
// config-loading framework.
type Flags struct {
	// EnableWriteBarriers corresponds to spec.md §6's
	// `FLAG_disable_write_barriers`, inverted to a positive name: when
	// false, all write barriers are skipped regardless of WriteBarrierKind.
	EnableWriteBarriers bool
	// EnableSwitchJumpTable corresponds to `enable_switch_jump_table`
	// (spec.md §4.2.4).
	EnableSwitchJumpTable bool
	// HasUnalignedAccess corresponds to the negation of
	// `RISCV_HAS_NO_UNALIGNED` (spec.md §4.5): true means this target may
	// lower ordinary Load/Store directly even for sub-word-aligned
	// addresses; false forces the driver to pre-split into the explicit
	// Unaligned* opcodes, which this pass still must accept and lower
	// (loadStoreOpcode's unaligned parameter).
	HasUnalignedAccess bool
}

// DefaultFlags returns the flag set a production pipeline would configure
// for a generic 32-bit RISC-V target: write barriers on, jump tables on,
// unaligned access assumed available (the common case for application-class
// RISC-V cores; embedded targets that lack it flip HasUnalignedAccess off).
func DefaultFlags() Flags {
	return Flags{
		EnableWriteBarriers:   true,
		EnableSwitchJumpTable: true,
		HasUnalignedAccess:    true,
	}
}
