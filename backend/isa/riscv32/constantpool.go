package riscv32

// ConstantPool is the append-only, single-writer table Immediate operands
// index into (spec.md §3: "Immediate(constant-index) pointing into the
// sequence's constant pool"). spec.md names this pool but never specifies
// its own API, since it's downstream of the Operand data model rather than
// a selection rule in its own right; this is the minimal shape the rest of
// the package needs.
type ConstantPool struct {
	ints   []int64
	floats []float64
}

// InternInt returns the index of v in the pool, appending it if not already
// present at the tail (the common case: most immediates are emitted once
// and never repeated within a single instruction's operand list, so this
// does not attempt whole-pool deduplication).
func (p *ConstantPool) InternInt(v int64) int {
	if n := len(p.ints); n > 0 && p.ints[n-1] == v {
		return n - 1
	}
	p.ints = append(p.ints, v)
	return len(p.ints) - 1
}

// InternFloat returns the index of v in the pool.
func (p *ConstantPool) InternFloat(v float64) int {
	p.floats = append(p.floats, v)
	return len(p.floats) - 1
}

// Int returns the integer constant at index i.
func (p *ConstantPool) Int(i int) int64 { return p.ints[i] }

// Float returns the float constant at index i.
func (p *ConstantPool) Float(i int) float64 { return p.floats[i] }

// Reset clears the pool, for reuse across compilations (spec.md §5's
// scoped-arena reuse model).
func (p *ConstantPool) Reset() {
	p.ints = p.ints[:0]
	p.floats = p.floats[:0]
}
