package grid

import "math/big"

// Cell is an optional integer. The zero value is a missing cell.
type Cell struct {
	v *big.Int
}

// Missing returns an undefined cell.
func Missing() Cell { return Cell{} }

// Defined returns a cell holding a copy of v.
func Defined(v *big.Int) Cell {
	return Cell{v: new(big.Int).Set(v)}
}

// DefinedInt64 is a convenience for small literals.
func DefinedInt64(v int64) Cell {
	return Cell{v: big.NewInt(v)}
}

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool { return c.v == nil }

// Value returns a copy of the value and whether it is defined.
func (c Cell) Value() (*big.Int, bool) {
	if c.v == nil {
		return nil, false
	}
	return new(big.Int).Set(c.v), true
}

// XorInto XORs the cell into acc when defined. Missing cells leave acc
// unchanged, acting as the XOR identity.
func (c Cell) XorInto(acc *big.Int) {
	if c.v != nil {
		acc.Xor(acc, c.v)
	}
}

// Equal compares two cells; two missing cells are equal.
func (c Cell) Equal(o Cell) bool {
	if c.v == nil || o.v == nil {
		return c.v == nil && o.v == nil
	}
	return c.v.Cmp(o.v) == 0
}

// String renders the value as hex, or "-" when missing.
func (c Cell) String() string {
	if c.v == nil {
		return "-"
	}
	return "0x" + c.v.Text(16)
}
