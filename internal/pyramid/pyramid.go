package pyramid

import (
	"errors"
	"math/big"
)

// ErrEmptyInput is returned by Build for a zero-length input.
var ErrEmptyInput = errors.New("pyramid input is empty")

// Pyramid is an immutable triangular table of XOR differences.
type Pyramid struct {
	levels [][]*big.Int
}

// Build constructs the difference pyramid for input. The input slice and
// its values are copied; the caller may reuse them afterwards.
func Build(input []*big.Int) (Pyramid, error) {
	if len(input) == 0 {
		return Pyramid{}, ErrEmptyInput
	}

	levels := make([][]*big.Int, 0, len(input))
	current := make([]*big.Int, len(input))
	for i, v := range input {
		if v == nil {
			v = new(big.Int)
		}
		current[i] = new(big.Int).Set(v)
	}
	levels = append(levels, current)

	for len(current) > 1 {
		next := make([]*big.Int, len(current)-1)
		for i := range next {
			next[i] = new(big.Int).Xor(current[i], current[i+1])
		}
		levels = append(levels, next)
		current = next
	}

	return Pyramid{levels: levels}, nil
}

// Levels returns the number of levels, which equals the input length.
func (p Pyramid) Levels() int {
	return len(p.levels)
}

// Width returns the length of level 0.
func (p Pyramid) Width() int {
	if len(p.levels) == 0 {
		return 0
	}
	return len(p.levels[0])
}

// Level returns a copy of level k. It panics if k is out of range.
func (p Pyramid) Level(k int) []*big.Int {
	src := p.levels[k]
	out := make([]*big.Int, len(src))
	for i, v := range src {
		out[i] = new(big.Int).Set(v)
	}
	return out
}

// LevelLen returns the length of level k without copying it.
func (p Pyramid) LevelLen(k int) int {
	return len(p.levels[k])
}
