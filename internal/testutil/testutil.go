// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the integer fixtures used across the pyramid,
// grid and window tests so that scenarios stay identical between packages.
package testutil

import (
	"math/big"
	"testing"
)

// BigInts converts int64 literals into a fresh []*big.Int.
func BigInts(vals ...int64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = big.NewInt(v)
	}
	return out
}

// MustBig parses a base-16 literal (no prefix) or fails the test.
func MustBig(t testing.TB, hex string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		t.Fatalf("bad hex fixture %q", hex)
	}
	return v
}

// Int64s converts big ints back into int64 for compact assertions.
func Int64s(vals []*big.Int) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = v.Int64()
	}
	return out
}

// ScenarioInput is the three-value input used throughout the package tests.
func ScenarioInput() []*big.Int {
	return BigInts(0x1, 0x3, 0x7)
}
