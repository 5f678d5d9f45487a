// Package pyramid builds the XOR difference pyramid over a sequence of
// hexadecimal integers.
//
// Level 0 is the input itself. Each following level holds the pairwise XOR
// of adjacent elements of the level above it, so level k has N-k elements
// and the pyramid has exactly N levels. Values routinely exceed 64 bits,
// so every level is kept as *big.Int and XOR is bitwise exact.
package pyramid
