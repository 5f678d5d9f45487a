package pyramid

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrMalformedInput is wrapped by every ParseError.
var ErrMalformedInput = errors.New("malformed hexadecimal input")

// ParseError reports a token that is not a valid hexadecimal literal.
type ParseError struct {
	Index int // position in the token list, -1 for single tokens
	Token string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid hex literal %q", e.Token)
	}
	return fmt.Sprintf("invalid hex literal %q at index %d", e.Token, e.Index)
}

func (e *ParseError) Unwrap() error { return ErrMalformedInput }

// ParseHex parses a hexadecimal literal with or without a 0x prefix.
// Negative values and empty digits are rejected.
func ParseHex(token string) (*big.Int, error) {
	v, ok := parseHex(token)
	if !ok {
		return nil, &ParseError{Index: -1, Token: token}
	}
	return v, nil
}

// ParseHexList parses every token, failing on the first malformed one.
func ParseHexList(tokens []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(tokens))
	for i, tok := range tokens {
		v, ok := parseHex(tok)
		if !ok {
			return nil, &ParseError{Index: i, Token: tok}
		}
		out = append(out, v)
	}
	return out, nil
}

func parseHex(token string) (*big.Int, bool) {
	s := strings.TrimSpace(token)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return nil, false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return nil, false
		}
	}
	v, ok := new(big.Int).SetString(s, 16)
	return v, ok
}

// FormatHex renders v as a 0x-prefixed lowercase literal.
func FormatHex(v *big.Int) string {
	return "0x" + v.Text(16)
}

// HexXOR returns the XOR of two hex literals as a 0x-prefixed literal.
func HexXOR(a, b string) (string, error) {
	x, err := ParseHex(a)
	if err != nil {
		return "", err
	}
	y, err := ParseHex(b)
	if err != nil {
		return "", err
	}
	return FormatHex(new(big.Int).Xor(x, y)), nil
}
