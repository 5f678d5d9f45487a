package pyramid

import (
	"errors"
	"math/big"
	"testing"

	"github.com/banshee-data/xor-pyramid/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScenario(t *testing.T) {
	t.Parallel()

	p, err := Build(testutil.ScenarioInput())
	require.NoError(t, err)
	require.Equal(t, 3, p.Levels())
	assert.Equal(t, 3, p.Width())

	want := [][]int64{{1, 3, 7}, {2, 4}, {6}}
	for k, w := range want {
		if diff := cmp.Diff(w, testutil.Int64s(p.Level(k))); diff != "" {
			t.Errorf("level %d mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestBuildLevelLengths(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 5, 17, 69} {
		input := make([]*big.Int, n)
		for i := range input {
			input[i] = big.NewInt(int64(i*i + 3))
		}
		p, err := Build(input)
		require.NoError(t, err)
		require.Equal(t, n, p.Levels(), "levels for n=%d", n)
		for k := 0; k < p.Levels(); k++ {
			assert.Equal(t, n-k, p.LevelLen(k), "len(level %d) for n=%d", k, n)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildDeterministicAndUnaliased(t *testing.T) {
	t.Parallel()

	input := testutil.BigInts(0x10, 0x22, 0x35, 0x41)
	a, err := Build(input)
	require.NoError(t, err)
	b, err := Build(input)
	require.NoError(t, err)

	for k := 0; k < a.Levels(); k++ {
		assert.Equal(t, testutil.Int64s(a.Level(k)), testutil.Int64s(b.Level(k)))
	}

	input[0].SetInt64(0xff)
	assert.Equal(t, int64(0x10), a.Level(0)[0].Int64(), "pyramid must not alias the input")

	lvl := a.Level(1)
	lvl[0].SetInt64(0)
	assert.Equal(t, int64(0x10^0x22), a.Level(1)[0].Int64(), "Level must return a copy")
}

func TestBuildWideValues(t *testing.T) {
	t.Parallel()

	// Values wider than 64 bits must XOR exactly.
	a := testutil.MustBig(t, "349b84b6431a6c4f1")
	b := testutil.MustBig(t, "101d83275f2bc7e0c")
	p, err := Build([]*big.Int{a, b})
	require.NoError(t, err)

	want := new(big.Int).Xor(a, b)
	assert.Equal(t, 0, want.Cmp(p.Level(1)[0]))
	assert.Greater(t, a.BitLen(), 64)
}

func TestHexXOR(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want string
	}{
		{"0x1", "0x3", "0x2"},
		{"0x3", "0x1", "0x2"},
		{"ff", "0xFF", "0x0"},
		{"0x349b84b6431a6c4ef1", "0x0", "0x349b84b6431a6c4ef1"},
	}
	for _, tc := range cases {
		got, err := HexXOR(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s ^ %s", tc.a, tc.b)
	}

	ab, err := HexXOR("0xdeadbeef", "0x1234")
	require.NoError(t, err)
	ba, err := HexXOR("0x1234", "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestParseHexRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "0x", "xyz", "0x12g", "-0x1", "1 2"} {
		_, err := ParseHex(tok)
		require.Error(t, err, "token %q", tok)
		assert.ErrorIs(t, err, ErrMalformedInput)
	}
}

func TestParseHexListReportsIndex(t *testing.T) {
	t.Parallel()

	vals, err := ParseHexList([]string{"0x1", " 0x3 ", "0xzz"})
	assert.Nil(t, vals)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Index)
	assert.Equal(t, "0xzz", pe.Token)
	assert.Contains(t, pe.Error(), "index 2")
}

func TestParseHexListAcceptsPrefixes(t *testing.T) {
	t.Parallel()

	vals, err := ParseHexList([]string{"0x1", "0X3", "7", "  a  "})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 7, 10}, testutil.Int64s(vals))
}
