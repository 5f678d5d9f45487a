package window

import (
	"math"
	"math/big"
	"testing"

	"github.com/banshee-data/xor-pyramid/internal/grid"
	"github.com/banshee-data/xor-pyramid/internal/pyramid"
	"github.com/banshee-data/xor-pyramid/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T) (*grid.Grid, *grid.Grid) {
	t.Helper()
	p, err := pyramid.Build(testutil.ScenarioInput())
	require.NoError(t, err)
	return grid.Materialize(p)
}

func values(r *Result) [][]int64 {
	out := make([][]int64, r.Rows())
	for i := range out {
		out[i] = make([]int64, r.Cols())
		for j := range out[i] {
			out[i][j] = r.At(i, j).Int64()
		}
	}
	return out
}

func TestSlideScenario(t *testing.T) {
	t.Parallel()

	h, v := scenario(t)

	cases := []struct {
		name string
		mode Mode
		w    int
		want [][]int64
	}{
		// (0,0) = 1^3^2^4, (0,1) = 3^7^4, (1,0) = 2^4^6, (1,1) = 4
		{"horizontal w2", Horizontal, 2, [][]int64{{4, 0}, {0, 4}}},
		{"horizontal w3", Horizontal, 3, [][]int64{{5}}},
		// vertical grid is [[3,7,-],[4,-,-]]
		{"vertical w2", Vertical, 2, [][]int64{{0, 7}}},
		{"vertical w1", Vertical, 1, [][]int64{{3, 7, 0}, {4, 0, 0}}},
		// both clips the horizontal grid to the 2x3 vertical extent
		{"both w2", Both, 2, [][]int64{{4, 7}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := Slide(h, v, tc.w, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.w, res.Window)
			assert.Equal(t, tc.mode, res.Mode)
			if diff := cmp.Diff(tc.want, values(res)); diff != "" {
				t.Errorf("Slide mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSlideWindowOneIsIdentity(t *testing.T) {
	t.Parallel()

	input := make([]*big.Int, 12)
	for i := range input {
		input[i] = big.NewInt(int64(i*i*31 + 5))
	}
	p, err := pyramid.Build(input)
	require.NoError(t, err)
	h, _ := grid.Materialize(p)

	res, err := Slide(h, nil, 1, Horizontal)
	require.NoError(t, err)
	require.Equal(t, h.Rows(), res.Rows())
	require.Equal(t, h.Cols(), res.Cols())

	for i := 0; i < h.Rows(); i++ {
		for j := 0; j < h.Cols(); j++ {
			want, ok := h.At(i, j).Value()
			if !ok {
				want = new(big.Int)
			}
			assert.Equal(t, 0, want.Cmp(res.At(i, j)), "cell (%d,%d)", i, j)
		}
	}
}

func TestSlideNeverEmitsNaN(t *testing.T) {
	t.Parallel()

	h, v := scenario(t)
	for _, mode := range []Mode{Horizontal, Vertical, Both} {
		for w := 1; w <= 3; w++ {
			res, err := Slide(h, v, w, mode)
			require.NoError(t, err)
			for _, logScale := range []bool{false, true} {
				for _, f := range res.Flat(logScale) {
					assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "mode=%s w=%d", mode, w)
				}
			}
		}
	}
}

func TestSlideDegenerateWindow(t *testing.T) {
	t.Parallel()

	h, v := scenario(t)
	for _, mode := range []Mode{Horizontal, Vertical, Both} {
		res, err := Slide(h, v, 4, mode)
		require.NoError(t, err, "mode %s", mode)
		assert.True(t, res.Empty())
		assert.Empty(t, res.Flat(false))
		assert.True(t, res.Grid().Empty())
	}
}

func TestSlideErrors(t *testing.T) {
	t.Parallel()

	h, v := scenario(t)

	_, err := Slide(h, v, 0, Horizontal)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Slide(h, nil, 2, Both)
	assert.ErrorIs(t, err, ErrMissingGrid)

	_, err = Slide(h, nil, 2, Vertical)
	assert.ErrorIs(t, err, ErrMissingGrid)

	_, err = Slide(h, v, 2, Mode(9))
	assert.Error(t, err)
}

func TestSlideLogScale(t *testing.T) {
	t.Parallel()

	h, _ := scenario(t)
	res, err := Slide(h, nil, 2, Horizontal)
	require.NoError(t, err)

	got := res.Float64s(true)
	assert.InDelta(t, math.Log1p(4), got[0][0], 1e-12)
	assert.Equal(t, 0.0, got[0][1])
	assert.Equal(t, [][]float64{{4, 0}, {0, 4}}, res.Float64s(false))
}

func TestSlideDeterministic(t *testing.T) {
	t.Parallel()

	h, v := scenario(t)
	a, err := Slide(h, v, 2, Both)
	require.NoError(t, err)
	b, err := Slide(h, v, 2, Both)
	require.NoError(t, err)
	assert.True(t, a.Grid().Equal(b.Grid()))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{
		"horizontal": Horizontal,
		"Vertical":   Vertical,
		" both ":     Both,
		"h":          Horizontal,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("diagonal")
	assert.Error(t, err)
	assert.Equal(t, "both", Both.String())
	assert.Equal(t, "Horizontal Only", Horizontal.Title())
	assert.Equal(t, []Mode{Both, Horizontal, Vertical}, AllModes)
}
