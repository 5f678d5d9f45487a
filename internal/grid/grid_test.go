package grid

import (
	"math"
	"math/big"
	"testing"

	"github.com/banshee-data/xor-pyramid/internal/pyramid"
	"github.com/banshee-data/xor-pyramid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int64) *int64 { return &v }

func scenarioGrids(t *testing.T) (*Grid, *Grid) {
	t.Helper()
	p, err := pyramid.Build(testutil.ScenarioInput())
	require.NoError(t, err)
	return Materialize(p)
}

func TestMaterializeScenario(t *testing.T) {
	t.Parallel()

	h, v := scenarioGrids(t)

	wantH := FromRows([][]*int64{
		{ip(1), ip(3), ip(7)},
		{ip(2), ip(4), nil},
		{ip(6), nil, nil},
	})
	wantV := FromRows([][]*int64{
		{ip(3), ip(7), nil},
		{ip(4), nil, nil},
	})

	assert.True(t, wantH.Equal(h), "horizontal:\n%s", h)
	assert.True(t, wantV.Equal(v), "vertical:\n%s", v)
}

func TestMaterializeShapes(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 9, 69} {
		input := make([]*big.Int, n)
		for i := range input {
			input[i] = big.NewInt(int64(7*i + 1))
		}
		p, err := pyramid.Build(input)
		require.NoError(t, err)

		h, v := Materialize(p)
		assert.Equal(t, n, h.Rows())
		assert.Equal(t, n, h.Cols())
		assert.Equal(t, h.Rows()-1, v.Rows(), "vertical rows for n=%d", n)
		assert.Equal(t, h.Cols(), v.Cols())

		// Row k of the horizontal grid has exactly n-k defined cells.
		for k := 0; k < h.Rows(); k++ {
			defined := 0
			for j := 0; j < h.Cols(); j++ {
				if !h.At(k, j).IsMissing() {
					defined++
				}
			}
			assert.Equal(t, n-k, defined)
		}
		// Vertical row k overlaps the shorter level k+1.
		for k := 0; k < v.Rows(); k++ {
			assert.False(t, v.At(k, n-k-2).IsMissing())
			assert.True(t, v.At(k, n-k-1).IsMissing())
		}
	}
}

func TestFloat64sMarksMissingAsNaN(t *testing.T) {
	t.Parallel()

	h, _ := scenarioGrids(t)
	f := h.Float64s()

	assert.Equal(t, 1.0, f[0][0])
	assert.Equal(t, 7.0, f[0][2])
	assert.True(t, math.IsNaN(f[1][2]))
	assert.True(t, math.IsNaN(f[2][1]))
	assert.Equal(t, []float64{1, 3, 7, 2, 4, 6}, h.DefinedFloat64s())
	assert.Equal(t, 6, h.Defined())
}

func TestTransposeAndClone(t *testing.T) {
	t.Parallel()

	h, _ := scenarioGrids(t)
	tr := h.Transpose()
	want := FromRows([][]*int64{
		{ip(1), ip(2), ip(6)},
		{ip(3), ip(4), nil},
		{ip(7), nil, nil},
	})
	assert.True(t, want.Equal(tr), "transpose:\n%s", tr)
	assert.True(t, h.Equal(tr.Transpose()))

	c := h.Clone()
	require.True(t, h.Equal(c))
	c.Set(0, 0, Missing())
	assert.False(t, h.At(0, 0).IsMissing(), "Clone must not share cell storage")
}

func TestCellSemantics(t *testing.T) {
	t.Parallel()

	m := Missing()
	assert.True(t, m.IsMissing())
	_, ok := m.Value()
	assert.False(t, ok)
	assert.Equal(t, "-", m.String())

	src := big.NewInt(0x2a)
	c := Defined(src)
	src.SetInt64(0)
	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, int64(0x2a), v.Int64(), "Defined must copy its argument")
	assert.Equal(t, "0x2a", c.String())

	acc := big.NewInt(0x0f)
	m.XorInto(acc)
	assert.Equal(t, int64(0x0f), acc.Int64())
	c.XorInto(acc)
	assert.Equal(t, int64(0x0f^0x2a), acc.Int64())

	assert.True(t, Missing().Equal(Missing()))
	assert.False(t, Missing().Equal(c))
}

func TestGridBoundsPanic(t *testing.T) {
	t.Parallel()

	g := New(2, 2)
	assert.Panics(t, func() { g.At(2, 0) })
	assert.Panics(t, func() { g.Set(0, -1, Missing()) })
	assert.True(t, New(-1, 3).Empty())
}
