package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/echoji/glyph"
)

func litCells(m *Mask) (cols, rows map[int]bool) {
	cols, rows = map[int]bool{}, map[int]bool{}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if bits, _ := m.At(x, y); bits != 0 {
				cols[x], rows[y] = true, true
			}
		}
	}
	return cols, rows
}

func TestFootprint(t *testing.T) {
	w, h := Footprint(20)
	assert.Equal(t, 28, w)
	assert.Equal(t, 14, h)
	w, h = Footprint(3)
	assert.Equal(t, 6, w)
	assert.Equal(t, 3, h)
}

func TestRasterizer_HorizontalLine(t *testing.T) {
	r := NewRasterizer()
	m, err := r.Mask(glyph.MustParse("M10 50 L90 50"), 0, 20)
	require.NoError(t, err)
	require.Equal(t, 28, m.W)
	require.Equal(t, 14, m.H)

	cols, rows := litCells(m)
	require.NotEmpty(t, rows)
	for y := range rows {
		assert.Contains(t, []int{6, 7}, y)
	}
	assert.GreaterOrEqual(t, len(cols), 12)
	for x := range cols {
		assert.GreaterOrEqual(t, x, 5)
		assert.LessOrEqual(t, x, 22)
	}
}

func TestRasterizer_RotatedLineIsVertical(t *testing.T) {
	r := NewRasterizer()
	m, err := r.Mask(glyph.MustParse("M10 50 L90 50"), 90, 20)
	require.NoError(t, err)

	cols, rows := litCells(m)
	require.NotEmpty(t, cols)
	for x := range cols {
		assert.Contains(t, []int{13, 14}, x)
	}
	assert.GreaterOrEqual(t, len(rows), 6)
}

func TestRasterizer_Cache(t *testing.T) {
	r := NewRasterizer()
	shape := glyph.At(0)
	a, err := r.Mask(shape, 90, 10)
	require.NoError(t, err)
	b, err := r.Mask(shape, 91, 10)
	require.NoError(t, err)
	assert.Same(t, a, b, "rotation within one step reuses the mask")
	assert.Equal(t, 1, r.Len())

	c, err := r.Mask(shape, 90-360, 10)
	require.NoError(t, err)
	assert.Same(t, a, c)

	_, err = r.Mask(shape, 90, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestRasterizer_EveryCatalogShapeLights(t *testing.T) {
	r := NewRasterizer()
	for i := 0; i < glyph.Len(); i++ {
		m, err := r.Mask(glyph.At(i), 0, 16)
		require.NoError(t, err)
		assert.Positive(t, m.Lit(), "shape %d", i)
		for j, b := range m.Bits {
			if b != 0 {
				assert.Greater(t, m.Cover[j], 0.0)
				assert.LessOrEqual(t, m.Cover[j], 1.0)
			}
		}
	}
}

func TestRasterizer_Degenerate(t *testing.T) {
	r := NewRasterizer()
	m, err := r.Mask(glyph.Shape{}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, m.Lit())
	m, err = r.Mask(glyph.At(1), 0, 0)
	require.NoError(t, err)
	assert.Zero(t, m.W)
	assert.Zero(t, r.Len())
}
