package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightTable_CumulativeOffsets(t *testing.T) {
	tbl := NewHeightTable(4, 300)
	for i, want := range []float64{0, 300, 600, 900, 1200} {
		assert.Equal(t, want, tbl.Offset(i))
	}
	assert.Equal(t, 1200.0, tbl.Total())
}

func TestHeightTable_SetInvalidatesOnlyLaterOffsets(t *testing.T) {
	tbl := NewHeightTable(5, 100)
	require.Equal(t, 500.0, tbl.Total())

	require.True(t, tbl.Set(2, 150))
	assert.Equal(t, 2, tbl.valid, "watermark drops to the changed row")
	assert.Equal(t, 200.0, tbl.Offset(2))
	assert.Equal(t, 350.0, tbl.Offset(3))
	assert.Equal(t, 550.0, tbl.Total())
	assert.Equal(t, 5, tbl.valid)
}

func TestHeightTable_SetIsIdempotent(t *testing.T) {
	tbl := NewHeightTable(3, 100)
	require.True(t, tbl.Set(1, 120))
	total := tbl.Total()

	assert.False(t, tbl.Set(1, 120))
	assert.False(t, tbl.Set(1, 120+Epsilon/2))
	assert.Equal(t, 3, tbl.valid, "no-op keeps offsets valid")
	assert.Equal(t, total, tbl.Total())
	assert.Equal(t, 1, tbl.MeasuredCount())
}

func TestHeightTable_SetEqualToEstimateMarksMeasured(t *testing.T) {
	tbl := NewHeightTable(3, 100)
	tbl.Total()
	assert.True(t, tbl.Set(0, 100))
	assert.True(t, tbl.Measured(0))
	assert.Equal(t, 3, tbl.valid)
}

func TestHeightTable_RowAtBoundaries(t *testing.T) {
	tbl := NewHeightTable(4, 300)
	tests := []struct {
		y    float64
		want int
	}{
		{-50, 0},
		{0, 0},
		{299.9, 0},
		{300, 1},
		{650, 2},
		{1199, 3},
		{1200, 3},
		{5000, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tbl.RowAt(tt.y), "y=%g", tt.y)
	}
}

func TestHeightTable_RowAtSkipsZeroHeightRows(t *testing.T) {
	tbl := NewHeightTable(3, 10)
	tbl.Set(1, 0)
	// Row 1 is empty at y=10, so y=10 belongs to row 2.
	assert.Equal(t, 2, tbl.RowAt(10))
}

func TestHeightTable_Empty(t *testing.T) {
	tbl := NewHeightTable(0, 100)
	assert.Equal(t, -1, tbl.RowAt(0))
	assert.Equal(t, 0.0, tbl.Total())
}
