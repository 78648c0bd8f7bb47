package geocell

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollinearSameCellIsCollinearBothWays(t *testing.T) {
	cell := "8e6187fe6187fa"
	assert.True(t, Collinear(cell, cell, true))
	assert.True(t, Collinear(cell, cell, false))
}

func TestCollinearDetectsColumnMismatch(t *testing.T) {
	a := "8e6187fe6187fa"
	east, err := Adjacent(a, East)
	require.NoError(t, err)
	assert.False(t, Collinear(a, east, true))
}

func TestInterpolationCountMatchesInterpolateLength(t *testing.T) {
	p, _ := NewPoint(43.195110, -89.998193)
	sw := Compute(p, 10)
	ne := sw
	// build a small ne corner two steps east and one north of sw
	for i := 0; i < 2; i++ {
		var err error
		ne, err = Adjacent(ne, East)
		require.NoError(t, err)
	}
	ne, err := Adjacent(ne, North)
	require.NoError(t, err)

	count := InterpolationCount(ne, sw)
	cells := Interpolate(ne, sw)
	assert.Equal(t, count, len(cells))
}

func TestInterpolateGridIsRowMajorWestToEastSouthToNorth(t *testing.T) {
	p, _ := NewPoint(0, 0)
	sw := Compute(p, 10)
	ne, err := Adjacent(sw, East)
	require.NoError(t, err)
	ne, err = Adjacent(ne, North)
	require.NoError(t, err)

	grid := Interpolate(ne, sw)
	require.Len(t, grid, 4)
	assert.Equal(t, sw, grid[0])
	assert.Equal(t, ne, grid[3])
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "8e61", CommonPrefix("8e6187f", "8e6123a", "8e6199b"))
	assert.Equal(t, "", CommonPrefix("abc", "xyz"))
	assert.Equal(t, "", CommonPrefix())
}

func TestBestBBoxSearchCellsDefaultCostSixteenCells(t *testing.T) {
	box, err := NewBox(43.195111, -89.998193, 43.19302, -90.002356)
	require.NoError(t, err)

	cells := BestBBoxSearchCells(box, DefaultCost)

	want := []string{
		"8ff77dfd4", "8ff77dfd5", "8ff77dfd6", "8ff77dfd7",
		"8ff77dfdc", "8ff77dfdd", "8ff77dfde", "8ff77dfdf",
		"9aa228a80", "9aa228a81", "9aa228a82", "9aa228a83",
		"9aa228a88", "9aa228a89", "9aa228a8a", "9aa228a8b",
	}
	assert.Equal(t, want, cells)
	assert.True(t, sort.StringsAreSorted(cells))

	for _, c := range cells {
		b := ComputeBox(c)
		assert.LessOrEqual(t, b.South(), box.North())
		assert.GreaterOrEqual(t, b.North(), box.South())
		assert.LessOrEqual(t, b.West(), box.East())
		assert.GreaterOrEqual(t, b.East(), box.West())
	}
}

func TestBestBBoxSearchCellsSinglePointCustomCost(t *testing.T) {
	box, err := NewBox(43.195110, -89.998193, 43.195110, -89.998193)
	require.NoError(t, err)

	fullResolution := func(n, r int) float64 {
		if r <= MaxResolution {
			return 0
		}
		return math.Inf(1)
	}

	cells := BestBBoxSearchCells(box, fullResolution)
	require.Len(t, cells, 1)
	assert.Len(t, cells[0], MaxResolution)
	assert.Equal(t, "9aa228a8b3b00", cells[0])
}

func TestDefaultCostForcesSixteenOrFewer(t *testing.T) {
	assert.Equal(t, 0.0, DefaultCost(16, 5))
	assert.True(t, math.IsInf(DefaultCost(17, 5), 1))
}
