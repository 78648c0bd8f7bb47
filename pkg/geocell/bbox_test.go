package geocell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	name string
	p    Point
}

func (r fakeRow) Location() Point { return r.p }

func TestGeocellsForBoundingBoxUsesDefaultCostWhenNil(t *testing.T) {
	box, _ := NewBox(43.195111, -89.998193, 43.19302, -90.002356)
	cells := GeocellsForBoundingBox(box, nil)
	assert.LessOrEqual(t, len(cells), 16)
	assert.NotEmpty(t, cells)
}

func TestFilterByBoundingBoxDropsOutsideRows(t *testing.T) {
	box, err := NewBox(42, -73, 41, -75)
	require.NoError(t, err)

	inside, _ := NewPoint(41.5, -74)
	outside, _ := NewPoint(50, -74)

	rows := []fakeRow{
		{"inside", inside},
		{"outside", outside},
	}

	filtered := FilterByBoundingBox[fakeRow](box, rows)
	require.Len(t, filtered, 1)
	assert.Equal(t, "inside", filtered[0].name)
}

func TestFilterByBoundingBoxKeepsBoundaryRows(t *testing.T) {
	box, err := NewBox(42, -73, 41, -75)
	require.NoError(t, err)
	onEdge, _ := NewPoint(42, -74)

	rows := []fakeRow{{"edge", onEdge}}
	filtered := FilterByBoundingBox[fakeRow](box, rows)
	require.Len(t, filtered, 1)
}
