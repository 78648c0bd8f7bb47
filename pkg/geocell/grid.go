package geocell

import (
	"math"
	"sort"
)

// MaxFeasibleBBoxCells bounds how many cells BestBBoxSearchCells will
// materialize at a given resolution before giving up on it as too fine.
const MaxFeasibleBBoxCells = 300

// CostFunc scores a candidate (cell count, resolution) pair for
// BestBBoxSearchCells; lower is better.
type CostFunc func(numCells, resolution int) float64

// DefaultCost forces the smallest resolution whose interpolation spans at
// most Grid*Grid cells.
func DefaultCost(numCells, resolution int) float64 {
	if numCells > Grid*Grid {
		return math.Inf(1)
	}
	return 0
}

// Collinear reports whether a and b share the same column (columnTest
// true) or row (columnTest false) over every character they have in
// common, walking to the length of the shorter string.
func Collinear(a, b string, columnTest bool) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		xa, ya := subdivXY(a[i])
		xb, yb := subdivXY(b[i])
		if columnTest {
			if xa != xb {
				return false
			}
		} else if ya != yb {
			return false
		}
	}
	return true
}

// Interpolate returns every same-resolution cell in the rectangular grid
// whose corners are ne and sw, assuming ne lies northeast of sw. The
// result is row-major, west-to-east within a row, south-to-north across
// rows.
func Interpolate(ne, sw string) []string {
	row := []string{sw}
	cur := sw
	for !Collinear(cur, ne, true) {
		next, err := Adjacent(cur, East)
		if err != nil {
			break
		}
		cur = next
		row = append(row, cur)
	}

	var grid []string
	currentRow := row
	for {
		grid = append(grid, currentRow...)
		if currentRow[len(currentRow)-1] == ne {
			break
		}
		nextRow := make([]string, len(currentRow))
		for i, c := range currentRow {
			n, err := Adjacent(c, North)
			if err != nil {
				return grid
			}
			nextRow[i] = n
		}
		currentRow = nextRow
	}
	return grid
}

// InterpolationCount computes len(Interpolate(ne, sw)) in closed form,
// without materializing the grid. Used as a cheap pre-filter before
// calling Interpolate.
func InterpolationCount(ne, sw string) int {
	boxSW := ComputeBox(sw)
	boxNE := ComputeBox(ne)

	spanLat := boxSW.North() - boxSW.South()
	spanLon := boxSW.East() - boxSW.West()

	cols := int(math.Floor((boxNE.East() - boxSW.West()) / spanLon))
	rows := int(math.Floor((boxNE.North() - boxSW.South()) / spanLat))

	return cols * rows
}

// CommonPrefix returns the longest string that is a prefix of every cell
// given. It returns "" if cells is empty.
func CommonPrefix(cells ...string) string {
	if len(cells) == 0 {
		return ""
	}
	prefix := cells[0]
	for _, c := range cells[1:] {
		n := 0
		for n < len(prefix) && n < len(c) && prefix[n] == c[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// BestBBoxSearchCells picks the cheapest set of same-resolution cells that
// covers box, as scored by cost. It starts at the resolution implied by
// box's corners' common prefix and increases resolution until cost stops
// improving (cost is assumed monotonically non-decreasing past its first
// minimum) or resolution is exhausted.
func BestBBoxSearchCells(box Box, cost CostFunc) []string {
	if cost == nil {
		cost = DefaultCost
	}

	ne := Compute(box.NorthEast(), MaxResolution)
	sw := Compute(box.SouthWest(), MaxResolution)
	r0 := len(CommonPrefix(ne, sw))

	minCost := math.Inf(1)
	var best []string

	for r := r0; r <= MaxResolution+1; r++ {
		neR := truncateCell(ne, r)
		swR := truncateCell(sw, r)

		n := InterpolationCount(neR, swR)
		if n > MaxFeasibleBBoxCells {
			continue
		}

		cells := Interpolate(neR, swR)
		sort.Strings(cells)

		c := cost(len(cells), r)
		if c <= minCost {
			minCost = c
			best = cells
		} else {
			break
		}
	}

	return best
}

func truncateCell(cell string, r int) string {
	if r > len(cell) {
		return cell
	}
	return cell[:r]
}
