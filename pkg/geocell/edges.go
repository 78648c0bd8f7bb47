package geocell

import "sort"

// DistanceSortedEdges computes the rectangular hull of cells (the
// element-wise max of each cell box's north/east/south/west), projects
// point onto each of the hull's four edges, and returns the four
// (direction, distance) pairs sorted ascending by distance.
func DistanceSortedEdges(cells []string, point Point) ([]Direction, []float64) {
	hull := ComputeBox(cells[0])
	for _, c := range cells[1:] {
		b := ComputeBox(c)
		if b.North() > hull.north {
			hull.north = b.North()
		}
		if b.East() > hull.east {
			hull.east = b.East()
		}
		if b.South() > hull.south {
			hull.south = b.South()
		}
		if b.West() > hull.west {
			hull.west = b.West()
		}
	}

	directions := []Direction{North, East, South, West}
	projections := []Point{
		mustPoint(hull.north, point.lon),
		mustPoint(point.lat, hull.east),
		mustPoint(hull.south, point.lon),
		mustPoint(point.lat, hull.west),
	}
	distances := make([]float64, 4)
	for i, proj := range projections {
		distances[i] = Distance(point, proj)
	}

	sort.Sort(&edgeSorter{directions: directions, distances: distances})
	return directions, distances
}

type edgeSorter struct {
	directions []Direction
	distances  []float64
}

func (s *edgeSorter) Len() int { return len(s.distances) }
func (s *edgeSorter) Less(i, j int) bool {
	return s.distances[i] < s.distances[j]
}
func (s *edgeSorter) Swap(i, j int) {
	s.distances[i], s.distances[j] = s.distances[j], s.distances[i]
	s.directions[i], s.directions[j] = s.directions[j], s.directions[i]
}

// PointDistance returns the great-circle distance from point to cell. For a
// point inside cell it is the distance to the nearest of the four edges (0
// on an edge); outside, it is the distance to the nearest edge projection
// or, when point lies outside both the latitude and longitude range, the
// nearest corner.
func PointDistance(cell string, point Point) float64 {
	b := ComputeBox(cell)
	lonIn := point.lon >= b.west && point.lon <= b.east
	latIn := point.lat >= b.south && point.lat <= b.north

	switch {
	case lonIn && latIn:
		return minDistance(point,
			mustPoint(b.north, point.lon),
			mustPoint(b.south, point.lon),
			mustPoint(point.lat, b.east),
			mustPoint(point.lat, b.west),
		)
	case lonIn && !latIn:
		return minDistance(point,
			mustPoint(b.north, point.lon),
			mustPoint(b.south, point.lon),
		)
	case !lonIn && latIn:
		return minDistance(point,
			mustPoint(point.lat, b.east),
			mustPoint(point.lat, b.west),
		)
	default:
		return minDistance(point,
			mustPoint(b.north, b.east),
			mustPoint(b.north, b.west),
			mustPoint(b.south, b.east),
			mustPoint(b.south, b.west),
		)
	}
}

func minDistance(from Point, candidates ...Point) float64 {
	min := Distance(from, candidates[0])
	for _, c := range candidates[1:] {
		if d := Distance(from, c); d < min {
			min = d
		}
	}
	return min
}
