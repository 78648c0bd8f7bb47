package geocell

import "sort"

// Entity is anything a proximity search can return: it must expose a
// stable identity (used to dedup across merge rounds) and a location.
type Entity interface {
	Located
	ID() any
}

// QueryRunner maps a set of candidate cell ids to the entities whose
// persisted cell list intersects it. It is supplied by the caller's
// datastore; any error it returns aborts ProximityFetch immediately and is
// not retried.
type QueryRunner func(cells []string) ([]Entity, error)

// Result pairs an entity with its great-circle distance from the search
// center, in meters.
type Result struct {
	Entity   Entity
	Distance float64
}

// Params controls ProximityFetch's output size and radius cutoff.
type Params struct {
	MaxResults  int
	MaxDistance float64 // meters; 0 means unlimited
}

// Option configures Params.
type Option func(*Params)

// WithMaxResults caps the number of results returned (default 10).
func WithMaxResults(n int) Option {
	return func(p *Params) { p.MaxResults = n }
}

// WithMaxDistance bounds results to strictly less than meters away
// (default 0, meaning unlimited).
func WithMaxDistance(meters float64) Option {
	return func(p *Params) { p.MaxDistance = meters }
}

func defaultParams() Params {
	return Params{MaxResults: 10, MaxDistance: 0}
}

// ProximityFetch returns the nearest MaxResults entities to center,
// ascending by distance, optionally bounded to MaxDistance meters. It
// iteratively expands a geocell neighborhood around center, querying
// runner for each newly touched batch of cells, until a lower bound on any
// unseen entity's distance (the nearest edge of the searched cells' hull)
// meets or exceeds the current K-th result's distance.
//
// The termination argument assumes runner is complete: every entity whose
// cell list intersects the requested cells is returned. Adjacency across
// the poles has no defined neighbor (ErrNoSuchCell); the loop does not
// compensate for this, so results near a pole are not guaranteed complete.
func ProximityFetch(center Point, runner QueryRunner, opts ...Option) ([]Result, error) {
	params := defaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	if params.MaxResults <= 0 {
		params.MaxResults = 10
	}

	var results []Result
	searched := make(map[string]bool)

	focus := Compute(center, MaxResolution)
	currentCells := []string{focus}
	edges := []Direction{{0, 0}}
	edgeDists := []float64{0}

	for len(currentCells) > 0 {
		lb := edgeDists[0]
		if params.MaxDistance > 0 && lb > params.MaxDistance {
			break
		}

		fresh := make([]string, 0, len(currentCells))
		for _, c := range currentCells {
			if !searched[c] {
				fresh = append(fresh, c)
			}
		}

		batch, err := runner(fresh)
		if err != nil {
			return nil, err
		}
		for _, c := range currentCells {
			searched[c] = true
		}

		annotated := make([]Result, len(batch))
		for i, e := range batch {
			annotated[i] = Result{Entity: e, Distance: Distance(center, e.Location())}
		}
		sort.Slice(annotated, func(i, j int) bool { return annotated[i].Distance < annotated[j].Distance })
		if len(annotated) > params.MaxResults {
			annotated = annotated[:params.MaxResults]
		}

		MergeInPlace(&results, [][]Result{annotated},
			func(r Result) any { return r.Entity.ID() },
			func(a, b Result) bool { return a.Distance < b.Distance },
		)
		if len(results) > params.MaxResults {
			results = results[:params.MaxResults]
		}

		edges, edgeDists = DistanceSortedEdges(currentCells, center)

		switch {
		case len(results) == 0 || len(currentCells) == 4:
			newFocus := focus[:len(focus)-1]
			focus = newFocus
			if newFocus == "" {
				currentCells = nil
				break
			}
			seenParent := make(map[string]bool, len(currentCells))
			next := make([]string, 0, len(currentCells))
			for _, c := range currentCells {
				parent := c[:len(c)-1]
				if !seenParent[parent] {
					seenParent[parent] = true
					next = append(next, parent)
				}
			}
			currentCells = next

		case len(currentCells) == 1:
			if next, err := Adjacent(currentCells[0], edges[0]); err == nil {
				currentCells = append(currentCells, next)
			}

		case len(currentCells) == 2:
			focusEdges, _ := DistanceSortedEdges([]string{focus}, center)
			nearestIsHorizontal := focusEdges[0].DX != 0

			var perp Direction
			for _, d := range edges {
				if nearestIsHorizontal && d.DY != 0 {
					perp = d
					break
				}
				if !nearestIsHorizontal && d.DX != 0 {
					perp = d
					break
				}
			}

			added := make([]string, 0, len(currentCells))
			for _, c := range currentCells {
				if next, err := Adjacent(c, perp); err == nil {
					added = append(added, next)
				}
			}
			currentCells = append(currentCells, added...)
		}

		if len(results) < params.MaxResults {
			continue
		}
		kthDist := results[params.MaxResults-1].Distance
		if lb >= kthDist {
			break
		}
	}

	if len(results) > params.MaxResults {
		results = results[:params.MaxResults]
	}
	if params.MaxDistance > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.Distance < params.MaxDistance {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	return results, nil
}
