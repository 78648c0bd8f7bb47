// Package oracle is a ground-truth geographic index used only by tests and
// the CLI's verify command to check the geocell package's results against an exact
// structure. It wraps github.com/dhconnelly/rtreego the way
// pkg/rtree.GeoIndex once wrapped it directly over application data: here
// the R-tree is the measuring stick, and package geocell is the system
// under test.
package oracle

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/geocell-index/pkg/geocell"
	"github.com/kass/geocell-index/pkg/store"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialPlace adapts a store.Place to rtreego.Spatial so it can be
// inserted into the tree.
type spatialPlace struct {
	store.Place
	rect *rtreego.Rect
}

func (s *spatialPlace) Bounds() *rtreego.Rect { return s.rect }

// Index is a thread-safe R-tree over store.Place, built once from a full
// snapshot and queried read-only afterward.
type Index struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// New builds an empty ground-truth index.
func New() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// IndexPlaces inserts places into the tree. Geometry construction for each
// place is fanned out across a worker pool; the tree itself is mutated
// sequentially afterward since rtreego.Rtree is not safe for concurrent
// writes.
func (idx *Index) IndexPlaces(places []store.Place) error {
	if len(places) == 0 {
		return nil
	}

	items := make([]*spatialPlace, len(places))
	numWorkers := runtime.NumCPU()
	workerCh := make(chan int, len(places))
	var wg sync.WaitGroup

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := range workerCh {
				p := places[i]
				point := rtreego.Point{p.Point.Lat(), p.Point.Lon()}
				items[i] = &spatialPlace{Place: p, rect: point.ToRect(tolerance)}
			}
		}()
	}
	for i := range places {
		workerCh <- i
	}
	close(workerCh)
	wg.Wait()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, item := range items {
		idx.tree.Insert(item)
	}
	idx.itemCount.Add(int64(len(items)))
	return nil
}

// QueryBox returns every indexed place whose point falls within box,
// exactly (not a cell-cover superset), for comparison against
// geocell.FilterByBoundingBox(geocell.GeocellsForBoundingBox(box, nil)...).
func (idx *Index) QueryBox(box geocell.Box) ([]store.Place, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bottomLeft := rtreego.Point{box.South(), box.West()}
	size := []float64{box.North() - box.South(), box.East() - box.West()}
	rect, err := rtreego.NewRect(bottomLeft, size)
	if err != nil {
		return nil, fmt.Errorf("oracle: invalid bounding box: %w", err)
	}

	hits := idx.tree.SearchIntersect(rect)
	places := make([]store.Place, 0, len(hits))
	for _, hit := range hits {
		sp, ok := hit.(*spatialPlace)
		if !ok {
			continue
		}
		places = append(places, sp.Place)
	}
	return places, nil
}

// NearestNeighbors returns the exact n nearest places to center, ascending
// by distance, for comparison against geocell.ProximityFetch's output.
func (idx *Index) NearestNeighbors(center geocell.Point, n int) []store.Place {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queryPoint := rtreego.Point{center.Lat(), center.Lon()}
	hits := idx.tree.NearestNeighbors(n, queryPoint)

	places := make([]store.Place, 0, len(hits))
	for _, hit := range hits {
		sp, ok := hit.(*spatialPlace)
		if !ok {
			continue
		}
		places = append(places, sp.Place)
	}
	return places
}

// Count returns the number of places indexed so far.
func (idx *Index) Count() int64 {
	return idx.itemCount.Load()
}
