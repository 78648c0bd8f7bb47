package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/geocell-index/pkg/geocell"
	"github.com/kass/geocell-index/pkg/store"
)

var (
	numPoints   int
	numWorkers  int
	loadWorkers int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load random points into the index",
	Long:  `Generate and load random geographical points, concentrated around major population centers, into the geocell index.`,
	Run:   runLoad,
}

func init() {
	loadCmd.Flags().IntVarP(&numPoints, "points", "p", 100000, "Number of points to generate")
	loadCmd.Flags().IntVarP(&loadWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
}

func runLoad(cmd *cobra.Command, args []string) {
	numWorkers = loadWorkers
	fmt.Printf("Generating %d random points using %d workers...\n", numPoints, numWorkers)
	places := generateRandomPlaces(numPoints)

	index := store.NewMemoryStore()

	start := time.Now()
	index.InsertAll(places)
	loadTime := time.Since(start)

	fmt.Printf("Loaded %d points in %v\n", index.Count(), loadTime)
	fmt.Printf("Points per second: %.0f\n", float64(numPoints)/loadTime.Seconds())

	if err := index.SaveToFile(indexFile); err != nil {
		log.Fatalf("Failed to save index: %v", err)
	}
	fmt.Printf("Index saved to %s\n", indexFile)
}

// generateRandomPlaces mirrors a realistic global distribution: points
// cluster around a handful of population centers, with a uniform remainder.
func generateRandomPlaces(n int) []store.Place {
	places := make([]store.Place, n)

	batchSize := n / numWorkers
	if batchSize < 1 {
		batchSize = 1
	}
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		start := w * batchSize
		end := start + batchSize
		if w == numWorkers-1 {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(start)))

			for i := start; i < end; i++ {
				var lat, lon float64
				switch r.Intn(5) {
				case 0: // North America
					lat = r.Float64()*30 + 30
					lon = r.Float64()*60 - 120
				case 1: // Europe
					lat = r.Float64()*20 + 40
					lon = r.Float64()*40 - 10
				case 2: // Asia
					lat = r.Float64()*40 + 20
					lon = r.Float64()*80 + 60
				case 3: // South America
					lat = r.Float64()*40 - 50
					lon = r.Float64()*30 - 80
				default:
					lat = r.Float64()*178 - 89
					lon = r.Float64()*360 - 180
				}

				p, err := geocell.NewPoint(lat, lon)
				if err != nil {
					continue
				}
				places[i] = store.NewPlace(fmt.Sprintf("point_%d", i), fmt.Sprintf("point_%d", i), p)
			}
		}(start, end)
	}

	wg.Wait()
	return places
}
