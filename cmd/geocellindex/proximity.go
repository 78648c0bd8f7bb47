package main

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/geocell-index/pkg/geocell"
	"github.com/kass/geocell-index/pkg/store"
)

var (
	numNeighbors int
	maxDistance  float64
)

var proximityCmd = &cobra.Command{
	Use:   "proximity",
	Short: "Run nearest-neighbor benchmark queries on the index",
	Long:  `Execute random ProximityFetch searches against a previously loaded index.`,
	Run:   runProximity,
}

func init() {
	proximityCmd.Flags().IntVarP(&numQueries, "queries", "q", 1000, "Number of queries to run")
	proximityCmd.Flags().IntVarP(&numNeighbors, "neighbors", "n", 10, "Number of nearest neighbors to find")
	proximityCmd.Flags().Float64VarP(&maxDistance, "max-distance", "d", 0, "Max distance in meters (0 = unlimited)")
	proximityCmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "Number of worker goroutines")
}

func runProximity(cmd *cobra.Command, args []string) {
	index := store.NewMemoryStore()
	fmt.Printf("Loading index from %s...\n", indexFile)
	if err := index.LoadFromFile(indexFile); err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}
	fmt.Printf("Loaded %d points\n", index.Count())
	fmt.Printf("Running %d proximity searches (k=%d) using %d workers...\n", numQueries, numNeighbors, numWorkers)

	centers := make([]geocell.Point, numQueries)
	for i := 0; i < numQueries; i++ {
		p, err := geocell.NewPoint(rand.Float64()*178-89, rand.Float64()*360-180)
		if err != nil {
			continue
		}
		centers[i] = p
	}

	var totalResults atomic.Int64
	var queryCount atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	perWorker := numQueries / numWorkers
	for w := 0; w < numWorkers; w++ {
		s := w * perWorker
		e := s + perWorker
		if w == numWorkers-1 {
			e = numQueries
		}

		wg.Add(1)
		go func(workerID, s, e int) {
			defer wg.Done()
			opts := []geocell.Option{geocell.WithMaxResults(numNeighbors)}
			if maxDistance > 0 {
				opts = append(opts, geocell.WithMaxDistance(maxDistance))
			}

			local := 0
			for i := s; i < e; i++ {
				results, err := geocell.ProximityFetch(centers[i], index.Query, opts...)
				if err != nil {
					log.Printf("Worker %d: query error: %v", workerID, err)
					continue
				}
				local += len(results)
				queryCount.Add(1)

				if verbose && i%100 == 0 {
					fmt.Printf("Worker %d: query %d found %d neighbors\n", workerID, i, len(results))
				}
			}
			totalResults.Add(int64(local))
		}(w, s, e)
	}
	wg.Wait()
	elapsed := time.Since(start)

	completed := queryCount.Load()
	fmt.Printf("\nProximity benchmark results:\n")
	fmt.Printf("Total queries: %d\n", completed)
	fmt.Printf("Neighbors requested: %d\n", numNeighbors)
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Queries per second: %.0f\n", float64(completed)/elapsed.Seconds())
	fmt.Printf("Total results found: %d\n", totalResults.Load())
}
