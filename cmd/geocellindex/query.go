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

var numQueries int

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run bounding box benchmark queries on the index",
	Long:  `Execute random bounding box searches against a previously loaded index.`,
	Run:   runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&numQueries, "queries", "q", 1000, "Number of queries to run")
	queryCmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "Number of worker goroutines")
}

func runQuery(cmd *cobra.Command, args []string) {
	index := store.NewMemoryStore()
	fmt.Printf("Loading index from %s...\n", indexFile)
	if err := index.LoadFromFile(indexFile); err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}
	fmt.Printf("Loaded %d points\n", index.Count())
	fmt.Printf("Running %d bounding box queries using %d workers...\n", numQueries, numWorkers)

	boxes := make([]geocell.Box, numQueries)
	for i := 0; i < numQueries; i++ {
		centerLat := rand.Float64()*178 - 89
		centerLon := rand.Float64()*360 - 180
		size := rand.Float64()*1.9 + 0.1

		b, err := geocell.NewBox(centerLat+size/2, centerLon+size/2, centerLat-size/2, centerLon-size/2)
		if err != nil {
			continue
		}
		boxes[i] = b
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
			local := 0
			for i := s; i < e; i++ {
				box := boxes[i]
				cells := geocell.GeocellsForBoundingBox(box, nil)
				entities, err := index.Query(cells)
				if err != nil {
					log.Printf("Worker %d: query error: %v", workerID, err)
					continue
				}
				filtered := geocell.FilterByBoundingBox[store.Place](box, asPlaces(entities))
				local += len(filtered)
				queryCount.Add(1)

				if verbose && i%100 == 0 {
					fmt.Printf("Worker %d: query %d found %d results\n", workerID, i, len(filtered))
				}
			}
			totalResults.Add(int64(local))
		}(w, s, e)
	}
	wg.Wait()
	elapsed := time.Since(start)

	completed := queryCount.Load()
	fmt.Printf("\nBenchmark results:\n")
	fmt.Printf("Total queries: %d\n", completed)
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Queries per second: %.0f\n", float64(completed)/elapsed.Seconds())
	fmt.Printf("Total results found: %d\n", totalResults.Load())
}

func asPlaces(entities []geocell.Entity) []store.Place {
	places := make([]store.Place, 0, len(entities))
	for _, e := range entities {
		if p, ok := e.(store.Place); ok {
			places = append(places, p)
		}
	}
	return places
}
