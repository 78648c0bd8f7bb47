package main

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kass/geocell-index/pkg/geocell"
	"github.com/kass/geocell-index/pkg/oracle"
	"github.com/kass/geocell-index/pkg/store"
)

var verifyChecks int

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the geocell index against an exact R-tree oracle",
	Long: `Loads the index, builds an independent github.com/dhconnelly/rtreego
index over the same places, and compares GeocellsForBoundingBox/
FilterByBoundingBox and ProximityFetch results against the oracle's exact
QueryBox and NearestNeighbors for a batch of random queries.`,
	Run: runVerify,
}

func init() {
	verifyCmd.Flags().IntVarP(&verifyChecks, "checks", "c", 100, "Number of random bbox/proximity checks to run")
}

func runVerify(cmd *cobra.Command, args []string) {
	mem := store.NewMemoryStore()
	fmt.Printf("Loading index from %s...\n", indexFile)
	if err := mem.LoadFromFile(indexFile); err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}
	places := mem.All()
	fmt.Printf("Loaded %d places\n", len(places))

	ground := oracle.New()
	if err := ground.IndexPlaces(places); err != nil {
		log.Fatalf("Failed to build oracle index: %v", err)
	}

	bboxMismatches := verifyBBoxes(mem, ground)
	proximityMismatches := verifyProximity(mem, ground)

	fmt.Printf("\nChecked %d bbox queries: %d mismatch(es)\n", verifyChecks, bboxMismatches)
	fmt.Printf("Checked %d proximity queries: %d mismatch(es)\n", verifyChecks, proximityMismatches)
	if bboxMismatches > 0 || proximityMismatches > 0 {
		log.Fatal("verification found mismatches against the oracle")
	}
	fmt.Println("OK: geocell results match the oracle on every check")
}

func verifyBBoxes(mem *store.MemoryStore, ground *oracle.Index) int {
	mismatches := 0
	for i := 0; i < verifyChecks; i++ {
		centerLat := rand.Float64()*178 - 89
		centerLon := rand.Float64()*360 - 180
		size := rand.Float64()*1.9 + 0.1

		box, err := geocell.NewBox(centerLat+size/2, centerLon+size/2, centerLat-size/2, centerLon-size/2)
		if err != nil {
			continue
		}

		cells := geocell.GeocellsForBoundingBox(box, nil)
		raw, err := mem.Query(cells)
		if err != nil {
			log.Printf("query error: %v", err)
			continue
		}
		got := geocell.FilterByBoundingBox[store.Place](box, asPlaces(raw))

		want, err := ground.QueryBox(box)
		if err != nil {
			log.Printf("oracle query error: %v", err)
			continue
		}

		if !sameIDs(got, want) {
			mismatches++
			if verbose {
				fmt.Printf("bbox mismatch at %v: got %d, oracle %d\n", box, len(got), len(want))
			}
		}
	}
	return mismatches
}

func verifyProximity(mem *store.MemoryStore, ground *oracle.Index) int {
	mismatches := 0
	for i := 0; i < verifyChecks; i++ {
		center, err := geocell.NewPoint(rand.Float64()*178-89, rand.Float64()*360-180)
		if err != nil {
			continue
		}

		got, err := geocell.ProximityFetch(center, mem.Query, geocell.WithMaxResults(5))
		if err != nil {
			log.Printf("proximity error: %v", err)
			continue
		}
		gotPlaces := make([]store.Place, 0, len(got))
		for _, r := range got {
			if p, ok := r.Entity.(store.Place); ok {
				gotPlaces = append(gotPlaces, p)
			}
		}

		want := ground.NearestNeighbors(center, 5)

		if !sameIDs(gotPlaces, want) {
			mismatches++
			if verbose {
				fmt.Printf("proximity mismatch at %v: got %d, oracle %d\n", center, len(gotPlaces), len(want))
			}
		}
	}
	return mismatches
}

func sameIDs(a, b []store.Place) bool {
	if len(a) != len(b) {
		return false
	}
	idsA := placeIDs(a)
	idsB := placeIDs(b)
	for i := range idsA {
		if idsA[i] != idsB[i] {
			return false
		}
	}
	return true
}

func placeIDs(places []store.Place) []string {
	ids := make([]string, len(places))
	for i, p := range places {
		ids[i] = p.PlaceID
	}
	sort.Strings(ids)
	return ids
}
