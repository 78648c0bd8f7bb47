package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kass/geocell-index/pkg/geocell"
)

var bboxCmd = &cobra.Command{
	Use:   "bbox <north> <east> <south> <west>",
	Short: "Print the geocell cover for a bounding box",
	Long:  `Compute the small set of cell ids (DefaultCost) that cover the given box, suitable for ANDing into a datastore query.`,
	Args:  cobra.ExactArgs(4),
	Run:   runBBox,
}

func runBBox(cmd *cobra.Command, args []string) {
	var corners [4]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Printf("invalid coordinate %q: %v\n", a, err)
			return
		}
		corners[i] = v
	}

	box, err := geocell.NewBox(corners[0], corners[1], corners[2], corners[3])
	if err != nil {
		fmt.Println(err)
		return
	}

	cells := geocell.GeocellsForBoundingBox(box, nil)
	fmt.Printf("%d cell(s) cover %v:\n", len(cells), box)
	for _, c := range cells {
		fmt.Println(c)
	}
}
