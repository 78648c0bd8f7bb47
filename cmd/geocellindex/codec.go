package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kass/geocell-index/pkg/geocell"
)

var encodeResolution int

var encodeCmd = &cobra.Command{
	Use:   "encode <lat> <lon>",
	Short: "Encode a lat/lon point into a geocell id",
	Args:  cobra.ExactArgs(2),
	Run:   runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeResolution, "resolution", "r", geocell.MaxResolution, "Cell resolution (1..13)")
}

func runEncode(cmd *cobra.Command, args []string) {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("invalid latitude:", err)
		return
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("invalid longitude:", err)
		return
	}

	p, err := geocell.NewPoint(lat, lon)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(geocell.Compute(p, encodeResolution))
}

var boxCmd = &cobra.Command{
	Use:   "box <cell>",
	Short: "Decode a geocell id into its bounding box",
	Args:  cobra.ExactArgs(1),
	Run:   runBox,
}

func runBox(cmd *cobra.Command, args []string) {
	cell := args[0]
	if !geocell.IsValid(cell) {
		fmt.Println(geocell.ErrInvalidCell)
		return
	}
	fmt.Println(geocell.ComputeBox(cell))
}

var childrenCmd = &cobra.Command{
	Use:   "children <cell>",
	Short: "List the 16 immediate children of a geocell id",
	Args:  cobra.ExactArgs(1),
	Run:   runChildren,
}

func runChildren(cmd *cobra.Command, args []string) {
	cell := args[0]
	if !geocell.IsValid(cell) {
		fmt.Println(geocell.ErrInvalidCell)
		return
	}
	for _, c := range geocell.Children(cell) {
		fmt.Println(c)
	}
}

var adjacentAllFlag bool

var adjacentCmd = &cobra.Command{
	Use:   "adjacent <cell> [dx] [dy]",
	Short: "Print the neighbor of a geocell id in a given direction",
	Long:  `With --all, print all eight neighbors in fixed NW,N,NE,E,SE,S,SW,W order instead.`,
	Args:  cobra.RangeArgs(1, 3),
	Run:   runAdjacent,
}

func init() {
	adjacentCmd.Flags().BoolVarP(&adjacentAllFlag, "all", "a", false, "Print all eight neighbors")
}

var adjacentLabels = [8]string{"NW", "N", "NE", "E", "SE", "S", "SW", "W"}

func runAdjacent(cmd *cobra.Command, args []string) {
	cell := args[0]
	if !geocell.IsValid(cell) {
		fmt.Println(geocell.ErrInvalidCell)
		return
	}

	if adjacentAllFlag {
		for i, neighbor := range geocell.AllAdjacents(cell) {
			if neighbor == nil {
				fmt.Printf("%s: %v\n", adjacentLabels[i], geocell.ErrNoSuchCell)
				continue
			}
			fmt.Printf("%s: %s\n", adjacentLabels[i], *neighbor)
		}
		return
	}

	if len(args) != 3 {
		fmt.Println("dx and dy are required unless --all is given")
		return
	}
	dx, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("invalid dx:", err)
		return
	}
	dy, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Println("invalid dy:", err)
		return
	}

	neighbor, err := geocell.Adjacent(cell, geocell.Direction{DX: dx, DY: dy})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(neighbor)
}
