// Command geocellindex is a demonstration CLI for the geocell package: it
// loads random points into a geocell-indexed store and benchmarks bounding
// box and proximity queries against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	indexFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "geocellindex",
	Short: "Geocell-based geographical indexing demo",
	Long:  `A demonstration of 16-way geocell grid indexing for efficient geo-spatial queries.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&indexFile, "file", "f", "geocell_index.gob", "Index file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(loadCmd, queryCmd, proximityCmd, encodeCmd, boxCmd, childrenCmd, adjacentCmd, bboxCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
