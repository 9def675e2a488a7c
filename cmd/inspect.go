package cmd

import (
	"fmt"
	"sort"

	"github.com/jsphweid/setscan/analysis"
	"github.com/jsphweid/setscan/setclass"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects an analysis file",
	Long:  `Inspects an analysis file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	byScale, err := analysis.ReadAll(path)
	if err != nil {
		panic("Could not read analysis file: " + err.Error())
	}

	scales := make([]int, 0, len(byScale))
	for s := range byScale {
		scales = append(scales, int(s))
	}
	sort.Ints(scales)

	for _, scale := range scales {
		recs := byScale[uint8(scale)]
		fmt.Printf("scale: %v (%v windows)\n", scale, len(recs))
		for _, rec := range recs {
			set := setclass.PCSet(rec.Set)
			fmt.Printf("  %vms %v %v\n", rec.StartMs, set, setclass.ByIndex(rec.Class).Name)
		}
	}
}
