package cmd

import (
	"strconv"

	"github.com/jsphweid/setscan/analysis"
	"github.com/jsphweid/setscan/constants"
	"github.com/jsphweid/setscan/util"
	"github.com/jsphweid/setscan/window"
	"github.com/spf13/cobra"
)

var hopMs uint32
var numScales int

func init() {
	analyzeCmd.Flags().Uint32Var(&hopMs, "hop", constants.DefaultHopMs, "window hop in milliseconds")
	analyzeCmd.Flags().IntVar(&numScales, "scales", 0, "max window scale in hops, 0 for all")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [maxFiles]",
	Short: "Analyzes all midi files under MEDIA_PATH",
	Long:  `Analyzes all midi files under MEDIA_PATH`,
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		Analyze(maxNum)
	},
}

// Analyze runs the pipeline over MEDIA_PATH and fills ANALYSIS_PATH.
// Exported so the e2e tests can drive it.
func Analyze(maxNum int) {
	util.RecreateAnalysisDir()
	paths := util.GatherAllMidiPaths(constants.GetMediaDir(), maxNum)
	fileNumMap := analysis.CreateFileNumMap(paths)
	params := window.Params{HopMs: hopMs, Scales: numScales}
	if params.HopMs == 0 {
		params.HopMs = constants.DefaultHopMs
	}
	overviews := analysis.RunAll(fileNumMap, params)
	util.CreateBinary(analysis.AllAnalysesPath(), overviews)
}
