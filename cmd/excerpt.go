package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/setscan/excerpt"
	"github.com/jsphweid/setscan/midifile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(excerptCmd)
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt <file.mid> <startMs> <lengthMs> <out.mid>",
	Short: "Clips a midi file down to one window for auditioning",
	Long:  `Clips a midi file down to one window for auditioning`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 4 {
			panic("Need 4 args...")
		}
		startMs, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			panic(err)
		}
		lengthMs, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			panic(err)
		}
		makeExcerpt(args[0], uint32(startMs), uint32(lengthMs), args[3])
	},
}

func makeExcerpt(inPath string, startMs uint32, lengthMs uint32, outPath string) {
	parsed, err := midifile.Read(inPath)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}
	clipped := excerpt.Create(parsed, startMs, startMs+lengthMs)
	if err := excerpt.WriteFile(clipped, outPath); err != nil {
		panic("Could not write excerpt: " + err.Error())
	}
	fmt.Printf("Wrote excerpt to %v\n", outPath)
}
