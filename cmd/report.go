package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jsphweid/setscan/analysis"
	"github.com/jsphweid/setscan/constants"
	"github.com/jsphweid/setscan/db"
	"github.com/jsphweid/setscan/model"
	"github.com/jsphweid/setscan/util"
	"github.com/spf13/cobra"
)

var withMetadata bool

func init() {
	reportCmd.Flags().BoolVar(&withMetadata, "metadata", false, "annotate with metadata from DynamoDB")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report over all analyses",
	Long:  `Creates a report over all analyses`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type analysesReport struct {
	numFiles        int64
	numWindows      int64
	totalBytes      int64
	dataBytes       int64
	avgIndexPercent float32
	histogram       analysis.ClassHistogram
}

func analyzeAnalyses(hopByFilename map[string]uint32) analysesReport {
	report := analysesReport{histogram: make(analysis.ClassHistogram)}

	dir := constants.GetAnalysisDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}

	r, _ := regexp.Compile("^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}.dat$")
	for _, file := range files {
		filename := file.Name()
		if !r.MatchString(filename) {
			continue
		}
		report.numFiles += 1
		path := filepath.Join(dir, filename)

		f := util.OpenFileOrPanic(path)
		_, indexLength, err := analysis.ReadIndex(f)
		if err != nil {
			panic("Could not read analysis index: " + err.Error())
		}
		stats, err := f.Stat()
		if err != nil {
			panic("Could not get file stats")
		}
		f.Close()

		report.totalBytes += stats.Size()
		dataBytes := stats.Size() - int64(indexLength+4)
		report.dataBytes += dataBytes
		report.numWindows += dataBytes / constants.RecordSize

		byScale, err := analysis.ReadAll(path)
		if err != nil {
			panic("Could not read analysis file: " + err.Error())
		}
		hop, ok := hopByFilename[filename]
		if !ok {
			// stray .dat with no overview, nothing to weight it by
			continue
		}
		for scale, recs := range byScale {
			report.histogram.Add(scale, hop, recs)
		}
	}

	if report.totalBytes > 0 {
		report.avgIndexPercent = float32(report.totalBytes-report.dataBytes) / float32(report.totalBytes)
	}
	return report
}

// metadata lookups go out in batches of 10, the dynamo batch-get cap
func gatherMetadata(overviews []model.AnalysisOverview) map[string]model.MidiMetadata {
	res := make(map[string]model.MidiMetadata)
	var batch []string
	flush := func() {
		for k, v := range db.GetMidiMetadatas(batch) {
			res[k] = v
		}
		batch = batch[:0]
	}
	for _, o := range overviews {
		batch = append(batch, filepath.Base(o.SourcePath))
		if len(batch) == 10 {
			flush()
		}
	}
	if len(batch) > 0 {
		flush()
	}
	return res
}

func report() {
	overviews := util.ReadBinaryOrPanic[[]model.AnalysisOverview](analysis.AllAnalysesPath())
	hopByFilename := make(map[string]uint32, len(overviews))
	for _, o := range overviews {
		hopByFilename[o.Filename] = o.HopMs
	}
	r := analyzeAnalyses(hopByFilename)

	fmt.Printf("analyses: %v\n", r.numFiles)
	fmt.Printf("windows: %v\n", r.numWindows)

	// the two window counts come from different places and should agree
	var windowCounts []int
	for _, o := range overviews {
		windowCounts = append(windowCounts, o.NumWindows)
	}
	fmt.Printf("windows from overviews: %v\n", util.Sum(windowCounts))
	fmt.Printf("totalBytes: %v\n", r.totalBytes)
	fmt.Printf("avgIndexPercent: %v\n", r.avgIndexPercent)

	fmt.Println("top set classes:")
	for _, c := range r.histogram.Top(10) {
		fmt.Printf("  %v: %v windows, %vms (%.1f%% of sounding time)\n",
			c.Name, c.Windows, c.DurationMs, c.Share*100)
	}

	var metadatas map[string]model.MidiMetadata
	if withMetadata {
		metadatas = gatherMetadata(overviews)
	}
	for _, o := range overviews {
		fmt.Printf("file %v: %v (%v notes, %v windows, hop %vms)\n",
			o.FileNum, o.SourcePath, o.NumNotes, o.NumWindows, o.HopMs)
		if m, ok := metadatas[filepath.Base(o.SourcePath)]; ok {
			fmt.Printf("  %v - %v (%v, %v)\n", m.Artist, m.Title, m.Release, m.Year)
		}
	}
}
