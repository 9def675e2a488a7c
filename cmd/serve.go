package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/setscan/analysis"
	"github.com/jsphweid/setscan/constants"
	"github.com/jsphweid/setscan/db"
	"github.com/jsphweid/setscan/model"
	"github.com/jsphweid/setscan/setclass"
	"github.com/jsphweid/setscan/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var allAnalyses []model.AnalysisOverview
var analysesByNum map[uint32]model.AnalysisOverview

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `serves`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles loads the analysis overviews the handlers serve from.
// Exported so the e2e tests can drive it.
func LoadServeFiles() {
	allAnalyses = util.ReadBinaryOrPanic[[]model.AnalysisOverview](analysis.AllAnalysesPath())
	analysesByNum = make(map[uint32]model.AnalysisOverview, len(allAnalyses))
	for _, o := range allAnalyses {
		analysesByNum[o.FileNum] = o
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleClassify classifies one pitch collection. Exported so the e2e
// tests can drive it.
func HandleClassify(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	var input model.ClassifyRequestBody
	err = json.Unmarshal(reqBody, &input)
	if err != nil {
		writeError(w, 400, "could not unmarshal request body: "+err.Error())
		return
	}

	for _, p := range input.Notes {
		if p < 0 || p > 127 {
			writeError(w, 400, fmt.Sprintf("midipitch %v out of range", p))
			return
		}
	}

	var pitches []uint8
	for _, p := range input.Notes {
		pitches = append(pitches, uint8(p))
	}
	set := setclass.FromMidipitches(pitches)
	json.NewEncoder(w).Encode(model.ClassifyResponse{
		PitchClasses:   classesToInts(set.Classes()),
		NormalForm:     classesToInts(set.NormalForm()),
		PrimeForm:      classesToInts(set.PrimeForm()),
		Forte:          set.Forte(),
		IntervalVector: set.IntervalVector(),
	})
}

func classesToInts(classes []uint8) []int {
	res := make([]int, len(classes))
	for i, pc := range classes {
		res[i] = int(pc)
	}
	return res
}

func toSummary(o model.AnalysisOverview, metadata *model.MidiMetadata) model.AnalysisSummary {
	return model.AnalysisSummary{
		FileNum:    o.FileNum,
		SourcePath: o.SourcePath,
		HopMs:      o.HopMs,
		Scales:     o.Scales,
		NumNotes:   o.NumNotes,
		NumWindows: o.NumWindows,
		Metadata:   metadata,
	}
}

func handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	res := make([]model.AnalysisSummary, 0, len(allAnalyses))
	for _, o := range allAnalyses {
		res = append(res, toSummary(o, nil))
	}
	json.NewEncoder(w).Encode(res)
}

func handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	o, ok := overviewFromRequest(w, r)
	if !ok {
		return
	}

	var metadata *model.MidiMetadata
	filename := filepath.Base(o.SourcePath)
	if m, ok := db.GetMidiMetadatas([]string{filename})[filename]; ok {
		metadata = &m
	}
	json.NewEncoder(w).Encode(toSummary(o, metadata))
}

func handleGetScale(w http.ResponseWriter, r *http.Request) {
	o, ok := overviewFromRequest(w, r)
	if !ok {
		return
	}
	scale, err := strconv.ParseUint(mux.Vars(r)["scale"], 10, 8)
	if err != nil {
		writeError(w, 400, "scale must be a small number")
		return
	}

	path := filepath.Join(constants.GetAnalysisDir(), o.Filename)
	recs, err := analysis.ReadScale(path, uint8(scale))
	if err != nil {
		writeError(w, 404, fmt.Sprintf("no scale %v for analysis %v", scale, o.FileNum))
		return
	}

	windows := make([]model.ScaleWindow, 0, len(recs))
	for _, rec := range recs {
		set := setclass.PCSet(rec.Set)
		windows = append(windows, model.ScaleWindow{
			StartMs:      rec.StartMs,
			PitchClasses: classesToInts(set.Classes()),
			Forte:        setclass.ByIndex(rec.Class).Name,
		})
	}
	json.NewEncoder(w).Encode(model.ScaleResponse{
		FileNum:  o.FileNum,
		Scale:    int(scale),
		LengthMs: uint32(scale) * o.HopMs,
		Windows:  windows,
	})
}

func overviewFromRequest(w http.ResponseWriter, r *http.Request) (model.AnalysisOverview, bool) {
	num, err := strconv.ParseUint(mux.Vars(r)["num"], 10, 32)
	if err != nil {
		writeError(w, 400, "analysis number must be numeric")
		return model.AnalysisOverview{}, false
	}
	o, ok := analysesByNum[uint32(num)]
	if !ok {
		writeError(w, 404, fmt.Sprintf("no analysis %v", num))
		return model.AnalysisOverview{}, false
	}
	return o, true
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/classify", HandleClassify).Methods("POST")
	router.HandleFunc("/analyses", handleListAnalyses).Methods("GET")
	router.HandleFunc("/analyses/{num}", handleGetAnalysis).Methods("GET")
	router.HandleFunc("/analyses/{num}/scales/{scale}", handleGetScale).Methods("GET")
	return cors.Default().Handler(router)
}

func serve() {
	LoadServeFiles()
	log.Fatal(http.ListenAndServe(":8080", NewRouter()))
}
