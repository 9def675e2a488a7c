//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/setscan/cmd"
	"github.com/jsphweid/setscan/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// writes a C major triad for one second then an F for one second
func writeTestMidi(path string) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(0, midi.NoteOn(0, 67, 100))
	tr.Add(1920, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOff(0, 67))
	tr.Add(0, midi.NoteOn(0, 65, 100))
	tr.Add(1920, midi.NoteOff(0, 65))
	tr.Close(0)
	s.Add(tr)

	f, err := os.Create(path)
	if err != nil {
		panic(err.Error())
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		panic(err.Error())
	}
}

func TestMain(m *testing.M) {
	mediaDir, err := os.MkdirTemp("", "setscan-media")
	if err != nil {
		panic(err.Error())
	}
	analysisDir, err := os.MkdirTemp("", "setscan-out")
	if err != nil {
		panic(err.Error())
	}
	os.Setenv("MEDIA_PATH", mediaDir)
	os.Setenv("ANALYSIS_PATH", analysisDir)

	writeTestMidi(mediaDir + "/test.mid")
	cmd.Analyze(0)
	cmd.LoadServeFiles()

	exitVal := m.Run()

	os.RemoveAll(mediaDir)
	os.RemoveAll(analysisDir)
	os.Exit(exitVal)
}

func TestClassifyEndpoint(t *testing.T) {
	data, err := json.Marshal(model.ClassifyRequestBody{Notes: []int{60, 64, 67}})
	if err != nil {
		panic(err.Error())
	}
	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewReader(data))
	w := httptest.NewRecorder()
	cmd.HandleClassify(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var classifyResponse model.ClassifyResponse
	err = json.Unmarshal(respBody, &classifyResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(model.ClassifyResponse{
		PitchClasses:   []int{0, 4, 7},
		NormalForm:     []int{0, 4, 7},
		PrimeForm:      []int{0, 3, 7},
		Forte:          "3-11",
		IntervalVector: [6]int{0, 0, 1, 1, 1, 0},
	}, classifyResponse)
}

func TestScaleEndpointE2E(t *testing.T) {
	router := cmd.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/analyses/0/scales/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var scaleResponse model.ScaleResponse
	err := json.Unmarshal(respBody, &scaleResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(uint32(0), scaleResponse.FileNum)
	assert.Equal(1, scaleResponse.Scale)
	assert.Equal(uint32(500), scaleResponse.LengthMs)

	var fortes []string
	for _, win := range scaleResponse.Windows {
		fortes = append(fortes, win.Forte)
	}
	assert.Equal([]string{"3-11", "3-11", "1-1", "1-1"}, fortes)
}

func TestListAnalysesE2E(t *testing.T) {
	router := cmd.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var summaries []model.AnalysisSummary
	err := json.Unmarshal(respBody, &summaries)
	if err != nil {
		panic(err.Error())
	}

	assert.Len(summaries, 1)
	assert.Equal(uint32(0), summaries[0].FileNum)
	assert.Equal(4, summaries[0].NumNotes)
	assert.Equal(10, summaries[0].NumWindows)
	assert.Equal(4, summaries[0].Scales)
}
