package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/setscan/setclass"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Classifies held notes from a live midi input",
	Long:  `Classifies held notes from a live midi input`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

func classifyHeld(mu *sync.Mutex, held map[uint8]bool) {
	mu.Lock()
	var pitches []uint8
	for key := range held {
		pitches = append(pitches, key)
	}
	mu.Unlock()

	if len(pitches) == 0 {
		return
	}
	set := setclass.FromMidipitches(pitches)
	fmt.Printf("%v -> prime %v, %v\n", set, setclass.New(set.PrimeForm()...), set.Forte())
}

func listen() {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a midi input port")
		return
	}

	var mu sync.Mutex
	held := make(map[uint8]bool)

	// wait for a flurry of note messages to settle before classifying,
	// otherwise every note of a strummed chord prints its own line
	debounced := debounce.New(50 * time.Millisecond)
	onChange := func() {
		debounced(func() {
			classifyHeld(&mu, held)
		})
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			held[key] = true
			mu.Unlock()
			onChange()
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			delete(held, key)
			mu.Unlock()
			onChange()
		default:
			// ignore
		}
	})

	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Second * 5000) // lol
	stop()
}
