package tcellview

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 60 * time.Millisecond
)

// chimeNotes are played in order when a floor is regenerated
var chimeNotes = []float64{660, 880}

// Chime plays a short two-note cue. A Chime whose speaker failed to
// initialise is silent.
type Chime struct {
	enabled bool
}

// NewChime initialises the speaker. The returned Chime is usable (silent)
// even when err is non-nil.
func NewChime() (*Chime, error) {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	return &Chime{enabled: err == nil}, err
}

// Enabled reports whether the speaker is available
func (c *Chime) Enabled() bool {
	return c != nil && c.enabled
}

// Play queues the chime without blocking
func (c *Chime) Play() {
	if !c.Enabled() {
		return
	}
	s, err := chimeStreamer(sampleRate)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close releases the speaker
func (c *Chime) Close() {
	if !c.Enabled() {
		return
	}
	speaker.Close()
	c.enabled = false
}

// chimeStreamer builds the note sequence
func chimeStreamer(rate beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(rate.N(toneLength), sine))
	}
	return beep.Seq(notes...), nil
}
