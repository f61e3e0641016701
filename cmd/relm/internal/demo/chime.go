package demo

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 50 * time.Millisecond
	commitTone = 880
	cancelTone = 440
)

// Chime plays short tones. The zero value is silent.
type Chime struct {
	ready bool
}

// NewChime opens the speaker. On failure it returns a silent Chime with
// the error.
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Chime{}, err
	}
	return &Chime{ready: true}, nil
}

func (c *Chime) Play(freq float64) {
	if !c.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

func (c *Chime) Close() {
	if c.ready {
		speaker.Close()
	}
}
