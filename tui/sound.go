package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	chimeRate     = beep.SampleRate(44100)
	chimeFreq     = 660
	chimeDuration = 60 * time.Millisecond
)

// Chime plays a short sine tone. A nil *Chime is silent.
type Chime struct {
	tone beep.Streamer
}

func newTone(sr beep.SampleRate, freq int) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, float64(freq))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %d Hz tone", freq)
	}
	return tone, nil
}

func NewChime() (*Chime, error) {
	tone, err := newTone(chimeRate, chimeFreq)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "failed to init speaker")
	}
	return &Chime{tone: tone}, nil
}

func (c *Chime) Play() {
	if c == nil {
		return
	}
	speaker.Play(beep.Take(chimeRate.N(chimeDuration), c.tone))
}

func (c *Chime) Close() {
	if c == nil {
		return
	}
	speaker.Clear()
}
