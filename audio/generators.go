package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator plays a sine tone with a fast attack and exponential decay
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // envelope falloff per second
	gain  float64
	pos   int
}

// NewToneGenerator creates a tone generator
func NewToneGenerator(sr beep.SampleRate, freq, decay, gain float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, decay: decay, gain: gain}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * g.decay)
		if p := float64(g.pos); p < attack {
			envelope *= p / attack
		}

		// Fundamental plus a soft octave for a bell-like chime
		sample := 0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2*t)
		sample *= envelope * g.gain

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ClickGenerator generates a very short tick used for movement
type ClickGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewClickGenerator creates a click generator
func NewClickGenerator(sr beep.SampleRate) *ClickGenerator {
	return &ClickGenerator{sr: sr}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.08 * math.Exp(-t*300) * math.Sin(2*math.Pi*1800*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Odd harmonics approximate a square wave
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample += 0.06 * math.Sin(2*math.Pi*g.freq*5*t)

		// Sags to half volume over the first third of a second
		bend := 1.0 - math.Min(t*1.5, 0.5)
		sample *= bend

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// Arpeggio returns a rising sequence of short tones
func Arpeggio(sr beep.SampleRate, freqs []float64, step time.Duration) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, beep.Take(sr.N(step), NewToneGenerator(sr, f, 6, 0.25)))
	}
	return beep.Seq(notes...)
}
