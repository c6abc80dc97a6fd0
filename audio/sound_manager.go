package audio

import (
	"snake-arcade/game"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue frequencies in Hz
const (
	chimeFreq = 880.0
	buzzFreq  = 110.0
)

var fanfare = []float64{523.25, 659.25, 783.99, 1046.50} // C5 E5 G5 C6

// SoundManager plays short synthesized cues for game events.
// Every method is safe to call when the speaker could not be initialized.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	clicks      bool
}

// NewSoundManager creates a new sound manager. Movement clicks are off unless
// clicks is set.
func NewSoundManager(muted, clicks bool) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		muted:  muted,
		clicks: clicks,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Handle is a game.Handler
func (sm *SoundManager) Handle(ev game.Event) {
	switch ev.Type {
	case game.EventMoved:
		if sm.clicks {
			sm.PlayMove()
		}
	case game.EventFoodEaten:
		sm.PlayEat()
	case game.EventWallCollision, game.EventSelfCollision:
		sm.PlayCrash()
	case game.EventBoardFilled:
		sm.PlayWin()
	}
}

func (sm *SoundManager) PlayMove() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*20), NewClickGenerator(sampleRate)))
}

func (sm *SoundManager) PlayEat() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*180), NewToneGenerator(sampleRate, chimeFreq, 14, 0.3)))
}

func (sm *SoundManager) PlayCrash() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*350), NewBuzzGenerator(sampleRate, buzzFreq)))
}

func (sm *SoundManager) PlayWin() {
	sm.play(Arpeggio(sampleRate, fanfare, time.Millisecond*120))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
