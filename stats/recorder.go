package stats

import (
	"log"
	"snake-arcade/game"
	"sync"
	"time"
)

// Recorder turns game events into finished-round records
type Recorder struct {
	stats *GameStats
	save  bool

	mu        sync.Mutex
	roundID   string
	startTime time.Time
}

// NewRecorder records into stats; when save is set every finished round is
// written to disk right away.
func NewRecorder(stats *GameStats, save bool) *Recorder {
	return &Recorder{stats: stats, save: save}
}

// Handle is a game.Handler
func (r *Recorder) Handle(ev game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case ev.Type == game.EventStarted:
		r.roundID = ev.RoundID
		r.startTime = ev.At
	case ev.Type.Terminal():
		if ev.RoundID != r.roundID {
			return
		}
		r.stats.AddRound(Round{
			ID:         ev.RoundID,
			Difficulty: ev.Difficulty.String(),
			Cause:      causeOf(ev.Type).String(),
			Score:      ev.Score,
			StartTime:  r.startTime,
			EndTime:    ev.At,
		})
		r.roundID = ""
		if r.save {
			if err := r.stats.SaveToFile(); err != nil {
				log.Printf("[STATS] [WARN] could not save round history: %v", err)
			}
		}
	}
}

func causeOf(t game.EventType) game.Cause {
	switch t {
	case game.EventWallCollision:
		return game.CauseWallCollision
	case game.EventSelfCollision:
		return game.CauseSelfCollision
	case game.EventBoardFilled:
		return game.CauseBoardFilled
	default:
		return game.CauseNone
	}
}
