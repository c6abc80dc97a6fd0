package manager

import (
	"errors"
	"log"
)

// StateManager owns the best score and its persistence
type StateManager struct {
	store     ScoreStore
	highScore int
}

// NewStateManager loads the best score. A missing or unreadable value is
// treated as 0.
func NewStateManager(store ScoreStore) *StateManager {
	sm := &StateManager{store: store}
	if store == nil {
		return sm
	}

	score, err := store.Load(BestScoreKey)
	switch {
	case err == nil:
		if score > 0 {
			sm.highScore = score
		}
	case errors.Is(err, ErrNoScore):
	default:
		log.Printf("[STORE] [WARN] best score unavailable, starting from 0: %v", err)
	}
	return sm
}

// UpdateScore raises and persists the best score when score exceeds it.
// Reports whether the best score changed.
func (sm *StateManager) UpdateScore(score int) bool {
	if score <= sm.highScore {
		return false
	}
	sm.highScore = score
	if sm.store != nil {
		if err := sm.store.Save(BestScoreKey, score); err != nil {
			log.Printf("[STORE] [WARN] could not persist best score %d: %v", score, err)
		}
	}
	return true
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}
