package game

import (
	"snake-arcade/game/types"
	"time"
)

// EventType identifies a state transition reported to the presentation layer
type EventType int

const (
	EventStarted EventType = iota
	EventMoved
	EventFoodEaten
	EventWallCollision
	EventSelfCollision
	EventBoardFilled
	EventRestarted
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventMoved:
		return "moved"
	case EventFoodEaten:
		return "food-eaten"
	case EventWallCollision:
		return "wall-collision"
	case EventSelfCollision:
		return "self-collision"
	case EventBoardFilled:
		return "board-filled"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends the round
func (t EventType) Terminal() bool {
	return t == EventWallCollision || t == EventSelfCollision || t == EventBoardFilled
}

// Event is emitted after the state it describes has been applied
type Event struct {
	Type        EventType
	RoundID     string
	Difficulty  Difficulty
	At          time.Time
	Snake       []types.Point // Head first, copy
	Food        types.Point
	FoodChanged bool
	Score       int
	BestScore   int
	NewBest     bool // BestScore was raised by this event
	Elapsed     int  // Seconds
}

// Handler receives events in emission order
type Handler func(Event)
