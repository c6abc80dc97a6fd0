package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the cell size and tick period of a round
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties in the order the selection screen lists them
var Difficulties = []Difficulty{Easy, Medium, Hard}

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DifficultySettings is one row of the difficulty table
type DifficultySettings struct {
	CellSize     int           // Cell edge in pixel-equivalents
	TickInterval time.Duration // Time between snake steps
}

var difficultyTable = map[Difficulty]DifficultySettings{
	Easy:   {CellSize: 60, TickInterval: 180 * time.Millisecond},
	Medium: {CellSize: 50, TickInterval: 140 * time.Millisecond},
	Hard:   {CellSize: 40, TickInterval: 100 * time.Millisecond},
}

// Settings returns the table row for d
func (d Difficulty) Settings() (DifficultySettings, error) {
	s, ok := difficultyTable[d]
	if !ok {
		return DifficultySettings{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return s, nil
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts easy, medium or hard in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
