package ai

import (
	"fmt"
	"snake-arcade/game"
	"snake-arcade/game/types"
)

// State is the compact view the agent learns over
type State struct {
	RelativeFoodDir [2]int  // Sign of food offset from head (row, col)
	FoodDistance    int     // Manhattan distance to food
	DangerDirs      [4]bool // Danger one cell away (up, right, down, left)
	Heading         types.Direction
}

// NewState derives the agent state from a game snapshot
func NewState(s game.Snapshot) State {
	if len(s.Snake) == 0 {
		return State{}
	}
	head := s.Snake[0]

	occupied := make(map[types.Point]bool, len(s.Snake))
	for _, p := range s.Snake {
		occupied[p] = true
	}

	var dangers [4]bool
	for i, d := range types.Directions {
		next := d.Move(head)
		dangers[i] = !s.Grid.Contains(next) || occupied[next]
	}

	state := State{
		DangerDirs: dangers,
		Heading:    s.Direction,
	}
	if s.HasFood {
		state.RelativeFoodDir = [2]int{sign(s.Food.Row - head.Row), sign(s.Food.Col - head.Col)}
		state.FoodDistance = abs(s.Food.Row-head.Row) + abs(s.Food.Col-head.Col)
	}
	return state
}

// Key identifies the state in the Q table; distance is not part of it
func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d%d%d%d|%d",
		s.RelativeFoodDir[0], s.RelativeFoodDir[1],
		boolToInt(s.DangerDirs[0]), boolToInt(s.DangerDirs[1]),
		boolToInt(s.DangerDirs[2]), boolToInt(s.DangerDirs[3]),
		int(s.Heading))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
