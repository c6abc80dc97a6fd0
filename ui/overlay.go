package ui

import (
	"fmt"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"unicode"
)

// Score needed for the "nice run" title
const NiceRunScore = 15

const (
	TitleNewHighScore = "NEW HIGH SCORE!"
	TitleNiceRun      = "Nice Run!"
	TitleTryAgain     = "Better Luck Next Time"
)

// GameOverTitle picks the headline of the game-over modal
func GameOverTitle(score, best int) string {
	switch {
	case score >= best && score > 0:
		return TitleNewHighScore
	case score >= NiceRunScore:
		return TitleNiceRun
	default:
		return TitleTryAgain
	}
}

// DeathMessage describes how the round ended
func DeathMessage(cause game.Cause) string {
	switch cause {
	case game.CauseWallCollision:
		return "You hit the wall!"
	case game.CauseSelfCollision:
		return "You bit yourself!"
	case game.CauseBoardFilled:
		return "You filled the whole board!"
	default:
		return ""
	}
}

// FormatElapsed renders seconds as mm:ss
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// HUD is the one-line score/best/time readout
func HUD(s game.Snapshot) string {
	return fmt.Sprintf("Score: %d   Best: %d   Time: %s", s.Score, s.BestScore, FormatElapsed(s.Elapsed))
}

// DirectionForRune maps WASD, in either case, to a direction
func DirectionForRune(r rune) types.Direction {
	switch unicode.ToLower(r) {
	case 'w':
		return types.Up
	case 'd':
		return types.Right
	case 's':
		return types.Down
	case 'a':
		return types.Left
	}
	return types.None
}

// DifficultyForRune maps the selection screen keys: 1/e, 2/m, 3/h
func DifficultyForRune(r rune) (game.Difficulty, bool) {
	switch unicode.ToLower(r) {
	case '1', 'e':
		return game.Easy, true
	case '2', 'm':
		return game.Medium, true
	case '3', 'h':
		return game.Hard, true
	}
	return game.Easy, false
}

// DifficultyMenu lists the selection screen entries
func DifficultyMenu() []string {
	items := make([]string, 0, len(game.Difficulties))
	for i, d := range game.Difficulties {
		items = append(items, fmt.Sprintf("%d  %s", i+1, d))
	}
	return items
}
