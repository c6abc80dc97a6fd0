package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall-collision"
	case SelfCollision:
		return "self-collision"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckMove checks a candidate head before it is applied. Only walls can be
// detected here; the body check needs the head already prepended.
func (cm *CollisionManager) CheckMove(pos types.Point) CollisionType {
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	return NoCollision
}

// CheckBody checks a snake whose new head has been prepended but whose tail
// has not been dropped yet, so moving into the old tail cell counts.
func (cm *CollisionManager) CheckBody(snake *entity.Snake) CollisionType {
	if snake.HitsBody() {
		return SelfCollision
	}
	return NoCollision
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}

// IsDanger reports whether moving a snake's head onto pos would end the round
func (cm *CollisionManager) IsDanger(pos types.Point, snake *entity.Snake) bool {
	if cm.isWallCollision(pos) {
		return true
	}
	// Tail included, same as CheckBody
	return snake.Occupies(pos)
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}
