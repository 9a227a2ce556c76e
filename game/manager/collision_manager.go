package manager

import (
	"rsnake/game/entity"
	"rsnake/game/types"
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
		return "wall"
	case SelfCollision:
		return "self"
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

// CheckCollision classifies the snake's current head position. Walls win
// over self hits since an out-of-bounds head cannot overlap the body.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) CollisionType {
	if snake.CollidesWithWall(cm.grid.Width, cm.grid.Height) {
		return WallCollision
	}
	if snake.CollidesWithSelf() {
		return SelfCollision
	}
	return NoCollision
}

// IsFoodCollision checks if the head sits on food
func (cm *CollisionManager) IsFoodCollision(snake *entity.Snake, food types.Point) bool {
	return snake.Head() == food
}
