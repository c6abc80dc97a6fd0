package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
	"time"

	"golang.org/x/exp/rand"
)

// Random placements tried before falling back to enumerating free cells
const MaxFoodAttempts = 64

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
}

// NewFoodManager seeds from the clock when seed is 0
func NewFoodManager(grid types.Grid, seed uint64) *FoodManager {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &FoodManager{
		grid: grid,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// SetGrid switches to a new grid, keeping the random stream
func (fm *FoodManager) SetGrid(grid types.Grid) {
	fm.grid = grid
}

// GenerateFood picks a cell uniformly among the cells the snake does not
// occupy. It returns false when the snake covers the whole grid.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	if snake.Len() >= fm.grid.Area() {
		return types.Point{}, false
	}

	for i := 0; i < MaxFoodAttempts; i++ {
		food := types.Point{
			Row: fm.rng.Intn(fm.grid.Rows),
			Col: fm.rng.Intn(fm.grid.Cols),
		}
		if !snake.Occupies(food) {
			return food, true
		}
	}

	// Crowded board: draw straight from the free cells
	free := fm.freeCells(snake)
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

func (fm *FoodManager) freeCells(snake *entity.Snake) []types.Point {
	occupied := make(map[types.Point]bool, snake.Len())
	for _, p := range snake.Body() {
		occupied[p] = true
	}

	free := make([]types.Point, 0, fm.grid.Area()-len(occupied))
	for r := 0; r < fm.grid.Rows; r++ {
		for c := 0; c < fm.grid.Cols; c++ {
			p := types.Point{Row: r, Col: c}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}
	return free
}
