package manager

import (
	"errors"
	"os"
	"path/filepath"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
	"testing"
)

func TestGenerateFoodNeverOnSnake(t *testing.T) {
	grid := types.Grid{Rows: 4, Cols: 4}
	fm := NewFoodManager(grid, 1)
	snake := entity.NewSnake(grid)

	for i := 0; i < 500; i++ {
		food, ok := fm.GenerateFood(snake)
		if !ok {
			t.Fatal("Expected food on a board with free cells")
		}
		if !grid.Contains(food) {
			t.Fatalf("Food %v outside grid", food)
		}
		if snake.Occupies(food) {
			t.Fatalf("Food %v placed on snake", food)
		}
	}
}

func TestGenerateFoodCoversAllFreeCells(t *testing.T) {
	grid := types.Grid{Rows: 3, Cols: 4}
	fm := NewFoodManager(grid, 99)
	snake := entity.NewSnake(grid)

	counts := make(map[types.Point]int)
	const draws = 6000
	for i := 0; i < draws; i++ {
		food, _ := fm.GenerateFood(snake)
		counts[food]++
	}

	free := grid.Area() - snake.Len()
	if len(counts) != free {
		t.Fatalf("Expected %d distinct cells, got %d", free, len(counts))
	}
	expected := draws / free
	for p, n := range counts {
		if n < expected/2 || n > expected*3/2 {
			t.Errorf("Cell %v drawn %d times, expected about %d", p, n, expected)
		}
	}
}

func TestGenerateFoodFullBoard(t *testing.T) {
	grid := types.Grid{Rows: 1, Cols: 3}
	fm := NewFoodManager(grid, 3)
	snake := entity.NewSnakeFromBody([]types.Point{{Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 0, Col: 0}})

	if _, ok := fm.GenerateFood(snake); ok {
		t.Error("Expected no food when the snake fills the grid")
	}
}

func TestGenerateFoodCrowdedBoard(t *testing.T) {
	// 1x8 with a 7-long snake leaves one cell; fallback must find it
	grid := types.Grid{Rows: 1, Cols: 8}
	body := make([]types.Point, 0, 7)
	for c := 7; c >= 1; c-- {
		body = append(body, types.Point{Row: 0, Col: c})
	}
	snake := entity.NewSnakeFromBody(body)
	fm := NewFoodManager(grid, 5)

	for i := 0; i < 50; i++ {
		food, ok := fm.GenerateFood(snake)
		if !ok || food != (types.Point{Row: 0, Col: 0}) {
			t.Fatalf("Expected (0,0), got %v ok=%v", food, ok)
		}
	}
}

func TestCollisionManager(t *testing.T) {
	grid := types.Grid{Rows: 5, Cols: 5}
	cm := NewCollisionManager(grid)

	tests := []struct {
		pos  types.Point
		want CollisionType
	}{
		{types.Point{Row: -1, Col: 0}, WallCollision},
		{types.Point{Row: 0, Col: -1}, WallCollision},
		{types.Point{Row: 5, Col: 0}, WallCollision},
		{types.Point{Row: 0, Col: 5}, WallCollision},
		{types.Point{Row: 4, Col: 4}, NoCollision},
		{types.Point{Row: 0, Col: 0}, NoCollision},
	}
	for _, tt := range tests {
		if got := cm.CheckMove(tt.pos); got != tt.want {
			t.Errorf("CheckMove(%v): expected %v, got %v", tt.pos, tt.want, got)
		}
	}

	snake := entity.NewSnake(grid)
	if cm.CheckBody(snake) != NoCollision {
		t.Error("Fresh snake must not collide with itself")
	}
	snake.Move(types.Point{Row: 2, Col: 1})
	if cm.CheckBody(snake) != SelfCollision {
		t.Error("Expected self collision when head lands on body")
	}

	if !cm.IsDanger(types.Point{Row: 2, Col: 0}, snake) {
		t.Error("Tail cell should count as danger")
	}
	if cm.IsDanger(types.Point{Row: 0, Col: 0}, snake) {
		t.Error("Empty cell should not be danger")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	store := NewFileStore(path)

	if _, err := store.Load(BestScoreKey); !errors.Is(err, ErrNoScore) {
		t.Errorf("Expected ErrNoScore on missing file, got %v", err)
	}
	if err := store.Save(BestScoreKey, 12); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened := NewFileStore(path)
	got, err := reopened.Load(BestScoreKey)
	if err != nil || got != 12 {
		t.Errorf("Expected 12, got %d (%v)", got, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if _, err := store.Load(BestScoreKey); err == nil || errors.Is(err, ErrNoScore) {
		t.Errorf("Expected parse error, got %v", err)
	}
	if err := store.Save(BestScoreKey, 3); err != nil {
		t.Fatalf("Save over corrupt file failed: %v", err)
	}
	if got, err := store.Load(BestScoreKey); err != nil || got != 3 {
		t.Errorf("Expected 3, got %d (%v)", got, err)
	}
}

type failingStore struct{}

func (failingStore) Load(string) (int, error) { return 0, errors.New("storage offline") }
func (failingStore) Save(string, int) error   { return errors.New("storage offline") }

func TestStateManagerDegradesGracefully(t *testing.T) {
	sm := NewStateManager(failingStore{})
	if sm.GetHighScore() != 0 {
		t.Errorf("Expected 0 with unavailable storage, got %d", sm.GetHighScore())
	}
	if !sm.UpdateScore(4) {
		t.Error("Expected best to rise even when saving fails")
	}
	if sm.GetHighScore() != 4 {
		t.Errorf("Expected 4, got %d", sm.GetHighScore())
	}
}

func TestStateManagerUpdateScore(t *testing.T) {
	store := NewMemoryStore()
	sm := NewStateManager(store)

	steps := []struct {
		score   int
		changed bool
		best    int
	}{
		{0, false, 0},
		{1, true, 1},
		{1, false, 1},
		{3, true, 3},
		{2, false, 3},
	}
	for i, s := range steps {
		if got := sm.UpdateScore(s.score); got != s.changed {
			t.Errorf("Step %d: expected changed=%v, got %v", i, s.changed, got)
		}
		if sm.GetHighScore() != s.best {
			t.Errorf("Step %d: expected best %d, got %d", i, s.best, sm.GetHighScore())
		}
	}
	if saved, _ := store.Load(BestScoreKey); saved != 3 {
		t.Errorf("Expected persisted 3, got %d", saved)
	}
}
