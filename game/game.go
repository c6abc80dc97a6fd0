package game

import (
	"errors"
	"fmt"
	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RoundState is the lifecycle position of the current round
type RoundState int

const (
	Idle RoundState = iota
	Running
	Over
)

func (s RoundState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Cause records why a round ended
type Cause int

const (
	CauseNone Cause = iota
	CauseWallCollision
	CauseSelfCollision
	CauseBoardFilled
)

func (c Cause) String() string {
	switch c {
	case CauseWallCollision:
		return "wall-collision"
	case CauseSelfCollision:
		return "self-collision"
	case CauseBoardFilled:
		return "board-filled"
	default:
		return "none"
	}
}

var ErrGridTooSmall = errors.New("viewport too small for a playable grid")

// Default viewport in pixel-equivalents
const (
	DefaultViewportWidth  = 1200
	DefaultViewportHeight = 720
)

// Config holds what the game needs at construction
type Config struct {
	ViewportWidth  int
	ViewportHeight int
	Difficulty     Difficulty
	Seed           uint64 // 0 seeds from time
	Store          manager.ScoreStore
	Clock          clock.Clock
}

// Game is the snake state machine. Every method is safe for concurrent use;
// mutations are serialized by a single mutex and events are delivered after
// it is released.
type Game struct {
	mu sync.Mutex

	viewportW  int
	viewportH  int
	difficulty Difficulty
	settings   DifficultySettings
	grid       types.Grid

	roundID   string
	snake     *entity.Snake
	food      types.Point
	hasFood   bool
	direction types.Direction
	state     RoundState
	cause     Cause
	score     int
	elapsed   int
	steps     int

	clock        clock.Clock
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager

	handlersMu sync.RWMutex
	handlers   []Handler
}

// NewGame builds a game in the Idle state for cfg.Difficulty
func NewGame(cfg Config) (*Game, error) {
	if cfg.ViewportWidth == 0 && cfg.ViewportHeight == 0 {
		cfg.ViewportWidth = DefaultViewportWidth
		cfg.ViewportHeight = DefaultViewportHeight
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewReal()
	}

	g := &Game{
		viewportW: cfg.ViewportWidth,
		viewportH: cfg.ViewportHeight,
		clock:     cfg.Clock,
		foodMgr:   manager.NewFoodManager(types.Grid{}, cfg.Seed),
		stateMgr:  manager.NewStateManager(cfg.Store),
	}

	g.mu.Lock()
	err := g.configure(cfg.Difficulty)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Subscribe registers h for every future event
func (g *Game) Subscribe(h Handler) {
	g.handlersMu.Lock()
	defer g.handlersMu.Unlock()
	g.handlers = append(g.handlers, h)
}

func (g *Game) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	g.handlersMu.RLock()
	handlers := make([]Handler, len(g.handlers))
	copy(handlers, g.handlers)
	g.handlersMu.RUnlock()

	for _, ev := range events {
		for _, h := range handlers {
			h(ev)
		}
	}
}

// Configure switches difficulty, recomputes the grid from the viewport and
// restarts. On error the current round is left untouched.
func (g *Game) Configure(d Difficulty) ([]Event, error) {
	g.mu.Lock()
	err := g.configure(d)
	var events []Event
	if err == nil {
		events = []Event{g.event(EventRestarted)}
	}
	g.mu.Unlock()

	g.publish(events)
	return events, err
}

func (g *Game) configure(d Difficulty) error {
	settings, err := d.Settings()
	if err != nil {
		return err
	}
	grid := types.GridFromViewport(g.viewportW, g.viewportH, settings.CellSize)
	if !grid.Playable() {
		return fmt.Errorf("%w: %dx%d at cell %d gives %s",
			ErrGridTooSmall, g.viewportW, g.viewportH, settings.CellSize, grid)
	}

	g.difficulty = d
	g.settings = settings
	g.grid = grid
	g.collisionMgr = manager.NewCollisionManager(grid)
	g.foodMgr.SetGrid(grid)
	g.reset()
	return nil
}

// SetViewport records a new viewport. The grid only follows at the next
// Configure so a round never changes size.
func (g *Game) SetViewport(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewportW = width
	g.viewportH = height
}

// Restart begins a fresh Idle round from any state
func (g *Game) Restart() []Event {
	g.mu.Lock()
	g.reset()
	events := []Event{g.event(EventRestarted)}
	g.mu.Unlock()

	g.publish(events)
	return events
}

func (g *Game) reset() {
	g.roundID = uuid.New().String()
	g.snake = entity.NewSnake(g.grid)
	g.direction = types.None
	g.state = Idle
	g.cause = CauseNone
	g.score = 0
	g.elapsed = 0
	g.steps = 0
	g.food, g.hasFood = g.foodMgr.GenerateFood(g.snake)
}

// SetDirection queues the heading for the next tick. A reversal of the
// current direction is ignored, and so is a reversal of the body's own
// heading, since a direction set before the next tick has not moved the
// snake yet. The first accepted direction starts the round.
func (g *Game) SetDirection(d types.Direction) []Event {
	g.mu.Lock()
	var events []Event
	if g.state != Over && d.Valid() && !g.reverses(d) {
		g.direction = d
		if g.state == Idle {
			g.state = Running
			events = append(events, g.event(EventStarted))
		}
	}
	g.mu.Unlock()

	g.publish(events)
	return events
}

func (g *Game) reverses(d types.Direction) bool {
	return d == g.currentDirection().Opposite() || d == g.snake.Heading().Opposite()
}

func (g *Game) currentDirection() types.Direction {
	if g.direction != types.None {
		return g.direction
	}
	return g.snake.Heading()
}

// Tick advances the snake one cell. It does nothing unless the round is
// running with a direction set.
func (g *Game) Tick() []Event {
	g.mu.Lock()
	events := g.tick()
	g.mu.Unlock()

	g.publish(events)
	return events
}

func (g *Game) tick() []Event {
	if g.state != Running || g.direction == types.None {
		return nil
	}
	g.steps++

	newHead := g.direction.Move(g.snake.GetHead())

	if g.collisionMgr.CheckMove(newHead) == manager.WallCollision {
		g.end(CauseWallCollision)
		return []Event{g.event(EventWallCollision)}
	}

	g.snake.Move(newHead)

	if g.collisionMgr.CheckBody(g.snake) == manager.SelfCollision {
		g.end(CauseSelfCollision)
		return []Event{g.event(EventSelfCollision)}
	}

	if g.hasFood && g.collisionMgr.IsFoodCollision(newHead, g.food) {
		g.score++
		newBest := g.stateMgr.UpdateScore(g.score)

		eaten := g.event(EventFoodEaten)
		eaten.NewBest = newBest

		food, ok := g.foodMgr.GenerateFood(g.snake)
		if !ok {
			g.hasFood = false
			g.end(CauseBoardFilled)
			return []Event{eaten, g.event(EventBoardFilled)}
		}
		g.food = food

		moved := g.event(EventMoved)
		moved.FoodChanged = true
		eaten.Food = food
		eaten.FoodChanged = true
		return []Event{eaten, moved}
	}

	g.snake.RemoveTail()
	return []Event{g.event(EventMoved)}
}

func (g *Game) end(cause Cause) {
	g.state = Over
	g.cause = cause
}

// TickSecond advances the elapsed counter while the round is running
func (g *Game) TickSecond() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Running {
		g.elapsed++
	}
}

func (g *Game) event(t EventType) Event {
	return Event{
		Type:       t,
		RoundID:    g.roundID,
		Difficulty: g.difficulty,
		At:         g.clock.Now(),
		Snake:      g.snake.Body(),
		Food:       g.food,
		Score:      g.score,
		BestScore:  g.stateMgr.GetHighScore(),
		Elapsed:    g.elapsed,
	}
}

// Snapshot is a consistent copy of everything a renderer draws
type Snapshot struct {
	RoundID      string
	Difficulty   Difficulty
	Grid         types.Grid
	CellSize     int
	TickInterval time.Duration
	Snake        []types.Point
	Food         types.Point
	HasFood      bool
	Direction    types.Direction
	State        RoundState
	Cause        Cause
	Score        int
	BestScore    int
	Elapsed      int
	Steps        int
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		RoundID:      g.roundID,
		Difficulty:   g.difficulty,
		Grid:         g.grid,
		CellSize:     g.settings.CellSize,
		TickInterval: g.settings.TickInterval,
		Snake:        g.snake.Body(),
		Food:         g.food,
		HasFood:      g.hasFood,
		Direction:    g.currentDirection(),
		State:        g.state,
		Cause:        g.cause,
		Score:        g.score,
		BestScore:    g.stateMgr.GetHighScore(),
		Elapsed:      g.elapsed,
		Steps:        g.steps,
	}
}

func (g *Game) GetSnake() []types.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snake.Body()
}

func (g *Game) GetFood() types.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.food
}

func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *Game) BestScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateMgr.GetHighScore()
}

func (g *Game) State() RoundState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Cause() Cause {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cause
}

// ElapsedSeconds returns how long the current round has been running
func (g *Game) ElapsedSeconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elapsed
}

func (g *Game) Grid() types.Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grid
}

func (g *Game) Difficulty() Difficulty {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.difficulty
}

func (g *Game) TickInterval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings.TickInterval
}

func (g *Game) RoundID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundID
}
