package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"snake-arcade/game/types"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// QTableFile is the autopilot's table inside the data directory
const QTableFile = "qtable.json"

// Action is an absolute direction choice
type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

var actions = [4]Action{Up, Right, Down, Left}

// Direction maps an action onto the game's direction
func (a Action) Direction() types.Direction {
	switch a {
	case Up:
		return types.Up
	case Right:
		return types.Right
	case Down:
		return types.Down
	default:
		return types.Left
	}
}

// ActionOf maps a game direction onto an action
func ActionOf(d types.Direction) (Action, bool) {
	switch d {
	case types.Up:
		return Up, true
	case types.Right:
		return Right, true
	case types.Down:
		return Down, true
	case types.Left:
		return Left, true
	}
	return Up, false
}

type QTable map[string]map[Action]float64

// Reward shaping
const (
	RewardFood    = 1.0
	RewardDeath   = -1.0
	RewardCloser  = 0.5
	RewardFarther = -0.3
)

type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	mu  sync.RWMutex
	rng *rand.Rand
}

// NewQLearning builds an empty agent; seed 0 seeds from time
func NewQLearning(seed uint64) *QLearning {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// GetAction picks an action epsilon-greedily, never the reverse of heading
func (q *QLearning) GetAction(state State, heading types.Direction) Action {
	allowed := make([]Action, 0, len(actions))
	for _, a := range actions {
		if heading != types.None && a.Direction() == heading.Opposite() {
			continue
		}
		allowed = append(allowed, a)
	}

	// Exploration: random action
	if q.rng.Float64() < q.Epsilon {
		return allowed[q.rng.Intn(len(allowed))]
	}

	// Exploitation: best known action
	return q.getBestAction(state, allowed)
}

func (q *QLearning) getBestAction(state State, allowed []Action) Action {
	q.mu.RLock()
	defer q.mu.RUnlock()

	values := q.QTable[state.Key()]
	bestAction := allowed[0]
	bestValue := math.Inf(-1)
	for _, action := range allowed {
		value := values[action] // Unseen pairs read as 0
		if value > bestValue {
			bestValue = value
			bestAction = action
		}
	}
	return bestAction
}

// Reward scores a transition from state to next
func Reward(state State, next State, ateFood, died bool) float64 {
	switch {
	case died:
		return RewardDeath
	case ateFood:
		return RewardFood
	}

	distanceChange := next.FoodDistance - state.FoodDistance
	if distanceChange < 0 {
		return RewardCloser
	} else if distanceChange > 0 {
		return RewardFarther
	}
	return 0
}

// Update applies the Q-learning rule. A terminal transition has no future value.
func (q *QLearning) Update(state State, action Action, reward float64, next State, terminal bool) {
	stateKey := state.Key()
	nextStateKey := next.Key()

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.QTable[stateKey]; !exists {
		q.QTable[stateKey] = make(map[Action]float64)
	}

	maxNextQ := 0.0
	if !terminal {
		maxNextQ = math.Inf(-1)
		for _, a := range actions {
			if v := q.QTable[nextStateKey][a]; v > maxNextQ {
				maxNextQ = v
			}
		}
	}

	// Q(s,a) = Q(s,a) + α [r + γ * max_a' Q(s',a') - Q(s,a)]
	currentQ := q.QTable[stateKey][action]
	q.QTable[stateKey][action] = currentQ + q.LearningRate*(reward+q.Discount*maxNextQ-currentQ)

	q.TotalReward += reward
	if terminal {
		q.GamesPlayed++
	}
}

// QValue reads a single entry
func (q *QLearning) QValue(state State, action Action) float64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.QTable[state.Key()][action]
}

// States counts the distinct states seen so far
func (q *QLearning) States() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.QTable)
}

type savedAgent struct {
	QTable      QTable  `json:"qtable"`
	Epsilon     float64 `json:"epsilon"`
	GamesPlayed int     `json:"games_played"`
	TotalReward float64 `json:"total_reward"`
}

// SaveQTable saves the agent to filename
func (q *QLearning) SaveQTable(filename string) error {
	q.mu.RLock()
	data, err := json.MarshalIndent(savedAgent{
		QTable:      q.QTable,
		Epsilon:     q.Epsilon,
		GamesPlayed: q.GamesPlayed,
		TotalReward: q.TotalReward,
	}, "", "  ")
	q.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("error marshaling QTable: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating QTable directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error writing QTable to file: %w", err)
	}
	return nil
}

// LoadQTable loads the agent from filename. A missing file leaves the table empty.
func (q *QLearning) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading QTable file: %w", err)
	}

	var saved savedAgent
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("error unmarshaling QTable: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if saved.QTable != nil {
		q.QTable = saved.QTable
		q.Epsilon = saved.Epsilon
		q.GamesPlayed = saved.GamesPlayed
		q.TotalReward = saved.TotalReward
	}
	return nil
}
