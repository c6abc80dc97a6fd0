package ai

import (
	"log"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"sync"
)

// Autopilot plays the game with a Q-learning agent and keeps learning while
// it plays. It satisfies loop.Pilot.
type Autopilot struct {
	agent    *QLearning
	path     string // Q table file, empty for none
	autosave bool   // Save at the end of every round

	mu        sync.Mutex
	lastState State
	lastAct   Action
	decided   bool
}

func NewAutopilot(agent *QLearning, path string) *Autopilot {
	return &Autopilot{agent: agent, path: path, autosave: true}
}

func (p *Autopilot) SetAutosave(on bool) {
	p.mu.Lock()
	p.autosave = on
	p.mu.Unlock()
}

func (p *Autopilot) Agent() *QLearning {
	return p.agent
}

// Decide chooses the next direction for the snapshot
func (p *Autopilot) Decide(s game.Snapshot) types.Direction {
	if s.State == game.Over {
		return types.None
	}
	state := NewState(s)
	action := p.agent.GetAction(state, s.Direction)

	p.mu.Lock()
	p.lastState = state
	p.lastAct = action
	p.decided = true
	p.mu.Unlock()

	return action.Direction()
}

// Observe learns from the outcome of the last decision
func (p *Autopilot) Observe(before, after game.Snapshot, events []game.Event) {
	p.mu.Lock()
	if !p.decided {
		p.mu.Unlock()
		return
	}
	state, action := p.lastState, p.lastAct
	autosave := p.autosave
	p.decided = false
	p.mu.Unlock()

	ate, died := false, false
	for _, ev := range events {
		switch ev.Type {
		case game.EventFoodEaten:
			ate = true
		case game.EventWallCollision, game.EventSelfCollision:
			died = true
		}
	}

	// The applied direction may differ from the chosen one if the game
	// rejected it; learn on what actually happened.
	if applied, ok := ActionOf(after.Direction); ok {
		action = applied
	}

	next := NewState(after)
	terminal := after.State == game.Over
	p.agent.Update(state, action, Reward(state, next, ate, died), next, terminal)

	if terminal && autosave {
		p.Save()
	}
}

// Save writes the Q table if a path is configured
func (p *Autopilot) Save() {
	if p.path == "" {
		return
	}
	if err := p.agent.SaveQTable(p.path); err != nil {
		log.Printf("[AI] [WARN] could not save Q table: %v", err)
	}
}
