// Package loop runs the game on a fixed tick. It is the only goroutine that
// mutates the game; input from other goroutines arrives as commands.
package loop

import (
	"context"
	"snake-arcade/game"
	"snake-arcade/game/clock"
	"snake-arcade/game/types"
	"time"
)

// Pilot chooses directions in place of a player
type Pilot interface {
	// Decide is called before each tick and may return types.None to keep
	// the current heading.
	Decide(s game.Snapshot) types.Direction
	// Observe is called after each tick with the state before and after it.
	Observe(before, after game.Snapshot, events []game.Event)
}

type commandKind int

const (
	cmdDirection commandKind = iota
	cmdRestart
	cmdConfigure
)

type command struct {
	kind       commandKind
	direction  types.Direction
	difficulty game.Difficulty
	roundID    string // Restart only this round, empty for any
	result     chan error
}

// Loop drives a game from a clock
type Loop struct {
	game  *game.Game
	clock clock.Clock
	pilot Pilot

	commands chan command

	// Owned by the Run goroutine
	pending    types.Direction
	tickTicker clock.Ticker
	secTicker  clock.Ticker
}

func New(g *game.Game, c clock.Clock) *Loop {
	if c == nil {
		c = clock.NewReal()
	}
	return &Loop{
		game:     g,
		clock:    c,
		commands: make(chan command, 16),
	}
}

// SetPilot must be called before Run
func (l *Loop) SetPilot(p Pilot) {
	l.pilot = p
}

// QueueDirection records d as the pending direction. Only the last one queued
// before a tick is applied.
func (l *Loop) QueueDirection(d types.Direction) {
	l.commands <- command{kind: cmdDirection, direction: d}
}

// Restart asks the loop to begin a fresh round
func (l *Loop) Restart() {
	l.commands <- command{kind: cmdRestart}
}

// RestartRound restarts only if roundID is still the current round
func (l *Loop) RestartRound(roundID string) {
	l.commands <- command{kind: cmdRestart, roundID: roundID}
}

// Configure asks the loop to switch difficulty and waits for the outcome
func (l *Loop) Configure(ctx context.Context, d game.Difficulty) error {
	result := make(chan error, 1)
	select {
	case l.commands <- command{kind: cmdConfigure, difficulty: d, result: result}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands and ticks until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	l.startTicks()
	defer l.stopTicks()
	defer l.stopSeconds()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.commands:
			l.handle(cmd)
		case <-l.tickC():
			l.step()
		case <-l.secC():
			l.game.TickSecond()
		}
	}
}

func (l *Loop) handle(cmd command) {
	switch cmd.kind {
	case cmdDirection:
		if l.game.State() == game.Idle {
			l.apply(cmd.direction)
			return
		}
		l.pending = cmd.direction
	case cmdRestart:
		if cmd.roundID != "" && cmd.roundID != l.game.RoundID() {
			return
		}
		l.game.Restart()
		l.reset()
	case cmdConfigure:
		_, err := l.game.Configure(cmd.difficulty)
		if err == nil {
			l.reset()
		}
		if cmd.result != nil {
			cmd.result <- err
		}
	}
}

func (l *Loop) apply(d types.Direction) {
	events := l.game.SetDirection(d)
	for _, ev := range events {
		if ev.Type == game.EventStarted {
			l.startSeconds()
		}
	}
}

// step applies the pending direction and advances one tick
func (l *Loop) step() {
	if l.pilot != nil && l.pending == types.None {
		if d := l.pilot.Decide(l.game.Snapshot()); d != types.None {
			l.pending = d
		}
	}
	if l.pending != types.None {
		l.apply(l.pending)
		l.pending = types.None
	}

	var before game.Snapshot
	if l.pilot != nil {
		before = l.game.Snapshot()
	}

	events := l.game.Tick()

	if l.pilot != nil && len(events) > 0 {
		l.pilot.Observe(before, l.game.Snapshot(), events)
	}

	if l.game.State() == game.Over {
		l.stopTicks()
		l.stopSeconds()
	}
}

func (l *Loop) reset() {
	l.pending = types.None
	l.stopSeconds()
	l.stopTicks()
	l.startTicks()
}

func (l *Loop) startTicks() {
	l.tickTicker = l.clock.NewTicker(l.game.TickInterval())
}

func (l *Loop) stopTicks() {
	if l.tickTicker != nil {
		l.tickTicker.Stop()
		l.tickTicker = nil
	}
}

func (l *Loop) startSeconds() {
	if l.secTicker == nil {
		l.secTicker = l.clock.NewTicker(time.Second)
	}
}

func (l *Loop) stopSeconds() {
	if l.secTicker != nil {
		l.secTicker.Stop()
		l.secTicker = nil
	}
}

// A nil channel blocks forever, which disables the select case
func (l *Loop) tickC() <-chan time.Time {
	if l.tickTicker == nil {
		return nil
	}
	return l.tickTicker.C()
}

func (l *Loop) secC() <-chan time.Time {
	if l.secTicker == nil {
		return nil
	}
	return l.secTicker.C()
}
