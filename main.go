package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"snake-arcade/ai"
	"snake-arcade/audio"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/loop"
	"snake-arcade/game/manager"
	"snake-arcade/stats"
	"snake-arcade/ui"
	"syscall"
	"time"
)

// Pause before the autopilot starts its next round
const autopilotRestartDelay = 1500 * time.Millisecond

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	var store manager.ScoreStore = manager.NewMemoryStore()
	statsPath, qtablePath := "", ""
	if cfg.Persistent() {
		store = manager.NewFileStore(cfg.ScorePath())
		statsPath, qtablePath = cfg.StatsPath(), cfg.QTablePath()
	}

	g, err := game.NewGame(game.Config{
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		Difficulty:     cfg.Difficulty,
		Seed:           cfg.Seed,
		Store:          store,
	})
	if err != nil {
		return err
	}

	gameStats, err := stats.NewGameStats(statsPath)
	if err != nil {
		log.Printf("[STATS] [WARN] starting with an empty history: %v", err)
	}
	recorder := stats.NewRecorder(gameStats, cfg.Persistent() && !cfg.Headless())
	g.Subscribe(recorder.Handle)
	defer saveStats(gameStats, statsPath)

	var pilot *ai.Autopilot
	if cfg.Autopilot || cfg.Headless() {
		agent := ai.NewQLearning(cfg.Seed)
		if qtablePath != "" {
			if err := agent.LoadQTable(qtablePath); err != nil {
				log.Printf("[AI] [WARN] starting with an empty Q table: %v", err)
			}
		}
		pilot = ai.NewAutopilot(agent, qtablePath)
		defer pilot.Save()
	}

	if cfg.Headless() {
		result, err := ai.Train(ctx, g, pilot, cfg.Train)
		log.Printf("[TRAIN] [INFO] %d rounds, average %.2f, best %d",
			result.Rounds, result.AverageScore(), result.BestScore)
		return err
	}

	sound := audio.NewSoundManager(cfg.Mute, cfg.Clicks)
	if !cfg.Mute {
		if err := sound.Initialize(); err != nil {
			log.Printf("[AUDIO] [WARN] running without sound: %v", err)
		}
	}
	defer sound.Cleanup()
	g.Subscribe(sound.Handle)

	lp := loop.New(g, nil)
	if pilot != nil {
		lp.SetPilot(pilot)
		g.Subscribe(func(ev game.Event) {
			if ev.Type.Terminal() {
				roundID := ev.RoundID
				time.AfterFunc(autopilotRestartDelay, func() { lp.RestartRound(roundID) })
			}
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- lp.Run(ctx)
	}()

	session := ui.NewSession(lp, cfg.Difficulty, cfg.SkipMenu())
	err = runFrontend(ctx, cfg, g, session)

	cancel()
	<-loopDone
	return err
}

func runFrontend(ctx context.Context, cfg config.Config, g *game.Game, session *ui.Session) error {
	switch cfg.Frontend {
	case config.FrontendTerminal:
		// Log lines would tear the terminal UI
		restore := redirectLog(cfg)
		defer restore()

		term, err := ui.NewTerminal(g, session)
		if err != nil {
			return err
		}
		return term.Run(ctx)
	default:
		return ui.NewRenderer(g, session).Run(ctx, cfg.ViewportWidth, cfg.ViewportHeight)
	}
}

// redirectLog sends log output to a file in the data directory
func redirectLog(cfg config.Config) func() {
	prev := log.Writer()
	if !cfg.Persistent() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }
	}

	path := filepath.Join(cfg.DataDir, "snake.log")
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}
}

func saveStats(s *stats.GameStats, path string) {
	if path == "" {
		return
	}
	if err := s.SaveToFile(); err != nil {
		log.Printf("[STATS] [WARN] could not save round history: %v", err)
		return
	}
	sum := s.Summary()
	log.Printf("[STATS] [INFO] %d rounds played, best %d, average %.2f",
		sum.Games, sum.MaxScore, sum.AverageScore)
}
