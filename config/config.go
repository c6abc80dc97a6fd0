// Package config layers defaults, a .env file, SNAKE_* environment variables
// and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"snake-arcade/ai"
	"snake-arcade/game"
	"snake-arcade/stats"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ScoreFile holds the persisted best score inside the data directory
const ScoreFile = "scores.json"

type Frontend string

const (
	FrontendWindow   Frontend = "window"
	FrontendTerminal Frontend = "terminal"
)

var (
	ErrUnknownFrontend = errors.New("unknown frontend")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Config holds the application's configuration values.
type Config struct {
	DataDir        string          // Directory for scores, stats and the Q table
	Difficulty     game.Difficulty // Difficulty of the first round
	ViewportWidth  int             // Board area in pixel-equivalents
	ViewportHeight int
	Frontend       Frontend
	Mute           bool   // No audio at all
	Clicks         bool   // Click on every move
	Autopilot      bool   // Q-learning agent plays instead of the keyboard
	Train          int    // Headless training rounds; 0 runs the game
	Seed           uint64 // Food and agent RNG seed; 0 seeds from time
	Ephemeral      bool   // Write nothing to the data directory
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DataDir:        "data",
		Difficulty:     game.Easy,
		ViewportWidth:  game.DefaultViewportWidth,
		ViewportHeight: game.DefaultViewportHeight,
		Frontend:       FrontendWindow,
	}
}

func (c Config) ScorePath() string { return filepath.Join(c.DataDir, ScoreFile) }
func (c Config) StatsPath() string { return filepath.Join(c.DataDir, stats.StatsFile) }
func (c Config) QTablePath() string { return filepath.Join(c.DataDir, ai.QTableFile) }
func (c Config) SkipMenu() bool { return c.Autopilot }
func (c Config) Headless() bool { return c.Train > 0 }
func (c Config) Persistent() bool { return !c.Ephemeral }

// Load reads envFile (if present) into the process environment, then parses
// args on top of it. Variables already set in the environment win over the
// file.
func Load(args []string, envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("[APP] [INFO] %s not loaded: %v", envFile, err)
	}
	return Parse(args, os.LookupEnv)
}

// Parse builds a Config from lookup and args without touching the process
// environment.
func Parse(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	difficulty := fs.String("difficulty", cfg.Difficulty.String(), "Starting difficulty: easy, medium or hard")
	frontend := fs.String("frontend", string(cfg.Frontend), "Frontend: window or terminal")
	seed := fs.Uint64("seed", cfg.Seed, "RNG seed (0 = time based)")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory for saved scores, stats and Q table")
	fs.IntVar(&cfg.ViewportWidth, "width", cfg.ViewportWidth, "Board width in pixels")
	fs.IntVar(&cfg.ViewportHeight, "height", cfg.ViewportHeight, "Board height in pixels")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable sound")
	fs.BoolVar(&cfg.Clicks, "clicks", cfg.Clicks, "Play a click on every move")
	fs.BoolVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, "Let the Q-learning agent play")
	fs.IntVar(&cfg.Train, "train", cfg.Train, "Train the agent headless for N rounds and exit")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "Keep scores, stats and the Q table in memory only")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	d, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		return Config{}, err
	}
	cfg.Difficulty = d
	if cfg.Frontend, err = ParseFrontend(*frontend); err != nil {
		return Config{}, err
	}
	cfg.Seed = *seed

	return cfg, cfg.Validate()
}

// Validate checks values no parser can reject on its own
func (c Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.ViewportWidth, c.ViewportHeight)
	}
	if c.Train < 0 {
		return fmt.Errorf("%w: train %d", ErrInvalidConfig, c.Train)
	}
	if c.DataDir == "" && c.Persistent() {
		return fmt.Errorf("%w: empty data directory", ErrInvalidConfig)
	}
	return nil
}

func ParseFrontend(s string) (Frontend, error) {
	switch f := Frontend(strings.ToLower(strings.TrimSpace(s))); f {
	case FrontendWindow, FrontendTerminal:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFrontend, s)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var err error
	if v, ok := lookup("SNAKE_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := lookup("SNAKE_DIFFICULTY"); ok {
		if cfg.Difficulty, err = game.ParseDifficulty(v); err != nil {
			return err
		}
	}
	if v, ok := lookup("SNAKE_FRONTEND"); ok {
		if cfg.Frontend, err = ParseFrontend(v); err != nil {
			return err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SNAKE_WIDTH", &cfg.ViewportWidth},
		{"SNAKE_HEIGHT", &cfg.ViewportHeight},
		{"SNAKE_TRAIN", &cfg.Train},
	}
	for _, e := range ints {
		if err := envInt(lookup, e.key, e.dst); err != nil {
			return err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SNAKE_MUTE", &cfg.Mute},
		{"SNAKE_CLICKS", &cfg.Clicks},
		{"SNAKE_AUTOPILOT", &cfg.Autopilot},
		{"SNAKE_EPHEMERAL", &cfg.Ephemeral},
	}
	for _, e := range bools {
		if err := envBool(lookup, e.key, e.dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("SNAKE_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SNAKE_SEED must be an unsigned integer: %v", ErrInvalidConfig, err)
		}
		cfg.Seed = seed
	}
	return nil
}

func envInt(lookup func(string) (string, bool), key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}

func envBool(lookup func(string) (string, bool), key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidConfig, key, err)
	}
	*dst = b
	return nil
}
