package stats

import (
	"os"
	"path/filepath"
	"snake-arcade/game"
	"testing"
	"time"
)

func addRounds(s *GameStats, n int, base time.Time) {
	for i := 0; i < n; i++ {
		start := base.Add(time.Duration(i) * time.Minute)
		s.AddRound(Round{
			Difficulty: []string{"easy", "hard"}[i%2],
			Cause:      "wall-collision",
			Score:      i % 10,
			StartTime:  start,
			EndTime:    start.Add(time.Second),
		})
	}
}

func TestSummary(t *testing.T) {
	s, err := NewGameStats("")
	if err != nil {
		t.Fatalf("NewGameStats failed: %v", err)
	}
	if sum := s.Summary(); sum.Games != 0 || sum.AverageScore != 0 {
		t.Errorf("Expected empty summary, got %+v", sum)
	}

	base := time.Unix(1000, 0)
	rounds := []struct {
		difficulty, cause string
		score             int
	}{
		{"easy", "wall-collision", 2},
		{"hard", "self-collision", 4},
		{"easy", "wall-collision", 9},
	}
	for i, r := range rounds {
		start := base.Add(time.Duration(i) * time.Minute)
		s.AddRound(Round{
			ID:         "r",
			Difficulty: r.difficulty,
			Cause:      r.cause,
			Score:      r.score,
			StartTime:  start,
			EndTime:    start.Add(time.Duration(10*(i+1)) * time.Second),
		})
	}

	sum := s.Summary()
	if sum.Games != 3 {
		t.Errorf("Expected 3 games, got %d", sum.Games)
	}
	if sum.AverageScore != 5 {
		t.Errorf("Expected average 5, got %v", sum.AverageScore)
	}
	if sum.MedianScore != 4 {
		t.Errorf("Expected median 4, got %v", sum.MedianScore)
	}
	if sum.MaxScore != 9 {
		t.Errorf("Expected max 9, got %d", sum.MaxScore)
	}
	if sum.AverageDuration != 20 || sum.MaxDuration != 30 {
		t.Errorf("Expected durations 20/30, got %v/%v", sum.AverageDuration, sum.MaxDuration)
	}
	if sum.Causes["wall-collision"] != 2 || sum.Causes["self-collision"] != 1 {
		t.Errorf("Unexpected causes %v", sum.Causes)
	}
	if sum.BestBy["easy"] != 9 || sum.BestBy["hard"] != 4 {
		t.Errorf("Unexpected best by difficulty %v", sum.BestBy)
	}
}

func TestFoldCompressesFullGroups(t *testing.T) {
	s, _ := NewGameStats("")
	addRounds(s, GroupSize+5, time.Unix(0, 0))

	records := s.Records()
	if len(records) != 6 {
		t.Fatalf("Expected 1 group and 5 singles, got %d records", len(records))
	}
	group := records[0]
	if group.Level != 1 || group.Games != GroupSize {
		t.Errorf("Expected level 1 group of %d, got level %d with %d", GroupSize, group.Level, group.Games)
	}
	if group.MaxScore != 9 || group.MinScore != 0 {
		t.Errorf("Expected range 0..9, got %d..%d", group.MinScore, group.MaxScore)
	}
	if group.Causes["wall-collision"] != GroupSize {
		t.Errorf("Expected %d wall collisions in group, got %d", GroupSize, group.Causes["wall-collision"])
	}
	for _, r := range records[1:] {
		if r.Level != 0 || r.Games != 1 {
			t.Errorf("Expected single round, got %+v", r)
		}
	}
	if got := s.Summary().Games; got != GroupSize+5 {
		t.Errorf("Expected %d games played, got %d", GroupSize+5, got)
	}
}

func TestFoldCascadesLevels(t *testing.T) {
	s, _ := NewGameStats("")
	addRounds(s, GroupSize*GroupSize, time.Unix(0, 0))

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("Expected a single record, got %d", len(records))
	}
	if records[0].Level != 2 || records[0].Games != GroupSize*GroupSize {
		t.Errorf("Expected level 2 record of %d games, got %+v", GroupSize*GroupSize, records[0])
	}
	if got := records[0].AverageScore; got != 4.5 {
		t.Errorf("Expected average 4.5, got %v", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", StatsFile)
	s, err := NewGameStats(path)
	if err != nil {
		t.Fatalf("NewGameStats failed: %v", err)
	}
	now := time.Unix(500, 0)
	s.AddRound(Round{ID: "abc", Difficulty: "hard", Cause: "wall-collision", Score: 7, StartTime: now, EndTime: now.Add(time.Minute)})
	if err := s.SaveToFile(); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := NewGameStats(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	records := loaded.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.RoundID != "abc" || r.Difficulty != "hard" || r.Cause != "wall-collision" || r.MaxScore != 7 {
		t.Errorf("Unexpected record %+v", r)
	}
}

func TestCorruptFileIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := NewGameStats(path)
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	if s == nil || s.Summary().Games != 0 {
		t.Fatal("Expected an empty usable history")
	}

	s.AddRound(Round{Score: 1, StartTime: time.Unix(0, 0), EndTime: time.Unix(1, 0)})
	if err := s.SaveToFile(); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	if _, err := NewGameStats(path); err != nil {
		t.Errorf("Expected rewritten file to load, got %v", err)
	}
}

func TestRecorderTracksRounds(t *testing.T) {
	s, _ := NewGameStats("")
	rec := NewRecorder(s, false)
	start := time.Unix(100, 0)

	rec.Handle(game.Event{Type: game.EventStarted, RoundID: "one", At: start})
	rec.Handle(game.Event{Type: game.EventMoved, RoundID: "one", At: start.Add(time.Second)})
	rec.Handle(game.Event{Type: game.EventSelfCollision, RoundID: "one", Difficulty: game.Medium, Score: 3, At: start.Add(5 * time.Second)})

	// Terminal event from a round that never started is ignored
	rec.Handle(game.Event{Type: game.EventWallCollision, RoundID: "stray", At: start})

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Cause != "self-collision" || r.Difficulty != "medium" || r.MaxScore != 3 {
		t.Errorf("Unexpected record %+v", r)
	}
	if r.AverageDuration != 5 {
		t.Errorf("Expected 5s duration, got %v", r.AverageDuration)
	}
}
