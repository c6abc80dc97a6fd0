package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

const (
	StatsFile = "stats.json"
	GroupSize = 100 // Record dello stesso livello fusi in uno del livello successivo
)

// Record e' una partita singola (Level 0) oppure un gruppo di partite fuse.
// Round-specific fields are only set on single rounds.
type Record struct {
	RoundID    string `json:"roundId,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cause      string `json:"cause,omitempty"`

	Level int       `json:"level"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Games           int            `json:"games"`
	AverageScore    float64        `json:"averageScore"`
	MedianScore     float64        `json:"medianScore"`
	MaxScore        int            `json:"maxScore"`
	MinScore        int            `json:"minScore"`
	AverageDuration float64        `json:"averageDuration"` // seconds
	MaxDuration     float64        `json:"maxDuration"`
	MinDuration     float64        `json:"minDuration"`
	Causes          map[string]int `json:"causes,omitempty"`           // rounds per end cause
	BestBy          map[string]int `json:"bestByDifficulty,omitempty"` // best score per difficulty
}

// Round descrive una partita conclusa.
type Round struct {
	ID         string
	Difficulty string
	Cause      string
	Score      int
	StartTime  time.Time
	EndTime    time.Time
}

func (r Round) record() Record {
	duration := r.EndTime.Sub(r.StartTime).Seconds()
	if duration < 0 {
		duration = 0
	}
	rec := Record{
		RoundID:         r.ID,
		Difficulty:      r.Difficulty,
		Cause:           r.Cause,
		Start:           r.StartTime,
		End:             r.EndTime,
		Games:           1,
		AverageScore:    float64(r.Score),
		MedianScore:     float64(r.Score),
		MaxScore:        r.Score,
		MinScore:        r.Score,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
	}
	if r.Cause != "" {
		rec.Causes = map[string]int{r.Cause: 1}
	}
	if r.Difficulty != "" {
		rec.BestBy = map[string]int{r.Difficulty: r.Score}
	}
	return rec
}

// Summary aggregates every round in the history
type Summary struct {
	Games           int
	AverageScore    float64
	MedianScore     float64
	MaxScore        int
	AverageDuration float64
	MaxDuration     float64
	Causes          map[string]int
	BestBy          map[string]int
}

// GameStats e' lo storico delle partite, salvato come JSON in path.
type GameStats struct {
	mutex   sync.RWMutex
	path    string
	records []Record
}

// NewGameStats carica lo storico da path. Con path vuoto resta in memoria.
// A file that cannot be read leaves an empty history and returns the error;
// the next save replaces it.
func NewGameStats(path string) (*GameStats, error) {
	s := &GameStats{path: path}
	return s, s.load()
}

// AddRound registra una partita e fonde i gruppi completi.
func (s *GameStats) AddRound(r Round) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records = append(s.records, r.record())
	s.fold()
}

// fold merges the oldest GroupSize records of a level into one record of the
// next level until no level holds a full group.
func (s *GameStats) fold() {
	for level := 0; level <= s.maxLevel(); level++ {
		for {
			idx := s.indexesAt(level)
			if len(idx) < GroupSize {
				break
			}

			group := make([]Record, 0, GroupSize)
			drop := make(map[int]bool, GroupSize)
			for _, i := range idx[:GroupSize] {
				group = append(group, s.records[i])
				drop[i] = true
			}

			kept := make([]Record, 0, len(s.records)-GroupSize+1)
			for i, rec := range s.records {
				if !drop[i] {
					kept = append(kept, rec)
				}
			}
			merged := merge(group)
			merged.Level = level + 1
			s.records = append(kept, merged)
		}
	}
}

func (s *GameStats) maxLevel() int {
	level := 0
	for _, rec := range s.records {
		level = max(level, rec.Level)
	}
	return level
}

// indexesAt lists the records of a level, oldest first
func (s *GameStats) indexesAt(level int) []int {
	var idx []int
	for i, rec := range s.records {
		if rec.Level == level {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return s.records[a].Start.Compare(s.records[b].Start)
	})
	return idx
}

// merge combina dei record in uno solo, pesando per numero di partite.
func merge(group []Record) Record {
	out := Record{
		Start:       group[0].Start,
		End:         group[0].End,
		MaxScore:    group[0].MaxScore,
		MinScore:    group[0].MinScore,
		MaxDuration: group[0].MaxDuration,
		MinDuration: group[0].MinDuration,
		Causes:      map[string]int{},
		BestBy:      map[string]int{},
	}
	var scoreSum, durationSum float64
	medians := make([]float64, 0, len(group))

	for _, rec := range group {
		out.Games += rec.Games
		scoreSum += rec.AverageScore * float64(rec.Games)
		durationSum += rec.AverageDuration * float64(rec.Games)
		out.MaxScore = max(out.MaxScore, rec.MaxScore)
		out.MinScore = min(out.MinScore, rec.MinScore)
		out.MaxDuration = max(out.MaxDuration, rec.MaxDuration)
		out.MinDuration = min(out.MinDuration, rec.MinDuration)
		if rec.Start.Before(out.Start) {
			out.Start = rec.Start
		}
		if rec.End.After(out.End) {
			out.End = rec.End
		}
		// La mediana di un gruppo e' approssimata pesando le mediane interne
		for i := 0; i < rec.Games; i++ {
			medians = append(medians, rec.MedianScore)
		}
		addCounts(out.Causes, rec.Causes)
		addBest(out.BestBy, rec.BestBy)
	}

	if out.Games > 0 {
		out.AverageScore = scoreSum / float64(out.Games)
		out.AverageDuration = durationSum / float64(out.Games)
	}
	out.MedianScore = median(medians)
	return out
}

func addCounts(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func addBest(dst, src map[string]int) {
	for k, v := range src {
		if cur, ok := dst[k]; !ok || v > cur {
			dst[k] = v
		}
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	slices.Sort(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Records returns a copy of the stored records, oldest level first
func (s *GameStats) Records() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := slices.Clone(s.records)
	slices.SortStableFunc(out, func(a, b Record) int {
		if a.Level != b.Level {
			return b.Level - a.Level
		}
		return a.Start.Compare(b.Start)
	})
	return out
}

// Summary aggregates the whole history
func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.records) == 0 {
		return Summary{Causes: map[string]int{}, BestBy: map[string]int{}}
	}
	all := merge(s.records)
	return Summary{
		Games:           all.Games,
		AverageScore:    all.AverageScore,
		MedianScore:     all.MedianScore,
		MaxScore:        all.MaxScore,
		AverageDuration: all.AverageDuration,
		MaxDuration:     all.MaxDuration,
		Causes:          all.Causes,
		BestBy:          all.BestBy,
	}
}

type statsFile struct {
	Version int      `json:"version"`
	Records []Record `json:"records"`
}

// SaveToFile salva lo storico su file (scrittura atomica via rename).
func (s *GameStats) SaveToFile() error {
	if s.path == "" {
		return nil
	}

	s.mutex.RLock()
	data, err := json.Marshal(statsFile{Version: 1, Records: s.records})
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

func (s *GameStats) load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Nessuno storico ancora
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var f statsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse stats file: %w", err)
	}
	s.records = f.Records
	return nil
}
