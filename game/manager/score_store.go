package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BestScoreKey names the persisted best score
const BestScoreKey = "highScore"

// ErrNoScore is returned by a ScoreStore that holds no value for a key
var ErrNoScore = errors.New("no score stored")

// ScoreStore persists integer scores by name
type ScoreStore interface {
	Load(key string) (int, error)
	Save(key string, value int) error
}

// FileStore keeps scores as a flat JSON object in a single file
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Load(key string) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	scores, err := fs.read()
	if err != nil {
		return 0, err
	}
	value, ok := scores[key]
	if !ok {
		return 0, ErrNoScore
	}
	return value, nil
}

func (fs *FileStore) Save(key string, value int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	scores, err := fs.read()
	if err != nil && !errors.Is(err, ErrNoScore) {
		// Corrupt file gets replaced
		scores = make(map[string]int)
	}
	scores[key] = value

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return fmt.Errorf("failed to create score directory: %w", err)
	}

	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	// Write-then-rename
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace score file: %w", err)
	}
	return nil
}

func (fs *FileStore) read() (map[string]int, error) {
	scores := make(map[string]int)
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return scores, ErrNoScore
		}
		return scores, fmt.Errorf("failed to read score file: %w", err)
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return make(map[string]int), fmt.Errorf("failed to parse score file: %w", err)
	}
	return scores, nil
}

// MemoryStore keeps scores in process memory only
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]int)}
}

func (ms *MemoryStore) Load(key string) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, ok := ms.scores[key]
	if !ok {
		return 0, ErrNoScore
	}
	return value, nil
}

func (ms *MemoryStore) Save(key string, value int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.scores[key] = value
	return nil
}
