package core

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const scoreboardItem = "scoreboard"

// ScoreStore persists the win tally across server restarts using the
// platform's application data directory.
type ScoreStore struct {
	manager *gdata.Manager
}

// OpenScoreStore initializes persistent storage for the scoreboard.
func OpenScoreStore() (*ScoreStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: "skirmishd",
	})
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return &ScoreStore{manager: m}, nil
}

// Load reads the persisted scoreboard. A missing item is not an error; it
// returns an empty map.
func (s *ScoreStore) Load() (map[string]int, error) {
	data, err := s.manager.LoadItem(scoreboardItem)
	if err != nil {
		return nil, fmt.Errorf("load scoreboard: %w", err)
	}
	if len(data) == 0 {
		return map[string]int{}, nil
	}

	var scores map[string]int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("parse scoreboard: %w", err)
	}
	return scores, nil
}

// Save writes the scoreboard to disk.
func (s *ScoreStore) Save(scores map[string]int) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scoreboard: %w", err)
	}
	if err := s.manager.SaveItem(scoreboardItem, data); err != nil {
		return fmt.Errorf("save scoreboard: %w", err)
	}
	return nil
}
