package storage

import (
	"encoding/json"
	"fmt"

	"github.com/keshon/datastore"
)

const (
	configKey = "config"
	xpKey     = "xp"
)

// Storage persists the bot configuration record and the experience table in a
// single JSON datastore. The datastore autosaves; config mutations are flushed
// immediately on top of that.
type Storage struct {
	ds *datastore.DataStore
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// decode round-trips a datastore value (map[string]any after a reload) into a
// typed destination.
func decode(value any, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling stored value: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("error unmarshalling stored value: %w", err)
	}
	return nil
}
