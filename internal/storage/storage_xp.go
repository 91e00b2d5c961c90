package storage

import "log"

// XPRecord is one actor's accumulated experience. Level starts at 1 and never
// decreases.
type XPRecord struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// LoadXP returns the persisted experience table keyed by actor ID. A missing
// or malformed table yields an empty one.
func (s *Storage) LoadXP() map[string]XPRecord {
	value, exists := s.ds.Get(xpKey)
	if !exists {
		return map[string]XPRecord{}
	}
	table := map[string]XPRecord{}
	if err := decode(value, &table); err != nil {
		log.Println("[WARN] Malformed experience table, starting empty:", err)
		return map[string]XPRecord{}
	}
	return table
}

// SaveXP persists the experience table. The datastore autosave flushes it to
// disk shortly after.
func (s *Storage) SaveXP(table map[string]XPRecord) error {
	s.ds.Add(xpKey, table)
	return nil
}
