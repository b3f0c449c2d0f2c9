// Package draft persists locally created leads that have not reached the
// remote store yet, so they survive restarts and sync later.
package draft

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/aurelialabs/faro/internal/state"
)

// Store is a diskv-backed state.DraftStore. One record per draft lead,
// keyed by the draft id.
type Store struct {
	d      *diskv.Diskv
	logger *slog.Logger
}

// DefaultBasePath returns the on-disk location for draft records.
func DefaultBasePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".faro", "drafts")
}

// Open creates a store rooted at basePath. The directory is created on
// first write. logger may be nil.
func Open(basePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		logger: logger,
	}
}

// List returns every stored draft, ordered by id for stable merges.
// Unreadable records are skipped.
func (s *Store) List() []state.Entity {
	out := make([]state.Entity, 0)
	for key := range s.d.Keys(nil) {
		data, err := s.d.Read(key)
		if err != nil {
			s.logger.Warn("reading draft lead", "id", key, "error", err)
			continue
		}
		var e state.Entity
		if err := json.Unmarshal(data, &e); err != nil {
			s.logger.Warn("decoding draft lead", "id", key, "error", err)
			continue
		}
		// the key is authoritative, old records may predate a rename
		e.ID = key
		e.Synced = false
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Put writes or overwrites a draft record.
func (s *Store) Put(e state.Entity) error {
	if e.ID == "" {
		return fmt.Errorf("draft: entity id required")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.d.Write(e.ID, data)
}

// Remove deletes a draft record. Removing an absent id is not an error.
func (s *Store) Remove(id string) error {
	if !s.d.Has(id) {
		return nil
	}
	return s.d.Erase(id)
}
