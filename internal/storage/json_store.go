package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"pillbox/internal/logger"
	"pillbox/internal/models"
	"pillbox/internal/notifier"
)

type Store struct {
	Version  int                    `json:"version"`
	Settings Settings               `json:"settings"`
	Pills    map[string]models.Pill `json:"pills"`
}

type JSONStore struct {
	path     string
	store    *Store
	degraded bool
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: Settings{
			NotificationPermission: string(notifier.PermissionDefault),
		},
		Pills: make(map[string]models.Pill),
	}

	// Init writes strictly: a store that was never persisted is a hard error,
	// unlike a loaded store that later loses its medium.
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'pillbox init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Pills == nil {
		s.store.Pills = make(map[string]models.Pill)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the store to disk. When the medium is unavailable the store
// degrades to in-memory operation: the mutation is kept for the lifetime of
// the process, a warning is logged, and the calling operation does not fail.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		if !s.degraded {
			s.degraded = true
			logger.Warn("storage unavailable, continuing in memory only", "path", s.path, "error", err)
		}
		return nil
	}

	s.degraded = false
	return nil
}

// Degraded reports whether the last write to the storage file failed and the
// store is carrying changes in memory only.
func (s *JSONStore) Degraded() bool {
	return s.degraded
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddPill(pill models.Pill) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Pills[pill.ID] = pill
	return s.save()
}

func (s *JSONStore) GetPill(id string) (models.Pill, error) {
	if s.store == nil {
		return models.Pill{}, fmt.Errorf("storage not loaded")
	}

	pill, ok := s.store.Pills[id]
	if !ok {
		return models.Pill{}, fmt.Errorf("pill %s: %w", id, ErrNotFound)
	}

	return pill, nil
}

// GetAllPills returns every pill ordered by creation time, oldest first.
// Ties fall back to id so the order is stable across loads.
func (s *JSONStore) GetAllPills() ([]models.Pill, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	pills := make([]models.Pill, 0, len(s.store.Pills))
	for _, pill := range s.store.Pills {
		pills = append(pills, pill)
	}

	sort.Slice(pills, func(i, j int) bool {
		if !pills[i].CreatedAt.Equal(pills[j].CreatedAt) {
			return pills[i].CreatedAt.Before(pills[j].CreatedAt)
		}
		return pills[i].ID < pills[j].ID
	})

	return pills, nil
}

func (s *JSONStore) UpdatePill(pill models.Pill) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Pills[pill.ID]; !ok {
		return fmt.Errorf("pill %s: %w", pill.ID, ErrNotFound)
	}

	pill.UpdatedAt = time.Now().UTC()
	s.store.Pills[pill.ID] = pill
	return s.save()
}

func (s *JSONStore) DeletePill(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Pills[id]; !ok {
		return fmt.Errorf("pill %s: %w", id, ErrNotFound)
	}

	delete(s.store.Pills, id)
	return s.save()
}

// MarkTaken records that the dose at the given slot was taken at the given
// instant. The pill is left untouched when either id is unknown.
func (s *JSONStore) MarkTaken(pillID, slotID string, at time.Time) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	pill, ok := s.store.Pills[pillID]
	if !ok {
		return fmt.Errorf("pill %s: %w", pillID, ErrNotFound)
	}

	slot := pill.FindSlot(slotID)
	if slot == nil {
		return fmt.Errorf("slot %s on pill %s: %w", slotID, pillID, ErrNotFound)
	}

	slot.Taken = true
	takenAt := at.UTC()
	slot.TakenAt = &takenAt
	pill.UpdatedAt = time.Now().UTC()

	s.store.Pills[pillID] = pill
	return s.save()
}

// GetStorePath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple pillbox processes that share the same storage path at
//     the same time is not supported and may lead to data loss.
func (s *JSONStore) GetStorePath() string {
	return s.path
}
