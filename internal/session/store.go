// Package session persists per-client preferences: the chosen theme and
// the identity of the user currently logged in on that client.
package session

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
)

// Store is a key-value store partitioned by client.
type Store interface {
	Get(ctx context.Context, clientID, key string) (string, bool, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
}

// GormStore keeps entries in the session_entries table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var entry models.SessionEntry
	err := s.db.WithContext(ctx).Where("client_id = ? AND key = ?", clientID, key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, clientID, key, value string) error {
	entry := models.SessionEntry{ClientID: clientID, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, clientID, key string) error {
	err := s.db.WithContext(ctx).Where("client_id = ? AND key = ?", clientID, key).Delete(&models.SessionEntry{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[clientID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[clientID] == nil {
		s.entries[clientID] = make(map[string]string)
	}
	s.entries[clientID][key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[clientID], key)
	return nil
}
