// Package repository persists profiles, memories, emotional patterns, and
// conversation contexts in PostgreSQL through GORM.
package repository

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navin5447/Edgesoul/internal/memory"
)

// Store holds the DB pool and repositories.
type Store struct {
	db            *gorm.DB
	Profiles      memory.ProfileRepo
	Memories      memory.MemoryRepo
	Patterns      memory.PatternRepo
	Conversations memory.ConversationRepo
}

// NewStore initializes the PostgreSQL pool and repositories.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{
		db:            db,
		Profiles:      NewProfileRepo(db),
		Memories:      NewMemoryRepo(db),
		Patterns:      NewPatternRepo(db),
		Conversations: NewConversationRepo(db),
	}
	return store, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
