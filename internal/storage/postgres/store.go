// Package postgres persists word history in PostgreSQL through gorm, for
// hosts where several tables share one server-side database.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// WordHistory is one served word of one pack.
type WordHistory struct {
	PackID   string    `gorm:"primaryKey;size:128"`
	WordKey  string    `gorm:"primaryKey;size:512"`
	ServedAt time.Time `gorm:"not null;index"`
}

func (WordHistory) TableName() string { return "word_history" }

// Store implements history.Store on PostgreSQL.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the word_history table.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm handle and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db is required")
	}
	if err := db.AutoMigrate(&WordHistory{}); err != nil {
		return nil, fmt.Errorf("migrate word history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ServedKeys(ctx context.Context, packID string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&WordHistory{}).
		Where("pack_id = ?", packID).
		Order("served_at, word_key").
		Pluck("word_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("list served keys: %w", err)
	}
	return keys, nil
}

func (s *Store) MarkServed(ctx context.Context, packID, key string) error {
	row := WordHistory{PackID: packID, WordKey: key, ServedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("mark served: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, packID string) error {
	err := s.db.WithContext(ctx).
		Where("pack_id = ?", packID).
		Delete(&WordHistory{}).Error
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
