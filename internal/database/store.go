// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devlore/lore-mcp/internal/record"
)

// Store backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// StoreConfig selects and locates the knowledge store backend.
type StoreConfig struct {
	Backend  string // BackendSQLite or BackendPostgres
	Path     string // sqlite file location
	DSN      string // postgres connection string
	LogLevel logger.LogLevel
}

// Store implements record.Store on a gorm-backed knowledge database. This
// is the only layer allowed to interpret the reserved pattern identifier
// prefix; everything above sees sessions, plans and patterns as distinct
// record kinds.
type Store struct {
	db   *gorm.DB
	path string
}

// Connect opens the knowledge store described by cfg, creating the sqlite
// directory if needed. Postgres stores have no on-disk path, so Size
// reports zero for them.
func Connect(cfg *StoreConfig) (*Store, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
	}

	var db *gorm.DB
	var err error
	switch cfg.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
	case BackendPostgres:
		db, err = gorm.Open(postgres.Open(cfg.DSN), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres store: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// NewStore wraps an existing connection. Used by tests that manage the
// connection themselves.
func NewStore(db *gorm.DB, path string) *Store {
	return &Store{db: db, path: path}
}

// Open opens an existing sqlite knowledge store. A missing file surfaces as
// a NotFoundError naming the searched path; an unreadable one as a
// StorageError.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &record.NotFoundError{Path: path}
		}
		return nil, classify(path, err)
	}

	store, err := Connect(&StoreConfig{
		Backend:  BackendSQLite,
		Path:     path,
		LogLevel: logger.Silent,
	})
	if err != nil {
		return nil, classify(path, err)
	}
	if err := store.Ping(); err != nil {
		_ = store.Close()
		return nil, classify(path, err)
	}

	return store, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks that the store is reachable.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// DB exposes the underlying connection for migrations and seeding
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Path returns the store location
func (s *Store) Path() string {
	return s.path
}

// Size reports the on-disk size of the store in bytes. A store that hasn't
// been written yet, or one with no file backing it, reports 0.
func (s *Store) Size() (int64, error) {
	if s.path == "" {
		return 0, nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, classify(s.path, err)
	}
	return info.Size(), nil
}

// Sessions returns all sessions, most recent date first.
func (s *Store) Sessions(ctx context.Context) ([]record.Session, error) {
	var rows []LoreSession
	err := s.db.WithContext(ctx).
		Order("date DESC, created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(s.path, err)
	}

	sessions := make([]record.Session, len(rows))
	for i, row := range rows {
		sessions[i] = record.Session{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Date:      row.Date,
			Title:     row.Title,
			Status:    row.Status,
			Topics:    row.Topics,
			Content:   row.Content,
			Created:   row.CreatedAt,
			Updated:   row.UpdatedAt,
		}
	}
	return sessions, nil
}

// Plans returns all non-pattern plans, most recently created first.
func (s *Store) Plans(ctx context.Context) ([]record.Plan, error) {
	var rows []LorePlan
	err := s.db.WithContext(ctx).
		Where("id NOT LIKE ?", record.PatternIDPrefix+"%").
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(s.path, err)
	}

	plans := make([]record.Plan, len(rows))
	for i, row := range rows {
		plans[i] = record.Plan{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Title:     row.Title,
			Status:    row.Status,
			Author:    row.Author,
			Priority:  row.Priority,
			Type:      row.Type,
			Topics:    row.Topics,
			Content:   row.Content,
			Created:   row.CreatedAt,
			Updated:   row.UpdatedAt,
		}
	}
	return plans, nil
}

// Patterns returns all learned patterns, most recently created first. The
// plan row's type column is read as the pattern category and its topics as
// keywords.
func (s *Store) Patterns(ctx context.Context) ([]record.Pattern, error) {
	var rows []LorePlan
	err := s.db.WithContext(ctx).
		Where("id LIKE ?", record.PatternIDPrefix+"%").
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(s.path, err)
	}

	patterns := make([]record.Pattern, len(rows))
	for i, row := range rows {
		patterns[i] = record.Pattern{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Title:     row.Title,
			Category:  row.Type,
			Keywords:  row.Topics,
			Content:   row.Content,
			Created:   row.CreatedAt,
			Updated:   row.UpdatedAt,
		}
	}
	return patterns, nil
}

// classify wraps a low-level error as a StorageError, identifying the
// corrupt-format or permission-denied subcase when determinable.
func classify(path string, err error) error {
	msg := strings.ToLower(err.Error())
	cause := ""
	switch {
	case os.IsPermission(err) || strings.Contains(msg, "permission denied") || strings.Contains(msg, "readonly database"):
		cause = "permission"
	case strings.Contains(msg, "not a database") || strings.Contains(msg, "malformed") || strings.Contains(msg, "no such table"):
		cause = "corrupt"
	}
	return &record.StorageError{Path: path, Cause: cause, Err: err}
}
