// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AllModels returns all database models for migration
func AllModels() []interface{} {
	return []interface{}{
		&LoreProject{},
		&LoreSession{},
		&LorePlan{},
	}
}

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CreateIndexes creates additional indexes for better query performance
func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for frequently queried combinations
	indexes := []struct {
		table   string
		columns []string
		name    string
	}{
		{
			table:   "lore_sessions",
			columns: []string{"project_id", "date"},
			name:    "idx_sessions_project_date",
		},
		{
			table:   "lore_sessions",
			columns: []string{"date", "created_at"},
			name:    "idx_sessions_date_created",
		},
		{
			table:   "lore_plans",
			columns: []string{"project_id", "created_at"},
			name:    "idx_plans_project_created",
		},
		{
			table:   "lore_plans",
			columns: []string{"status", "author"},
			name:    "idx_plans_status_author",
		},
	}

	for _, idx := range indexes {
		hasIndex := db.Migrator().HasIndex(idx.table, idx.name)
		if !hasIndex {
			// GORM doesn't support composite indexes well, use raw SQL
			sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				idx.name,
				idx.table,
				strings.Join(idx.columns, ", "))

			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
	}

	return nil
}
