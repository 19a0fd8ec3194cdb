// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Query    QueryConfig    `mapstructure:"query"`
	Search   SearchConfig   `mapstructure:"search"`
}

// DatabaseConfig holds knowledge store connection settings
type DatabaseConfig struct {
	Type        string `mapstructure:"type"` // "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// QueryConfig holds query engine settings
type QueryConfig struct {
	MaxLookback int `mapstructure:"max_lookback"` // upper bound for the `last` parameter
}

// SearchConfig holds search ranker settings
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}
