// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"gorm.io/gorm/logger"

	"github.com/devlore/lore-mcp/internal/config"
	"github.com/devlore/lore-mcp/internal/database"
	"github.com/devlore/lore-mcp/internal/server"
)

// Version is set at build time via ldflags
var Version string

func main() {
	// CRITICAL: MCP servers must ONLY output JSON-RPC to stdout
	// Redirect all logging to stderr
	log.SetOutput(os.Stderr)

	dbType := flag.String("db-type", "", "Database type (sqlite or postgres)")
	dbPath := flag.String("db-path", "", "Database path (for sqlite)")
	dbDSN := flag.String("db-dsn", "", "Database DSN (for postgres)")
	configPath := flag.String("config", "", "Path to config file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lore MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  LORE_DB_TYPE   Database type (sqlite or postgres)\n")
		fmt.Fprintf(os.Stderr, "  LORE_DB_PATH   SQLite database path\n")
		fmt.Fprintf(os.Stderr, "  LORE_DB_DSN    PostgreSQL connection string\n")
	}

	flag.Parse()

	log.Println("Starting Lore MCP Server...")

	// Load configuration
	var cfg *config.Config
	var err error

	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config from %s: %v", *configPath, err)
		}
		log.Printf("Loaded configuration from %s", *configPath)
	} else {
		cfg, err = config.Load()
		if err != nil {
			log.Printf("Warning: Failed to load default config: %v", err)
			log.Println("Using built-in defaults")
			cfg = config.DefaultConfig()
		}
	}

	applyEnvOverrides(cfg)
	applyCLIOverrides(cfg, *dbType, *dbPath, *dbDSN)

	log.Printf("Configuration: database=%s", cfg.Database.Type)

	// Connect to the knowledge store
	store, err := database.Connect(&database.StoreConfig{
		Backend:  cfg.Database.Type,
		Path:     cfg.Database.SQLitePath,
		DSN:      cfg.Database.PostgresDSN,
		LogLevel: logger.Silent, // CRITICAL: Silence GORM stdout output for MCP
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := database.Migrate(store.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.CreateIndexes(store.DB()); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	log.Println("Database migrations completed")

	// Create MCP server and serve via stdio
	srv := server.NewMCPServer(cfg, store)
	log.Println("MCP server ready (stdio mode) - 5 tools registered")

	if err := mcpserver.ServeStdio(srv.GetMCPServer()); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *config.Config) {
	if dbType := os.Getenv("LORE_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
		log.Printf("Database type from ENV: %s", dbType)
	}
	if dbPath := os.Getenv("LORE_DB_PATH"); dbPath != "" {
		cfg.Database.SQLitePath = dbPath
		log.Printf("Database path from ENV")
	}
	if dbDSN := os.Getenv("LORE_DB_DSN"); dbDSN != "" {
		cfg.Database.PostgresDSN = dbDSN
		log.Printf("Database DSN from ENV (hidden)")
	}
}

// applyCLIOverrides applies command-line flag overrides to configuration
func applyCLIOverrides(cfg *config.Config, dbType, dbPath, dbDSN string) {
	if dbType != "" {
		cfg.Database.Type = dbType
		log.Printf("Database type from CLI: %s", dbType)
	}
	if dbPath != "" {
		cfg.Database.SQLitePath = dbPath
		log.Printf("Database path from CLI")
	}
	if dbDSN != "" {
		cfg.Database.PostgresDSN = dbDSN
		log.Printf("Database DSN from CLI (hidden)")
	}
}
