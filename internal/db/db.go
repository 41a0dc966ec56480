package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

var dbInitialized bool

// GetDB returns the database connection, initializing if needed
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	flowdeckDir := filepath.Join(home, ".flowdeck")
	dbPath := filepath.Join(flowdeckDir, "flowdeck.db")

	// Ensure .flowdeck directory exists
	if err := os.MkdirAll(flowdeckDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .flowdeck directory: %w", err)
	}

	// Open database connection
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Apply schema on first connection (but avoid recursion)
	if !dbInitialized {
		dbInitialized = true
		if err := InitSchema(); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// GetDBPath returns the path to the database file
func GetDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowdeck", "flowdeck.db"), nil
}

// InitSchema creates all tables and seeds the reward catalog if empty.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := SeedRewardCatalog(database); err != nil {
		return fmt.Errorf("failed to seed reward catalog: %w", err)
	}

	return nil
}
