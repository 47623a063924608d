// Package database provides schema creation for the page builder store
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DefaultThemeID and HomePageID name the rows seeded into an empty database.
const (
	DefaultThemeID = "default"
	HomePageID     = "home"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
func (tc *TableCreator) CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.ExecContext(ctx, tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds a default theme and an empty home page when they are missing.
func (tc *TableCreator) SeedInitialContent(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC()

	var themeExists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM themes WHERE id = ?)", DefaultThemeID).Scan(&themeExists); err != nil {
		return fmt.Errorf("failed to check for default theme: %w", err)
	}
	if !themeExists {
		_, err := db.ExecContext(ctx, `INSERT INTO themes (id, name, settings, changed) VALUES (?, ?, ?, ?)`,
			DefaultThemeID, "Default", `{}`, now)
		if err != nil {
			return fmt.Errorf("failed to insert default theme: %w", err)
		}
	}

	var pageExists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pages WHERE id = ?)", HomePageID).Scan(&pageExists); err != nil {
		return fmt.Errorf("failed to check for home page: %w", err)
	}
	if !pageExists {
		_, err := db.ExecContext(ctx, `INSERT INTO pages (id, title, slug, layout, theme_id, theme_settings, created, changed) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			HomePageID, "Home", "home", homeLayout, DefaultThemeID, `{}`, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert home page: %w", err)
		}
	}
	return nil
}

const homeLayout = `[{"id":"pageContent","type":"pageContent","content":[],"styles":{}}]`

var tables = []string{
	`CREATE TABLE IF NOT EXISTS themes (id TEXT PRIMARY KEY, name TEXT NOT NULL, settings TEXT NOT NULL DEFAULT '{}', changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS pages (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, layout TEXT NOT NULL DEFAULT '[]', theme_id TEXT REFERENCES themes(id), theme_settings TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_pages_slug ON pages(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_theme_id ON pages(theme_id)`,
}
