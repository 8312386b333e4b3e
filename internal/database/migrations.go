package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// indexes backs the default orderings and the ownership lookups used by cascades.
var indexes = []index{
	{"tasks", "idx_tasks_creator_id", "creator_id"},
	{"tasks", "idx_tasks_assignee_id", "assignee_id"},
	{"tasks", "idx_tasks_created_at", "created_at"},

	{"comments", "idx_comments_task_id", "task_id"},
	{"comments", "idx_comments_author_id", "author_id"},
	{"comments", "idx_comments_created_at", "created_at"},
}

// AddIndexes creates the secondary indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}
