package database

import (
	"fmt"

	"github.com/tmihalic/workboard-api/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes to the database. Index existence is checked
// against pg_indexes, so this runs only on the postgres driver.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for filtering and searching
		{"tasks", "idx_tasks_creator_id", "creator_id"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Team membership indexes
		{"team_members", "idx_team_members_team_id", "team_id"},
		{"team_members", "idx_team_members_user_id", "user_id"},

		// Owned collection lookups
		{"projects", "idx_projects_team_id", "team_id"},
		{"comments", "idx_comments_task_id", "task_id"},
		{"attachments", "idx_attachments_task_id", "task_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Logger.WithField("index", idx.name).Info("Created index")
	}

	return nil
}
