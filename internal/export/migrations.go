package export

import "fmt"

// migrate creates the snapshot schema.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS export_rows (
			position      INTEGER PRIMARY KEY,
			task_id       TEXT NOT NULL UNIQUE,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			start_date    TEXT NOT NULL,
			end_date      TEXT NOT NULL,
			assigned_to   TEXT NOT NULL DEFAULT '',
			progress      TEXT NOT NULL,
			priority      TEXT CHECK(priority IN ('low', 'medium', 'high')),
			completed     TEXT CHECK(completed IN ('Yes', 'No')),
			duration_days INTEGER NOT NULL,
			exported_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_export_rows_start ON export_rows(start_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating export_rows table: %w", err)
	}

	return nil
}
