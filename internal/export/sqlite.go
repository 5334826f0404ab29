package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite is an export snapshot file. It is written once per export and never
// used as the working store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the snapshot file and ensures its schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Replace swaps the stored rows for rows in a single transaction.
func (s *SQLite) Replace(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM export_rows`); err != nil {
		return fmt.Errorf("clearing export rows: %w", err)
	}

	query := `
		INSERT INTO export_rows (
			position, task_id, title, description, start_date, end_date,
			assigned_to, progress, priority, completed, duration_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		_, err := stmt.ExecContext(ctx,
			i,
			r.TaskID,
			r.Title,
			r.Description,
			r.StartDate,
			r.EndDate,
			r.AssignedTo,
			r.Progress,
			r.Priority,
			r.Completed,
			r.DurationDays,
		)
		if err != nil {
			return fmt.Errorf("inserting row %s: %w", r.TaskID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

// Rows reads the snapshot back in export order.
func (s *SQLite) Rows(ctx context.Context) ([]Row, error) {
	query := `
		SELECT task_id, title, description, start_date, end_date,
		       assigned_to, progress, priority, completed, duration_days
		FROM export_rows
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying export rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var r Row
		err := rows.Scan(
			&r.TaskID,
			&r.Title,
			&r.Description,
			&r.StartDate,
			&r.EndDate,
			&r.AssignedTo,
			&r.Progress,
			&r.Priority,
			&r.Completed,
			&r.DurationDays,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export rows: %w", err)
	}

	return out, nil
}

// WriteSQLite writes rows to the snapshot file at path, replacing any
// previous export in it.
func WriteSQLite(ctx context.Context, path string, rows []Row) error {
	s, err := OpenSQLite(path)
	if err != nil {
		return err
	}
	if err := s.Replace(ctx, rows); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}
