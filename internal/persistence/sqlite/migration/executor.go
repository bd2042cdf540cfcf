package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"
)

// Executor applies migrations against a database.
type Executor struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewExecutor creates a migration executor. A nil logger discards output.
func NewExecutor(db *sql.DB, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{db: db, logger: logger, now: time.Now}
}

// InitializeVersionTable creates the schema_migrations table if it doesn't exist
func (e *Executor) InitializeVersionTable(ctx context.Context) error {
	const createTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL,
			checksum TEXT,
			execution_time_ms INTEGER
		)`
	if _, err := e.db.ExecContext(ctx, createTableSQL); err != nil {
		return NewMigrationError("", "", "create schema_migrations table", err)
	}
	return nil
}

// IsVersionApplied checks if a specific migration version has been applied
func (e *Executor) IsVersionApplied(ctx context.Context, version string) (bool, error) {
	var exists int
	err := e.db.QueryRowContext(ctx, `SELECT 1 FROM schema_migrations WHERE version = ? LIMIT 1`, version).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, NewMigrationError(version, "", "check version applied", err)
	}
	return true, nil
}

// AppliedVersions returns the applied versions in ascending order.
func (e *Executor) AppliedVersions(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version ASC`)
	if err != nil {
		return nil, NewMigrationError("", "", "list applied versions", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, NewMigrationError("", "", "scan applied version", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Apply runs a single migration and records it within one transaction.
func (e *Executor) Apply(ctx context.Context, m Migration) (err error) {
	started := e.now()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return NewMigrationError(m.Version, m.FilePath, "begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				e.logger.Error("failed to rollback migration", "version", m.Version, "error", rbErr)
			}
		}
	}()

	for i, stmt := range parseSQL(m.SQL) {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			err = NewMigrationError(m.Version, m.FilePath, fmt.Sprintf("execute statement %d", i+1), execErr)
			return err
		}
	}

	elapsed := e.now().Sub(started)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, applied_at, checksum, execution_time_ms) VALUES (?, ?, ?, ?)`,
		m.Version, e.now().UTC().Format(time.RFC3339), m.Checksum, elapsed.Milliseconds(),
	)
	if err != nil {
		err = NewMigrationError(m.Version, m.FilePath, "record migration", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = NewMigrationError(m.Version, m.FilePath, "commit transaction", err)
		return err
	}
	return nil
}

// Run applies every pending migration found in dir of fsys and returns the
// versions it applied.
func (e *Executor) Run(ctx context.Context, fsys fs.FS, dir string) ([]string, error) {
	migrations, err := Scan(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := e.InitializeVersionTable(ctx); err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range migrations {
		done, err := e.IsVersionApplied(ctx, m.Version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		if err := e.Apply(ctx, m); err != nil {
			e.logger.ErrorContext(ctx, "migration failed", "version", m.Version, "error", err)
			return applied, err
		}
		e.logger.InfoContext(ctx, "migration applied", "version", m.Version, "description", m.Description)
		applied = append(applied, m.Version)
	}
	return applied, nil
}
