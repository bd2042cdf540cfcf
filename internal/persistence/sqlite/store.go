// Package sqlite stores rooms and reservations in indexed SQLite tables.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const insertBatchSize = 100

var roomColumns = []string{"id", "block", "room_id", "capacity", "room_type", "registered_on"}

var reservationColumns = []string{
	"id", "block", "room_id", "room_type", "start_date", "end_date", "day_of_week",
	"start_time", "end_time", "requester_id", "requester_name", "subject", "booked_on",
}

// Store implements persistence.Adapter on top of SQLite.
type Store struct {
	pool   *ConnectionPool
	mapper ErrorMapper
	retry  RetryConfig
	psql   sq.StatementBuilderType
}

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	pool, err := NewConnectionPool(ctx, config)
	if err != nil {
		return nil, err
	}
	if _, err := migration.NewExecutor(pool.DB(), logger).Run(ctx, migrationFiles, "migrations"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{
		pool:  pool,
		retry: DefaultRetryConfig(),
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Pool exposes the connection pool, mainly for health checks.
func (s *Store) Pool() *ConnectionPool {
	return s.pool
}

// LoadRooms returns the stored rooms in their persisted order.
func (s *Store) LoadRooms(ctx context.Context) ([]booking.Room, error) {
	query, args, err := s.psql.Select(roomColumns...).From("rooms").OrderBy("position ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load rooms query failed: %w", err)
	}

	rows, err := s.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load rooms failed: %w", s.mapper.MapError(err))
	}
	defer rows.Close()

	var records []persistence.RoomRecord
	for rows.Next() {
		var rec persistence.RoomRecord
		if err := rows.Scan(&rec.ID, &rec.Block, &rec.RoomID, &rec.Capacity, &rec.RoomType, &rec.RegisteredOn); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms failed: %w", err)
	}
	return persistence.RoomsFromRecords(records)
}

// LoadReservations returns the stored reservations in their persisted order.
func (s *Store) LoadReservations(ctx context.Context) ([]booking.Reservation, error) {
	query, args, err := s.psql.Select(reservationColumns...).From("reservations").OrderBy("position ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load reservations query failed: %w", err)
	}

	rows, err := s.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load reservations failed: %w", s.mapper.MapError(err))
	}
	defer rows.Close()

	var records []persistence.ReservationRecord
	for rows.Next() {
		var rec persistence.ReservationRecord
		if err := rows.Scan(
			&rec.ID, &rec.Block, &rec.RoomID, &rec.RoomType, &rec.StartDate, &rec.EndDate, &rec.DayOfWeek,
			&rec.StartTime, &rec.EndTime, &rec.RequesterID, &rec.RequesterName, &rec.Subject, &rec.BookedOn,
		); err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations failed: %w", err)
	}
	return persistence.ReservationsFromRecords(ctx, records)
}

// PersistRooms replaces the rooms table with the given collection.
func (s *Store) PersistRooms(ctx context.Context, rooms []booking.Room) error {
	records := persistence.RoomRecords(rooms)
	rows := make([][]any, len(records))
	for i, rec := range records {
		rows[i] = []any{rec.ID, rec.Block, rec.RoomID, rec.Capacity, rec.RoomType, rec.RegisteredOn}
	}
	return s.replace(ctx, "rooms", roomColumns, rows)
}

// PersistReservations replaces the reservations table with the given collection.
func (s *Store) PersistReservations(ctx context.Context, reservations []booking.Reservation) error {
	records := persistence.ReservationRecords(reservations)
	rows := make([][]any, len(records))
	for i, rec := range records {
		rows[i] = []any{
			rec.ID, rec.Block, rec.RoomID, rec.RoomType, rec.StartDate, rec.EndDate, rec.DayOfWeek,
			rec.StartTime, rec.EndTime, rec.RequesterID, rec.RequesterName, rec.Subject, rec.BookedOn,
		}
	}
	return s.replace(ctx, "reservations", reservationColumns, rows)
}

func (s *Store) replace(ctx context.Context, table string, columns []string, rows [][]any) error {
	err := WithRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			query, args, err := s.psql.Delete(table).ToSql()
			if err != nil {
				return fmt.Errorf("build delete %s query failed: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("clear %s failed: %w", table, err)
			}

			for start := 0; start < len(rows); start += insertBatchSize {
				end := min(start+insertBatchSize, len(rows))
				insert := s.psql.Insert(table).Columns(append([]string{"position"}, columns...)...)
				for i := start; i < end; i++ {
					insert = insert.Values(append([]any{i}, rows[i]...)...)
				}
				query, args, err := insert.ToSql()
				if err != nil {
					return fmt.Errorf("build insert %s query failed: %w", table, err)
				}
				if _, err := tx.ExecContext(ctx, query, args...); err != nil {
					return fmt.Errorf("insert %s failed: %w", table, err)
				}
			}
			return nil
		})
	})
	return s.mapper.MapError(err)
}

var (
	_ persistence.Adapter = (*Store)(nil)
	_ persistence.Closer  = (*Store)(nil)
)
