package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by repositories so services never inspect
// driver-specific error types.
var (
	// ErrNotFound signals the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTicketID signals a unique-constraint violation on the
	// grievance ticket ID; the allocator retries on it.
	ErrDuplicateTicketID = errors.New("duplicate ticket id")
	// ErrDuplicateEmail signals a unique-constraint violation on a staff
	// email address.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrForeignKeyInUse signals the row is referenced by other records and
	// cannot be deleted.
	ErrForeignKeyInUse = errors.New("record in use by other records")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// nullableID maps the zero ID to SQL NULL for optional foreign keys.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// deleteByID removes a reference-data row by primary key with uniform
// foreign-key-violation mapping. The table name is always a compile-time
// constant supplied by the owning repository.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKeyInUse
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
