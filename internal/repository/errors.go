package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	appErr "github.com/techstock/inventory/pkg/errors"
)

// Postgres SQLSTATE classes surfaced to callers as conflicts.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver-level failures onto stable application error codes.
// Raw driver detail stays wrapped for server-side logging and never becomes
// the user-facing message.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return appErr.Wrap(err, appErr.CodeNotFound, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return appErr.Wrap(err, appErr.CodeDeadline, msg)
	case errors.Is(err, context.Canceled):
		return appErr.Wrap(err, appErr.CodeUnavailable, msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return appErr.Wrap(err, appErr.CodeAlreadyExists, msg)
		case pgForeignKeyViolation:
			return appErr.Wrap(err, appErr.CodeConflict, msg)
		}
	}
	return appErr.Wrap(err, appErr.CodeInternal, msg)
}
