package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Postgres codes for undefined_table and invalid_schema_name.
const (
	codeUndefinedTable  = "42P01"
	codeInvalidSchema   = "3F000"
	codeUniqueViolation = "23505"
)

// IsSchemaMissing reports whether err means the tables have not been created yet.
func IsSchemaMissing(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedTable || pgErr.Code == codeInvalidSchema
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
