package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassOther ErrorClass = iota
	ErrorClassConstraint
	ErrorClassConnection
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassConstraint:
		return "constraint"
	case ErrorClassConnection:
		return "connection"
	default:
		return "other"
	}
}

// ClassifyError buckets a driver error by its SQLSTATE. Both the lib/pq and
// pgx error types are understood since either driver may be configured.
func ClassifyError(err error) ErrorClass {
	code := sqlState(err)
	switch {
	case code == "":
		return ErrorClassOther
	case strings.HasPrefix(code, "23"):
		return ErrorClassConstraint
	case strings.HasPrefix(code, "08"), code == "57P01", code == "57P03":
		return ErrorClassConnection
	}
	return ErrorClassOther
}

func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotEditable   = errors.New("order is not in created status")
	ErrOrderFinished      = errors.New("order is finished")
	ErrUnexpectedRowCount = errors.New("unexpected affected row count")
	ErrInvalidOrderID     = errors.New("generated order id is not an integer")
	ErrProductNotFound    = errors.New("product not found")
)

// IsAbsent reports whether err is one of the outcomes an order operation
// signals as an absent result rather than a store failure.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderNotEditable) ||
		errors.Is(err, ErrOrderFinished) ||
		errors.Is(err, ErrUnexpectedRowCount) ||
		errors.Is(err, ErrInvalidOrderID)
}
