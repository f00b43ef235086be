package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Standardized database errors returned by TranslateError.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNotNullViolation is returned when trying to insert null into a not-null column
	ErrNotNullViolation = errors.New("not null constraint violation")

	// ErrCheckConstraintViolation is returned when a check constraint is violated
	ErrCheckConstraintViolation = errors.New("check constraint violation")

	// ErrConstraintViolation is returned for other constraint violations
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidData is returned when the data being saved is rejected
	ErrInvalidData = errors.New("invalid data")

	// ErrDataTooLong is returned when data exceeds column length limits
	ErrDataTooLong = errors.New("data too long for column")

	// ErrInvalidQuery is returned when the SQL is malformed
	ErrInvalidQuery = errors.New("invalid query")

	// ErrTableNotFound is returned when a table does not exist
	ErrTableNotFound = errors.New("table not found")

	// ErrColumnNotFound is returned when a column does not exist
	ErrColumnNotFound = errors.New("column not found")

	ErrConnectionFailed   = errors.New("database connection failed")
	ErrConnectionLost     = errors.New("connection lost")
	ErrTooManyConnections = errors.New("too many connections")
	ErrQueryTimeout       = errors.New("query timeout exceeded")

	ErrTransactionFailed    = errors.New("transaction failed")
	ErrSerializationFailure = errors.New("serialization failure")
	ErrDeadlock             = errors.New("deadlock detected")
	ErrLockTimeout          = errors.New("lock acquisition timeout")

	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrDatabaseNotFound = errors.New("database not found")

	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrSystemError          = errors.New("system error")
)

// TranslateError converts GORM and PostgreSQL errors into the package
// sentinels. Errors it does not recognize are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData), errors.Is(err, gorm.ErrModelValueRequired), errors.Is(err, gorm.ErrEmptySlice):
		return ErrInvalidData
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return ErrTransactionFailed
	case errors.Is(err, gorm.ErrMissingWhereClause):
		return ErrInvalidQuery
	case errors.Is(err, gorm.ErrInvalidField):
		return ErrColumnNotFound
	case errors.Is(err, gorm.ErrNotImplemented), errors.Is(err, gorm.ErrUnsupportedRelation):
		return ErrUnsupportedOperation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return translatePostgreSQLError(pgErr)
	}

	return translateByErrorMessage(strings.ToLower(err.Error()), err)
}

// TranslateError implements Client.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}

// translatePostgreSQLError maps SQLSTATE codes, falling back to the code
// class for codes without a dedicated sentinel.
func translatePostgreSQLError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case "23505": // unique_violation
		return ErrDuplicateKey
	case "23503": // foreign_key_violation
		return ErrForeignKey
	case "23502": // not_null_violation
		return ErrNotNullViolation
	case "23514": // check_violation
		return ErrCheckConstraintViolation
	case "22001": // string_data_right_truncation
		return ErrDataTooLong
	case "42P01": // undefined_table
		return ErrTableNotFound
	case "42703": // undefined_column
		return ErrColumnNotFound
	case "42501": // insufficient_privilege
		return ErrPermissionDenied
	case "40001": // serialization_failure
		return ErrSerializationFailure
	case "40P01": // deadlock_detected
		return ErrDeadlock
	case "55P03": // lock_not_available
		return ErrLockTimeout
	case "57014": // query_canceled
		return ErrQueryTimeout
	case "53300": // too_many_connections
		return ErrTooManyConnections
	case "28P01", "28000": // invalid_password, invalid_authorization_specification
		return ErrInvalidPassword
	case "3D000": // invalid_catalog_name
		return ErrDatabaseNotFound
	case "08003", "08006": // connection_does_not_exist, connection_failure
		return ErrConnectionLost
	case "0A000": // feature_not_supported
		return ErrUnsupportedOperation
	}

	if len(pgErr.Code) < 2 {
		return pgErr
	}
	switch pgErr.Code[:2] {
	case "08":
		return ErrConnectionFailed
	case "22":
		return ErrInvalidData
	case "23":
		return ErrConstraintViolation
	case "25", "2D", "3B", "40":
		return ErrTransactionFailed
	case "42":
		return ErrInvalidQuery
	case "53", "58", "XX":
		return ErrSystemError
	}
	return pgErr
}

// translateByErrorMessage catches driver errors that carry no SQLSTATE,
// such as dial failures.
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	case strings.Contains(errMsg, "connection refused"),
		strings.Contains(errMsg, "no such host"),
		strings.Contains(errMsg, "failed to connect"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "broken pipe"),
		strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "conn closed"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "timeout"), strings.Contains(errMsg, "deadline exceeded"):
		return ErrQueryTimeout
	}
	return originalErr
}

// IsRetryable reports whether err, raw or translated, may succeed when the
// operation is repeated.
func IsRetryable(err error) bool {
	err = TranslateError(err)
	for _, retryable := range []error{
		ErrConnectionFailed,
		ErrConnectionLost,
		ErrTooManyConnections,
		ErrQueryTimeout,
		ErrSerializationFailure,
		ErrDeadlock,
		ErrLockTimeout,
	} {
		if errors.Is(err, retryable) {
			return true
		}
	}
	return false
}

// IsRetryable implements Client.
func (p *Postgres) IsRetryable(err error) bool {
	return IsRetryable(err)
}
