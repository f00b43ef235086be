package mariadb

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
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

	ErrTransactionFailed = errors.New("transaction failed")
	ErrDeadlock          = errors.New("deadlock detected")
	ErrLockTimeout       = errors.New("lock acquisition timeout")

	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrDatabaseNotFound = errors.New("database not found")

	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrSystemError          = errors.New("system error")
)

// TranslateError converts GORM and MySQL driver errors into the package
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
	case errors.Is(err, mysql.ErrInvalidConn):
		return ErrConnectionLost
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return translateMySQLError(myErr)
	}

	return translateByErrorMessage(strings.ToLower(err.Error()), err)
}

// TranslateError implements Client.
func (m *MariaDB) TranslateError(err error) error {
	return TranslateError(err)
}

// translateMySQLError maps server and client error numbers shared by MySQL
// and MariaDB.
func translateMySQLError(myErr *mysql.MySQLError) error {
	switch myErr.Number {
	case 1062, 1586: // ER_DUP_ENTRY, ER_DUP_ENTRY_WITH_KEY_NAME
		return ErrDuplicateKey
	case 1216, 1217, 1451, 1452: // ER_NO_REFERENCED_ROW(_2), ER_ROW_IS_REFERENCED(_2)
		return ErrForeignKey
	case 1048, 1364: // ER_BAD_NULL_ERROR, ER_NO_DEFAULT_FOR_FIELD
		return ErrNotNullViolation
	case 3819, 4025: // ER_CHECK_CONSTRAINT_VIOLATED on MySQL and MariaDB
		return ErrCheckConstraintViolation
	case 1690: // ER_DATA_OUT_OF_RANGE
		return ErrConstraintViolation
	case 1406: // ER_DATA_TOO_LONG
		return ErrDataTooLong
	case 1366, 1292: // ER_TRUNCATED_WRONG_VALUE_FOR_FIELD, ER_TRUNCATED_WRONG_VALUE
		return ErrInvalidData
	case 1051, 1146: // ER_BAD_TABLE_ERROR, ER_NO_SUCH_TABLE
		return ErrTableNotFound
	case 1054: // ER_BAD_FIELD_ERROR
		return ErrColumnNotFound
	case 1064, 1065, 1149: // ER_PARSE_ERROR, ER_EMPTY_QUERY, ER_SYNTAX_ERROR
		return ErrInvalidQuery
	case 1044, 1142, 1143, 1227: // access denied on db, table, column, privilege
		return ErrPermissionDenied
	case 1045: // ER_ACCESS_DENIED_ERROR
		return ErrInvalidPassword
	case 1049: // ER_BAD_DB_ERROR
		return ErrDatabaseNotFound
	case 1205: // ER_LOCK_WAIT_TIMEOUT
		return ErrLockTimeout
	case 1213: // ER_LOCK_DEADLOCK
		return ErrDeadlock
	case 1568, 1792: // commit in stored function, write in read-only transaction
		return ErrTransactionFailed
	case 1969, 3024: // ER_STATEMENT_TIMEOUT (MariaDB), ER_QUERY_TIMEOUT (MySQL)
		return ErrQueryTimeout
	case 1040: // ER_CON_COUNT_ERROR
		return ErrTooManyConnections
	case 2002, 2003: // CR_CONNECTION_ERROR, CR_CONN_HOST_ERROR
		return ErrConnectionFailed
	case 1158, 1159, 1160, 1161, 2006, 2013, 2055: // network read/write errors, server gone
		return ErrConnectionLost
	case 1235: // ER_NOT_SUPPORTED_YET
		return ErrUnsupportedOperation
	case 1021, 1030, 1037, 1038: // disk full, storage engine error, out of memory
		return ErrSystemError
	}
	return myErr
}

// translateByErrorMessage catches driver errors that carry no error number,
// such as dial failures.
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	case strings.Contains(errMsg, "connection refused"),
		strings.Contains(errMsg, "no such host"),
		strings.Contains(errMsg, "failed to connect"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "broken pipe"),
		strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "bad connection"):
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
func (m *MariaDB) IsRetryable(err error) bool {
	return IsRetryable(err)
}
