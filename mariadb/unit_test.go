package mariadb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aalemi-dev/logproxy/logger"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func (widget) TableName() string { return "widgets" }

// newDryRunMariaDB returns a client whose statements are built but never
// sent. Skipping the version query keeps Open from dialing.
func newDryRunMariaDB(t *testing.T) (*MariaDB, *observer.ObservedLogs) {
	t.Helper()
	dsn, err := Connection{Host: "127.0.0.1", Port: "1", DbName: "library"}.DSN()
	require.NoError(t, err)

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	m := &MariaDB{
		cfg:             Config{Connection: Connection{DbName: "library"}},
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	m.client.Store(db)
	m.WithLogger(logger.NewFromZap(zap.New(core), false))
	t.Cleanup(func() { _ = m.GracefulShutdown() })
	return m, logs
}

// ── configuration ────────────────────────────────────────────────────────────

func TestConnection_DSN(t *testing.T) {
	t.Parallel()

	c := Connection{Host: "db", Port: "3306", User: "u", Password: "p", DbName: "library"}
	dsn, err := c.DSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "u", parsed.User)
	assert.Equal(t, "p", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "library", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, DefaultConnectTimeout, parsed.Timeout)

	c.Charset = "latin1"
	c.Loc = "Europe/Berlin"
	c.Timeout = 2 * time.Second
	c.ReadTimeout = 3 * time.Second
	dsn, err = c.DSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "charset=latin1")

	parsed, err = mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", parsed.Loc.String())
	assert.Equal(t, 2*time.Second, parsed.Timeout)
	assert.Equal(t, 3*time.Second, parsed.ReadTimeout)
}

func TestConnection_DSNInvalidLoc(t *testing.T) {
	t.Parallel()

	_, err := Connection{Host: "db", Port: "3306", Loc: "Nowhere/Atlantis"}.DSN()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid loc "Nowhere/Atlantis"`)

	_, err = NewMariaDB(Config{Connection: Connection{Host: "db", Port: "3306", Loc: "Nowhere/Atlantis"}})
	assert.Error(t, err)
}

func TestConnectionDetails_Defaults(t *testing.T) {
	t.Parallel()

	d := ConnectionDetails{}.withDefaults()
	assert.Equal(t, DefaultMaxOpenConns, d.MaxOpenConns)
	assert.Equal(t, DefaultMaxIdleConns, d.MaxIdleConns)
	assert.Equal(t, DefaultConnMaxLifetime, d.ConnMaxLifetime)
	assert.Equal(t, DefaultHealthCheckInterval, d.HealthCheckInterval)

	d = ConnectionDetails{MaxIdleConns: 2, ConnMaxLifetime: time.Hour}.withDefaults()
	assert.Equal(t, 2, d.MaxIdleConns)
	assert.Equal(t, time.Hour, d.ConnMaxLifetime)
}

func TestNewMariaDB_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := NewMariaDB(Config{Connection: Connection{
		Host:    "127.0.0.1",
		Port:    "1",
		User:    "nobody",
		DbName:  "library",
		Timeout: time.Second,
	}})
	require.Error(t, err)
	assert.ErrorIs(t, TranslateError(err), ErrConnectionFailed)
	assert.True(t, IsRetryable(err))
}

// ── error translation ────────────────────────────────────────────────────────

func TestTranslateError_MySQLNumbers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number uint16
		want   error
	}{
		{1062, ErrDuplicateKey},
		{1586, ErrDuplicateKey},
		{1452, ErrForeignKey},
		{1451, ErrForeignKey},
		{1048, ErrNotNullViolation},
		{1364, ErrNotNullViolation},
		{3819, ErrCheckConstraintViolation},
		{4025, ErrCheckConstraintViolation},
		{1690, ErrConstraintViolation},
		{1406, ErrDataTooLong},
		{1366, ErrInvalidData},
		{1146, ErrTableNotFound},
		{1054, ErrColumnNotFound},
		{1064, ErrInvalidQuery},
		{1142, ErrPermissionDenied},
		{1045, ErrInvalidPassword},
		{1049, ErrDatabaseNotFound},
		{1205, ErrLockTimeout},
		{1213, ErrDeadlock},
		{1792, ErrTransactionFailed},
		{1969, ErrQueryTimeout},
		{1040, ErrTooManyConnections},
		{2003, ErrConnectionFailed},
		{2006, ErrConnectionLost},
		{1235, ErrUnsupportedOperation},
		{1021, ErrSystemError},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.number), func(t *testing.T) {
			t.Parallel()
			err := fmt.Errorf("insert failed: %w", &mysql.MySQLError{Number: tc.number})
			assert.ErrorIs(t, TranslateError(err), tc.want)
		})
	}
}

func TestTranslateError_UnknownNumberUnchanged(t *testing.T) {
	t.Parallel()

	myErr := &mysql.MySQLError{Number: 1644, Message: "signal"}
	assert.Same(t, myErr, TranslateError(myErr))
}

func TestTranslateError_Gorm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   error
		want error
	}{
		{gorm.ErrRecordNotFound, ErrRecordNotFound},
		{gorm.ErrDuplicatedKey, ErrDuplicateKey},
		{gorm.ErrForeignKeyViolated, ErrForeignKey},
		{gorm.ErrInvalidTransaction, ErrTransactionFailed},
		{gorm.ErrMissingWhereClause, ErrInvalidQuery},
		{gorm.ErrInvalidField, ErrColumnNotFound},
		{gorm.ErrEmptySlice, ErrInvalidData},
		{gorm.ErrUnsupportedRelation, ErrUnsupportedOperation},
		{mysql.ErrInvalidConn, ErrConnectionLost},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, TranslateError(fmt.Errorf("wrapped: %w", tc.in)), tc.want, tc.in.Error())
	}
}

func TestTranslateError_Messages(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(errors.New("dial tcp: connection refused")), ErrConnectionFailed)
	assert.ErrorIs(t, TranslateError(errors.New("driver: bad connection")), ErrConnectionLost)
	assert.ErrorIs(t, TranslateError(context.DeadlineExceeded), ErrQueryTimeout)

	other := errors.New("something else")
	assert.Same(t, other, TranslateError(other))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(&mysql.MySQLError{Number: 1213}))
	assert.True(t, IsRetryable(&mysql.MySQLError{Number: 1205}))
	assert.True(t, IsRetryable(ErrConnectionLost))
	assert.False(t, IsRetryable(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsRetryable(gorm.ErrRecordNotFound))
	assert.False(t, IsRetryable(nil))

	m := &MariaDB{}
	assert.Equal(t, ErrDuplicateKey, m.TranslateError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, m.IsRetryable(&mysql.MySQLError{Number: 1040}))
}

// ── operations ───────────────────────────────────────────────────────────────

func TestFind_LogsOperation(t *testing.T) {
	t.Parallel()
	m, logs := newDryRunMariaDB(t)

	var rows []widget
	require.NoError(t, m.Find(context.Background(), &rows, "name = ?", "gear"))

	entries := logs.FilterMessage("MariaDB operation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "find", fields["operation"])
	assert.Equal(t, "widgets", fields["table"])
}

func TestLogOperation_Failure(t *testing.T) {
	t.Parallel()
	m, logs := newDryRunMariaDB(t)

	m.logOperation(context.Background(), "create", &gorm.DB{Error: &mysql.MySQLError{Number: 1062}}, time.Now())
	m.logOperation(context.Background(), "first", &gorm.DB{Error: gorm.ErrRecordNotFound}, time.Now())

	failed := logs.FilterMessage("MariaDB operation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "library", failed[0].ContextMap()["table"])
	assert.Equal(t, 1, logs.FilterMessage("MariaDB operation").Len())
}

func TestTransaction_ClientIsBoundToTx(t *testing.T) {
	t.Parallel()
	m := &MariaDB{logger: logger.NewFromZap(nil, false)}

	txDB := &gorm.DB{}
	tx := m.cloneWithTx(txDB)
	assert.NotSame(t, m, tx)
	assert.Same(t, txDB, tx.DB())
	assert.Same(t, m.logger, tx.logger)
	assert.Nil(t, tx.shutdownSignal)
}

func TestGracefulShutdown_Idempotent(t *testing.T) {
	t.Parallel()
	m, _ := newDryRunMariaDB(t)

	require.NoError(t, m.GracefulShutdown())
	assert.NotPanics(t, func() { _ = m.GracefulShutdown() })

	var nilClient MariaDB
	assert.NoError(t, nilClient.GracefulShutdown())
}
