package library_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/logproxy/intercept"
	"github.com/aalemi-dev/logproxy/internal/library"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/metrics"
	"github.com/aalemi-dev/logproxy/observability"
)

type deps struct {
	fx.In

	Users    library.UserService
	Catalogs intercept.Factory[library.BookCatalog]
	Metrics  *metrics.Metrics
}

func newApp(t *testing.T) (deps, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core), false)

	var d deps
	app := fxtest.New(t,
		fx.Provide(func() logger.Logger { return log }),
		fx.Supply(metrics.Config{ServiceName: "library-test", Address: metrics.Ptr("")}),
		metrics.FXModule,
		observability.FXModule,
		library.FXModule,
		fx.Populate(&d),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)
	return d, logs
}

func TestListUsersIsLoggedWithItsMessage(t *testing.T) {
	t.Parallel()
	d, logs := newApp(t)

	users, err := d.Users.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)

	entries := logs.FilterLoggerName("library.DefaultUserService").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, intercept.MessageStarted, entries[0].Message)
	assert.Equal(t, "retrieving users", entries[0].ContextMap()["message"])
	assert.Equal(t, "DefaultUserService", entries[0].ContextMap()["class"])
	assert.Equal(t, intercept.MessageCompleted, entries[1].Message)
	assert.Contains(t, entries[1].ContextMap()["result"], "Jean Dupont")
}

func TestUnmarkedOperationsAreNotLogged(t *testing.T) {
	t.Parallel()
	d, logs := newApp(t)

	u, err := d.Users.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Jean", u.FirstName)
	assert.True(t, d.Users.ValidateEmail("a@b.co"))

	assert.Zero(t, logs.FilterLoggerName("library.DefaultUserService").Len())
}

func TestCreateUserFailureIsLoggedAndReturned(t *testing.T) {
	t.Parallel()
	d, logs := newApp(t)

	_, err := d.Users.CreateUser(context.Background(), "Ada", "Lovelace", "nope")
	require.ErrorIs(t, err, library.ErrInvalidEmail)

	failed := logs.FilterMessage(intercept.MessageFailed).AllUntimed()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, err.Error(), failed[0].ContextMap()["error"])
	assert.Equal(t, "CreateUser", failed[0].ContextMap()["method"])

	started := logs.FilterMessage(intercept.MessageStarted).AllUntimed()
	require.Len(t, started, 1)
	assert.Equal(t, "context.Background, Ada, Lovelace, nope", started[0].ContextMap()["args"])
}

func TestUpdateUserRendersNilAsNull(t *testing.T) {
	t.Parallel()
	d, logs := newApp(t)

	_, err := d.Users.UpdateUser(context.Background(), nil)
	require.ErrorIs(t, err, library.ErrNilUser)

	started := logs.FilterMessage(intercept.MessageStarted).AllUntimed()
	require.Len(t, started, 1)
	assert.Equal(t, "context.Background, null", started[0].ContextMap()["args"])
}

func TestBookCatalogIsTransient(t *testing.T) {
	t.Parallel()
	d, logs := newApp(t)
	ctx := context.Background()

	first, err := d.Catalogs()
	require.NoError(t, err)
	second, err := d.Catalogs()
	require.NoError(t, err)
	assert.NotEqual(t, first.Session(), second.Session())

	book, err := first.Lend(ctx, "978-0134190440", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, book.BorrowerID)

	_, err = second.Lend(ctx, "978-0134190440", 3)
	assert.ErrorIs(t, err, library.ErrBookOnLoan)
	require.NoError(t, second.Return(ctx, "978-0134190440"))

	entries := logs.FilterLoggerName("library.ShelfCatalog").AllUntimed()
	require.Len(t, entries, 6)
	assert.Equal(t, "lending a book", entries[0].ContextMap()["message"])
	assert.Equal(t, "returning a book", entries[4].ContextMap()["message"])
	assert.Equal(t, "void", entries[5].ContextMap()["result"])
}

func TestInvocationsAreCounted(t *testing.T) {
	t.Parallel()
	d, _ := newApp(t)
	ctx := context.Background()

	_, _ = d.Users.ListUsers(ctx)
	_, _ = d.Users.ListUsers(ctx)
	_, _ = d.Users.CreateUser(ctx, "", "x", "x@y.z")
	_, _ = d.Users.GetUser(ctx, 1)

	n, err := testutil.GatherAndCount(d.Metrics.Registry, metrics.InvocationsTotalName)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per operation and outcome")

	n, err = testutil.GatherAndCount(d.Metrics.Registry, metrics.InvocationDurationName)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
