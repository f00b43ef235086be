package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShelfCatalog_LendAndReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newTestRepository()
	catalog := NewBookCatalog(NewShelf(), repo)
	fixed := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return fixed }

	require.Len(t, catalog.Available(ctx), 3)

	b, err := catalog.Lend(ctx, "978-0134190440", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b.BorrowerID)
	assert.Equal(t, fixed.Add(DefaultLoanPeriod), b.DueAt)
	assert.Len(t, catalog.Available(ctx), 2)

	_, err = catalog.Lend(ctx, "978-0134190440", 2)
	assert.ErrorIs(t, err, ErrBookOnLoan)

	_, err = catalog.Lend(ctx, "000", 2)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = catalog.Lend(ctx, "978-1617291784", 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, catalog.Return(ctx, "978-0134190440"))
	assert.ErrorIs(t, catalog.Return(ctx, "978-0134190440"), ErrBookNotLent)
	assert.ErrorIs(t, catalog.Return(ctx, "000"), ErrBookNotFound)

	available := catalog.Available(ctx)
	require.Len(t, available, 3)
	assert.Equal(t, "978-0134190440", available[0].ISBN)
}

func TestShelfCatalog_SessionsShareShelf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newTestRepository()
	shelf := NewShelf()

	first := NewBookCatalog(shelf, repo)
	second := NewBookCatalog(shelf, repo)
	assert.NotEqual(t, first.Session(), second.Session())

	_, err := first.Lend(ctx, "978-0201633610", 3)
	require.NoError(t, err)
	_, err = second.Lend(ctx, "978-0201633610", 1)
	assert.ErrorIs(t, err, ErrBookOnLoan)
}

func TestBook_String(t *testing.T) {
	t.Parallel()
	b := Book{ISBN: "1", Title: "Go"}
	assert.Equal(t, `Book{1 "Go"}`, b.String())
	b.BorrowerID = 7
	assert.Equal(t, `Book{1 "Go" lent to 7}`, b.String())
	assert.Equal(t, "User{1 Jean Dupont <j@d.fr>}", User{ID: 1, FirstName: "Jean", LastName: "Dupont", Email: "j@d.fr"}.String())
}
