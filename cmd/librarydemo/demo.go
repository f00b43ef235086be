package main

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/intercept"
	"github.com/aalemi-dev/logproxy/internal/library"
	"github.com/aalemi-dev/logproxy/logger"
)

type demo struct {
	fx.In

	Users    library.UserService
	Catalogs intercept.Factory[library.BookCatalog]
	Log      logger.Logger
}

// Run exercises every instrumented operation once, including the failing
// paths, so the log shows each entry kind.
func (d demo) Run(ctx context.Context) error {
	users, err := d.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	created, err := d.Users.CreateUser(ctx, "Ada", "Lovelace", "Ada@Example.com")
	if err != nil {
		return err
	}

	if _, err := d.Users.CreateUser(ctx, "Bad", "Email", "not-an-email"); !errors.Is(err, library.ErrInvalidEmail) {
		return errors.Join(errors.New("expected invalid email"), err)
	}

	created.LastName = "King"
	if _, err := d.Users.UpdateUser(ctx, &created); err != nil {
		return err
	}

	catalog, err := d.Catalogs()
	if err != nil {
		return err
	}
	available := catalog.Available(ctx)
	if len(available) == 0 {
		return errors.New("catalog is empty")
	}
	book, err := catalog.Lend(ctx, available[0].ISBN, created.ID)
	if err != nil {
		return err
	}

	// A second session sees the loan made by the first.
	other, err := d.Catalogs()
	if err != nil {
		return err
	}
	if _, err := other.Lend(ctx, book.ISBN, users[0].ID); !errors.Is(err, library.ErrBookOnLoan) {
		return errors.Join(errors.New("expected book on loan"), err)
	}
	if err := other.Return(ctx, book.ISBN); err != nil {
		return err
	}

	if _, err := d.Users.DeleteUser(ctx, created.ID); err != nil {
		return err
	}

	d.Log.InfoWithContext(ctx, "Demo finished", nil, map[string]interface{}{
		"users":      len(users),
		"lent_isbn":  book.ISBN,
		"created_id": created.ID,
	})
	return nil
}
