package library

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/mariadb"
	"github.com/aalemi-dev/logproxy/postgres"
)

// userRecord is the row shape of a User.
type userRecord struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (userRecord) TableName() string { return "library_users" }

func newUserRecord(u User) userRecord {
	return userRecord{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (r userRecord) user() User {
	return User{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, CreatedAt: r.CreatedAt}
}

// sqlStore is the part of a gorm-backed client the repository uses.
// postgresStore and mariadbStore adapt the two clients to it.
type sqlStore interface {
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error
	AutoMigrate(ctx context.Context, models ...interface{}) error
	TranslateError(err error) error

	transaction(ctx context.Context, fn func(tx sqlStore) error) error
	// notFound reports whether a translated error means no matching row.
	notFound(err error) bool
}

type postgresStore struct{ postgres.Client }

func (s postgresStore) transaction(ctx context.Context, fn func(tx sqlStore) error) error {
	return s.Transaction(ctx, func(tx postgres.Client) error {
		return fn(postgresStore{tx})
	})
}

func (postgresStore) notFound(err error) bool { return errors.Is(err, postgres.ErrRecordNotFound) }

type mariadbStore struct{ mariadb.Client }

func (s mariadbStore) transaction(ctx context.Context, fn func(tx sqlStore) error) error {
	return s.Transaction(ctx, func(tx mariadb.Client) error {
		return fn(mariadbStore{tx})
	})
}

func (mariadbStore) notFound(err error) bool { return errors.Is(err, mariadb.ErrRecordNotFound) }

// SQLUserRepository stores users in the library_users table of PostgreSQL
// or MariaDB.
type SQLUserRepository struct {
	db  sqlStore
	log logger.Logger
}

// NewPostgresUserRepository migrates the users table and seeds it with the
// default members when it is empty.
func NewPostgresUserRepository(ctx context.Context, db postgres.Client, log logger.Logger) (*SQLUserRepository, error) {
	return newSQLUserRepository(ctx, postgresStore{db}, log)
}

// NewMariaDBUserRepository is NewPostgresUserRepository for MariaDB/MySQL.
func NewMariaDBUserRepository(ctx context.Context, db mariadb.Client, log logger.Logger) (*SQLUserRepository, error) {
	return newSQLUserRepository(ctx, mariadbStore{db}, log)
}

func newSQLUserRepository(ctx context.Context, db sqlStore, log logger.Logger) (*SQLUserRepository, error) {
	r := &SQLUserRepository{db: db, log: log}
	if err := db.AutoMigrate(ctx, &userRecord{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", db.TranslateError(err))
	}
	if err := r.seed(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLUserRepository) seed(ctx context.Context) error {
	return r.db.transaction(ctx, func(tx sqlStore) error {
		var count int64
		if err := tx.Count(ctx, &userRecord{}, &count); err != nil {
			return fmt.Errorf("count users: %w", tx.TranslateError(err))
		}
		if count > 0 {
			return nil
		}
		seeded := 0
		for _, u := range seedUsers(time.Now()) {
			rec := newUserRecord(u)
			if err := tx.Create(ctx, &rec); err != nil {
				return fmt.Errorf("seed users: %w", tx.TranslateError(err))
			}
			seeded++
		}
		r.log.Info("User repository seeded", nil, map[string]interface{}{"count": seeded})
		return nil
	})
}

// All returns every user ordered by id.
func (r *SQLUserRepository) All(ctx context.Context) ([]User, error) {
	var rows []userRecord
	if err := r.db.Find(ctx, &rows); err != nil {
		return nil, r.db.TranslateError(err)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.user())
	}
	return users, nil
}

// ByID returns ErrUserNotFound for unknown ids.
func (r *SQLUserRepository) ByID(ctx context.Context, id int) (User, error) {
	var row userRecord
	if err := r.db.First(ctx, &row, id); err != nil {
		if err = r.db.TranslateError(err); r.db.notFound(err) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return row.user(), nil
}

// Add inserts u; the database assigns the id.
func (r *SQLUserRepository) Add(ctx context.Context, u User) (User, error) {
	row := newUserRecord(u)
	row.ID = 0
	row.CreatedAt = time.Now()
	if err := r.db.Create(ctx, &row); err != nil {
		return User{}, r.db.TranslateError(err)
	}
	return row.user(), nil
}

// Update replaces names and email of an existing user. It reports false
// when no user has u.ID.
func (r *SQLUserRepository) Update(ctx context.Context, u User) (bool, error) {
	n, err := r.db.Update(ctx, &userRecord{ID: u.ID}, map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	})
	if err != nil {
		return false, r.db.TranslateError(err)
	}
	if n == 0 {
		// MySQL does not count rows whose values did not change.
		if _, err := r.ByID(ctx, u.ID); err == nil {
			return true, nil
		} else if !errors.Is(err, ErrUserNotFound) {
			return false, err
		}
		r.log.WarnWithContext(ctx, "Update of unknown user", nil, map[string]interface{}{"user_id": u.ID})
		return false, nil
	}
	return true, nil
}

// Delete reports false when no user has id.
func (r *SQLUserRepository) Delete(ctx context.Context, id int) (bool, error) {
	n, err := r.db.Delete(ctx, &userRecord{}, id)
	if err != nil {
		return false, r.db.TranslateError(err)
	}
	return n > 0, nil
}

var _ UserRepository = (*SQLUserRepository)(nil)
