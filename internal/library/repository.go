package library

import (
	"context"
	"sync"
	"time"

	"github.com/aalemi-dev/logproxy/logger"
)

// UserRepository stores users.
type UserRepository interface {
	All(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id int) (User, error)
	Add(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// MemoryUserRepository is an in-memory UserRepository seeded with three
// members.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
	log    logger.Logger
	now    func() time.Time
}

// NewUserRepository returns a seeded repository.
func NewUserRepository(log logger.Logger) *MemoryUserRepository {
	r := &MemoryUserRepository{
		nextID: 1,
		log:    log,
		now:    time.Now,
	}
	r.seed()
	return r
}

// seedUsers are the members every fresh repository starts with.
func seedUsers(now time.Time) []User {
	return []User{
		{FirstName: "Jean", LastName: "Dupont", Email: "jean.dupont@example.com", CreatedAt: now.AddDate(0, 0, -30)},
		{FirstName: "Marie", LastName: "Martin", Email: "marie.martin@example.com", CreatedAt: now.AddDate(0, 0, -20)},
		{FirstName: "Pierre", LastName: "Durand", Email: "pierre.durand@example.com", CreatedAt: now.AddDate(0, 0, -10)},
	}
}

func (r *MemoryUserRepository) seed() {
	for _, u := range seedUsers(r.now()) {
		u.ID = r.nextID
		r.nextID++
		r.users = append(r.users, u)
	}
	r.log.Info("User repository seeded", nil, map[string]interface{}{"count": len(r.users)})
}

// All returns a copy of every stored user.
func (r *MemoryUserRepository) All(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]User(nil), r.users...), nil
}

// ByID returns ErrUserNotFound for unknown ids.
func (r *MemoryUserRepository) ByID(ctx context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.users[i], nil
	}
	return User{}, ErrUserNotFound
}

// Add assigns the next id and the creation time.
func (r *MemoryUserRepository) Add(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = r.now()
	r.users = append(r.users, u)
	return u, nil
}

// Update replaces names and email of an existing user. It reports false
// when no user has u.ID.
func (r *MemoryUserRepository) Update(ctx context.Context, u User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(u.ID)
	if i < 0 {
		r.log.WarnWithContext(ctx, "Update of unknown user", nil, map[string]interface{}{"user_id": u.ID})
		return false, nil
	}
	r.users[i].FirstName = u.FirstName
	r.users[i].LastName = u.LastName
	r.users[i].Email = u.Email
	return true, nil
}

// Delete reports false when no user has id.
func (r *MemoryUserRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return false, nil
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return true, nil
}

func (r *MemoryUserRepository) index(id int) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
