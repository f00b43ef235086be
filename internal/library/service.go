package library

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

//go:generate go run github.com/aalemi-dev/logproxy/cmd/interceptgen -type UserService

// UserService is the member management capability.
type UserService interface {
	//intercept:log "retrieving users"
	ListUsers(ctx context.Context) ([]User, error)

	GetUser(ctx context.Context, id int) (User, error)

	//intercept:log "creating user"
	CreateUser(ctx context.Context, firstName, lastName, email string) (User, error)

	//intercept:log
	UpdateUser(ctx context.Context, u *User) (bool, error)

	//intercept:log
	DeleteUser(ctx context.Context, id int) (bool, error)

	ValidateEmail(email string) bool
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// DefaultUserService validates input and delegates storage to a
// UserRepository.
type DefaultUserService struct {
	repo UserRepository
}

// NewUserService returns a DefaultUserService over repo.
func NewUserService(repo UserRepository) *DefaultUserService {
	return &DefaultUserService{repo: repo}
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.All(ctx)
}

func (s *DefaultUserService) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.ByID(ctx, id)
}

// CreateUser normalizes and validates the input, then stores the user.
func (s *DefaultUserService) CreateUser(ctx context.Context, firstName, lastName, email string) (User, error) {
	u, err := s.normalize(User{FirstName: firstName, LastName: lastName, Email: email})
	if err != nil {
		return User{}, err
	}
	return s.repo.Add(ctx, u)
}

// UpdateUser applies the same normalization and checks as CreateUser. The
// caller's value is not modified.
func (s *DefaultUserService) UpdateUser(ctx context.Context, u *User) (bool, error) {
	if u == nil {
		return false, ErrNilUser
	}
	normalized, err := s.normalize(*u)
	if err != nil {
		return false, err
	}
	return s.repo.Update(ctx, normalized)
}

// normalize trims the names, lowercases the email and rejects blank names
// or a malformed email.
func (s *DefaultUserService) normalize(u User) (User, error) {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	switch {
	case u.FirstName == "":
		return User{}, ErrFirstNameRequired
	case u.LastName == "":
		return User{}, ErrLastNameRequired
	case !s.ValidateEmail(u.Email):
		return User{}, fmt.Errorf("%w: %q", ErrInvalidEmail, u.Email)
	}
	return u, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// ValidateEmail checks email has the shape local@domain.tld.
func (s *DefaultUserService) ValidateEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}
