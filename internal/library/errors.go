package library

import "errors"

var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrInvalidEmail      = errors.New("email is not valid")
	ErrUserNotFound      = errors.New("user not found")
	ErrNilUser           = errors.New("user is nil")

	ErrBookNotFound = errors.New("book not found")
	ErrBookOnLoan   = errors.New("book is already on loan")
	ErrBookNotLent  = errors.New("book is not on loan")

	ErrUnknownStorage = errors.New("unknown user storage")
)
