package library

import (
	"fmt"
	"time"
)

// User is a library member.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// FullName is "<first> <last>".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) String() string {
	return fmt.Sprintf("User{%d %s <%s>}", u.ID, u.FullName(), u.Email)
}

// Book is a catalog entry. BorrowerID is 0 while the book is on the shelf.
type Book struct {
	ISBN       string
	Title      string
	Author     string
	BorrowerID int
	DueAt      time.Time
}

// OnLoan reports whether the book is lent out.
func (b Book) OnLoan() bool {
	return b.BorrowerID != 0
}

func (b Book) String() string {
	if b.OnLoan() {
		return fmt.Sprintf("Book{%s %q lent to %d}", b.ISBN, b.Title, b.BorrowerID)
	}
	return fmt.Sprintf("Book{%s %q}", b.ISBN, b.Title)
}
