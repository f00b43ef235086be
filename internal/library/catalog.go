package library

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

//go:generate go run github.com/aalemi-dev/logproxy/cmd/interceptgen -type BookCatalog

// DefaultLoanPeriod is how long a lent book may be kept.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// BookCatalog lends and takes back books. Each resolution from the
// container is a new catalog session over the shared Shelf.
type BookCatalog interface {
	//intercept:log "lending a book"
	Lend(ctx context.Context, isbn string, memberID int) (Book, error)

	//intercept:log "returning a book"
	Return(ctx context.Context, isbn string) error

	Available(ctx context.Context) []Book

	// Session identifies the catalog instance.
	Session() int64
}

// Shelf holds every book of the library.
type Shelf struct {
	mu    sync.Mutex
	books map[string]*Book
}

// NewShelf returns a shelf stocked with a few books.
func NewShelf() *Shelf {
	s := &Shelf{books: make(map[string]*Book)}
	for _, b := range []Book{
		{ISBN: "978-0134190440", Title: "The Go Programming Language", Author: "Donovan, Kernighan"},
		{ISBN: "978-1617291784", Title: "Go in Action", Author: "Kennedy, Ketelsen, St. Martin"},
		{ISBN: "978-0201633610", Title: "Design Patterns", Author: "Gamma, Helm, Johnson, Vlissides"},
	} {
		s.books[b.ISBN] = &b
	}
	return s
}

// ShelfCatalog is the BookCatalog implementation.
type ShelfCatalog struct {
	shelf   *Shelf
	users   UserRepository
	session int64
	now     func() time.Time
}

var sessions struct {
	sync.Mutex
	next int64
}

// NewBookCatalog opens a catalog session on shelf. Borrowers are checked
// against users.
func NewBookCatalog(shelf *Shelf, users UserRepository) *ShelfCatalog {
	sessions.Lock()
	sessions.next++
	id := sessions.next
	sessions.Unlock()

	return &ShelfCatalog{shelf: shelf, users: users, session: id, now: time.Now}
}

// Lend marks the book as lent to memberID for DefaultLoanPeriod.
func (c *ShelfCatalog) Lend(ctx context.Context, isbn string, memberID int) (Book, error) {
	if _, err := c.users.ByID(ctx, memberID); err != nil {
		return Book{}, fmt.Errorf("lend %s to %d: %w", isbn, memberID, err)
	}

	c.shelf.mu.Lock()
	defer c.shelf.mu.Unlock()

	b, ok := c.shelf.books[isbn]
	if !ok {
		return Book{}, fmt.Errorf("lend %s: %w", isbn, ErrBookNotFound)
	}
	if b.OnLoan() {
		return Book{}, fmt.Errorf("lend %s: %w", isbn, ErrBookOnLoan)
	}
	b.BorrowerID = memberID
	b.DueAt = c.now().Add(DefaultLoanPeriod)
	return *b, nil
}

// Return puts a lent book back on the shelf.
func (c *ShelfCatalog) Return(ctx context.Context, isbn string) error {
	c.shelf.mu.Lock()
	defer c.shelf.mu.Unlock()

	b, ok := c.shelf.books[isbn]
	if !ok {
		return fmt.Errorf("return %s: %w", isbn, ErrBookNotFound)
	}
	if !b.OnLoan() {
		return fmt.Errorf("return %s: %w", isbn, ErrBookNotLent)
	}
	b.BorrowerID = 0
	b.DueAt = time.Time{}
	return nil
}

// Available lists the books on the shelf ordered by ISBN.
func (c *ShelfCatalog) Available(ctx context.Context) []Book {
	c.shelf.mu.Lock()
	defer c.shelf.mu.Unlock()

	var books []Book
	for _, b := range c.shelf.books {
		if !b.OnLoan() {
			books = append(books, *b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ISBN < books[j].ISBN })
	return books
}

func (c *ShelfCatalog) Session() int64 {
	return c.session
}
