package library

import (
	"log/slog"
	"strings"
)

// BookCatalog stores books and adds catalog-specific queries.
type BookCatalog struct {
	*store[*Book]
}

// NewBookCatalog loads the catalog from books.json under dir.
func NewBookCatalog(dir string, log *slog.Logger) (*BookCatalog, error) {
	s, err := newStore[*Book](dir, "books.json", log)
	if err != nil {
		return nil, err
	}
	return &BookCatalog{store: s}, nil
}

// Search matches title, author full name, ISBN or category. Text fields
// match case-insensitively; ISBN is a plain substring match.
func (c *BookCatalog) Search(term string) []*Book {
	var out []*Book
	for _, b := range c.all() {
		if !b.Active {
			continue
		}
		if containsFold(b.Title, term) ||
			containsFold(b.Author.FullName(), term) ||
			strings.Contains(b.ISBN, term) ||
			containsFold(b.Category, term) {
			out = append(out, b)
		}
	}
	return out
}

// GetAvailable returns the active books currently on the shelf.
func (c *BookCatalog) GetAvailable() []*Book {
	var out []*Book
	for _, b := range c.all() {
		if b.Active && b.Status == BookAvailable {
			out = append(out, b)
		}
	}
	return out
}
