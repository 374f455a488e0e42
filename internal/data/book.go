// Package data provides the data model and database interaction logic
// for the book catalog service.
package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelro/bookcatalog/internal/validator"
)

// Genres lists every accepted value for the genre field.
var Genres = []string{"fiction", "non-fiction", "science", "history", "other"}

// Status values for the book lifecycle. A book starts as Present and can
// only ever move to Terminated; Terminated is absorbing, with no physical
// deletion and no way back.
const (
	StatusPresent    = "Present"
	StatusTerminated = "Terminated"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table. Status and timestamps
// are internal lifecycle state and are never serialized to clients.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	PublishedYear int        `json:"published_year"`
	Genre         string     `json:"genre"`
	Available     bool       `json:"available"`
	Status        string     `json:"-"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     *time.Time `json:"-"` // nil until the first update
}

// CreateBookInput holds the fields a client must supply when creating a
// new book. Available is a pointer so we can tell "false" apart from
// "not provided"; every other required field is caught by its range rule.
type CreateBookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	Genre         string `json:"genre"`
	Available     *bool  `json:"available"`
}

// UpdateBookInput holds the fields a client may supply when partially
// updating a book. Every field is a pointer so we can distinguish between
// "not provided" (nil) and "intentionally set". Only non-nil fields are
// validated and applied.
type UpdateBookInput struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Genre         *string `json:"genre"`
	Available     *bool   `json:"available"`
}

// IsEmpty reports whether the update carries no recognized fields at all.
// An empty update is a no-op for the caller to handle, not a validation
// failure.
func (in UpdateBookInput) IsEmpty() bool {
	return in.Title == nil && in.Author == nil && in.PublishedYear == nil &&
		in.Genre == nil && in.Available == nil
}

// ApplyTo copies every supplied field onto book, leaving absent fields
// untouched. This is a genuine partial update, not a full replace.
func (in UpdateBookInput) ApplyTo(book *Book) {
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.PublishedYear != nil {
		book.PublishedYear = *in.PublishedYear
	}
	if in.Genre != nil {
		book.Genre = *in.Genre
	}
	if in.Available != nil {
		book.Available = *in.Available
	}
}

// checkTitle applies the title rules: 1-255 characters, and not a string
// composed entirely of digits.
func checkTitle(v *validator.Validator, title string) {
	v.Check(len(title) >= 1 && len(title) <= 255, "title", "Title must be between 1 and 255 characters")
	v.Check(!validator.AllDigits(title), "title", "Title cannot be only numbers")
}

// checkAuthor applies the author rules: 3-255 characters, no digits anywhere.
func checkAuthor(v *validator.Validator, author string) {
	v.Check(len(author) >= 3 && len(author) <= 255, "author", "Author must be between 3 and 255 characters")
	v.Check(!validator.ContainsDigit(author), "author", "Author name cannot contain numbers")
}

// checkPublishedYear bounds the year between the printing press and the
// current calendar year, evaluated at validation time rather than fixed.
func checkPublishedYear(v *validator.Validator, year int) {
	currentYear := time.Now().Year()
	v.Check(year >= 1450 && year <= currentYear, "published_year",
		fmt.Sprintf("Published year must be between 1450 and %d", currentYear))
}

// checkGenre requires one of the five enumerated genre values, exactly.
func checkGenre(v *validator.Validator, genre string) {
	v.Check(validator.In(genre, Genres...), "genre",
		"Genre must be one of: "+strings.Join(Genres, ", "))
}

// ValidateCreateBookInput runs every create rule, collecting all failures
// into v rather than stopping at the first one.
func ValidateCreateBookInput(v *validator.Validator, in CreateBookInput) {
	checkTitle(v, in.Title)
	checkAuthor(v, in.Author)
	checkPublishedYear(v, in.PublishedYear)
	checkGenre(v, in.Genre)
	v.Check(in.Available != nil, "available", "Available must be provided")
}

// ValidateUpdateBookInput runs the same field rules as create, but only
// against the fields the client actually supplied.
func ValidateUpdateBookInput(v *validator.Validator, in UpdateBookInput) {
	if in.Title != nil {
		checkTitle(v, *in.Title)
	}
	if in.Author != nil {
		checkAuthor(v, *in.Author)
	}
	if in.PublishedYear != nil {
		checkPublishedYear(v, *in.PublishedYear)
	}
	if in.Genre != nil {
		checkGenre(v, *in.Genre)
	}
}
