package data

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelro/bookcatalog/internal/validator"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func validCreateInput() CreateBookInput {
	return CreateBookInput{
		Title:         "Clean Code",
		Author:        "Robert Martin",
		PublishedYear: 2008,
		Genre:         "science",
		Available:     boolPtr(true),
	}
}

func TestValidateCreateBookInput_Valid(t *testing.T) {
	v := validator.New()
	ValidateCreateBookInput(v, validCreateInput())
	assert.True(t, v.Valid())
}

func TestValidateCreateBookInput_NumericOnlyTitle(t *testing.T) {
	in := validCreateInput()
	in.Title = "12345"

	v := validator.New()
	ValidateCreateBookInput(v, in)

	assert.False(t, v.Valid())
	assert.Equal(t, "Title cannot be only numbers", v.Errors["title"])
}

func TestValidateCreateBookInput_TitleLength(t *testing.T) {
	in := validCreateInput()
	in.Title = ""

	v := validator.New()
	ValidateCreateBookInput(v, in)
	assert.Equal(t, "Title must be between 1 and 255 characters", v.Errors["title"])

	// A title containing a non-digit character is fine even if mostly digits.
	in.Title = "1984a"
	v = validator.New()
	ValidateCreateBookInput(v, in)
	assert.True(t, v.Valid())
}

func TestValidateCreateBookInput_AuthorWithDigit(t *testing.T) {
	in := validCreateInput()
	in.Author = "Jane3"

	v := validator.New()
	ValidateCreateBookInput(v, in)

	assert.False(t, v.Valid())
	assert.Equal(t, "Author name cannot contain numbers", v.Errors["author"])
}

func TestValidateCreateBookInput_AuthorTooShort(t *testing.T) {
	in := validCreateInput()
	in.Author = "Jo"

	v := validator.New()
	ValidateCreateBookInput(v, in)

	assert.Equal(t, "Author must be between 3 and 255 characters", v.Errors["author"])
}

func TestValidateCreateBookInput_YearBounds(t *testing.T) {
	currentYear := time.Now().Year()
	message := fmt.Sprintf("Published year must be between 1450 and %d", currentYear)

	in := validCreateInput()
	in.PublishedYear = 1000

	v := validator.New()
	ValidateCreateBookInput(v, in)
	assert.Equal(t, message, v.Errors["published_year"])

	in.PublishedYear = currentYear + 1
	v = validator.New()
	ValidateCreateBookInput(v, in)
	assert.Equal(t, message, v.Errors["published_year"])

	// Boundary years are accepted.
	for _, year := range []int{1450, currentYear} {
		in.PublishedYear = year
		v = validator.New()
		ValidateCreateBookInput(v, in)
		assert.True(t, v.Valid(), "year %d should be accepted", year)
	}
}

func TestValidateCreateBookInput_UnknownGenre(t *testing.T) {
	in := validCreateInput()
	in.Genre = "poetry"

	v := validator.New()
	ValidateCreateBookInput(v, in)

	assert.Equal(t, "Genre must be one of: fiction, non-fiction, science, history, other", v.Errors["genre"])
}

func TestValidateCreateBookInput_MissingAvailable(t *testing.T) {
	in := validCreateInput()
	in.Available = nil

	v := validator.New()
	ValidateCreateBookInput(v, in)

	assert.Equal(t, "Available must be provided", v.Errors["available"])
}

func TestValidateCreateBookInput_CollectsAllFailures(t *testing.T) {
	in := CreateBookInput{
		Title:         "12345",
		Author:        "Jane3",
		PublishedYear: 1000,
		Genre:         "science",
		Available:     boolPtr(true),
	}

	v := validator.New()
	ValidateCreateBookInput(v, in)

	// Every failing field is reported in a single pass, not just the first.
	assert.Len(t, v.Errors, 3)
	assert.Contains(t, v.Errors, "title")
	assert.Contains(t, v.Errors, "author")
	assert.Contains(t, v.Errors, "published_year")
}

func TestValidateUpdateBookInput_OnlySuppliedFieldsChecked(t *testing.T) {
	// A bad value in an absent field cannot fail; only supplied ones count.
	v := validator.New()
	ValidateUpdateBookInput(v, UpdateBookInput{Available: boolPtr(false)})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateUpdateBookInput(v, UpdateBookInput{Title: strPtr("12345")})
	assert.Equal(t, "Title cannot be only numbers", v.Errors["title"])

	v = validator.New()
	ValidateUpdateBookInput(v, UpdateBookInput{PublishedYear: intPtr(1000)})
	assert.Contains(t, v.Errors, "published_year")
}

func TestUpdateBookInput_IsEmpty(t *testing.T) {
	assert.True(t, UpdateBookInput{}.IsEmpty())
	assert.False(t, UpdateBookInput{Available: boolPtr(true)}.IsEmpty())
	assert.False(t, UpdateBookInput{Genre: strPtr("history")}.IsEmpty())
}

func TestUpdateBookInput_ApplyTo_PartialUpdate(t *testing.T) {
	book := Book{
		ID:            7,
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedYear: 1965,
		Genre:         "fiction",
		Available:     true,
		Status:        StatusPresent,
	}

	in := UpdateBookInput{Available: boolPtr(false), Genre: strPtr("science")}
	in.ApplyTo(&book)

	// Supplied fields changed; everything else retained its prior value.
	assert.False(t, book.Available)
	assert.Equal(t, "science", book.Genre)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, 1965, book.PublishedYear)
	assert.Equal(t, StatusPresent, book.Status)
}
