package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelro/bookcatalog/internal/validator"
)

func TestFilters_Paginated_RequiresBothParameters(t *testing.T) {
	assert.False(t, Filters{}.Paginated())
	assert.False(t, Filters{Start: intPtr(0)}.Paginated())
	assert.False(t, Filters{Limit: intPtr(10)}.Paginated())
	assert.True(t, Filters{Start: intPtr(0), Limit: intPtr(10)}.Paginated())
}

func TestValidateFilters_Valid(t *testing.T) {
	v := validator.New()
	ValidateFilters(v, Filters{
		Author:    "rob",
		Genre:     "science",
		Available: boolPtr(true),
		Start:     intPtr(0),
		Limit:     intPtr(100),
	})
	assert.True(t, v.Valid())
}

func TestValidateFilters_AbsentFiltersImposeNothing(t *testing.T) {
	v := validator.New()
	ValidateFilters(v, Filters{})
	assert.True(t, v.Valid())
}

func TestValidateFilters_Bounds(t *testing.T) {
	v := validator.New()
	ValidateFilters(v, Filters{Start: intPtr(-1)})
	assert.Equal(t, "Start must be zero or greater", v.Errors["start"])

	v = validator.New()
	ValidateFilters(v, Filters{Limit: intPtr(0)})
	assert.Equal(t, "Limit must be between 1 and 100", v.Errors["limit"])

	v = validator.New()
	ValidateFilters(v, Filters{Limit: intPtr(101)})
	assert.Equal(t, "Limit must be between 1 and 100", v.Errors["limit"])
}

func TestValidateFilters_Genre(t *testing.T) {
	v := validator.New()
	ValidateFilters(v, Filters{Genre: "poetry"})
	assert.Equal(t, "Genre must be one of: fiction, non-fiction, science, history, other", v.Errors["genre"])
}
