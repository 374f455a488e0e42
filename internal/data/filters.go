package data

import (
	"github.com/avelro/bookcatalog/internal/validator"
)

// Filters holds the optional list filters and pagination parameters
// extracted from URL query strings. Pointer fields distinguish "absent"
// from a legitimate zero value (available=false, start=0).
type Filters struct {
	Author    string // case-insensitive substring match; empty means no filter
	Genre     string // exact match; empty means no filter
	Available *bool  // exact match; nil means no filter
	Start     *int   // offset into the filtered result set
	Limit     *int   // maximum number of records to return
}

// Paginated reports whether pagination should be applied. Both start and
// limit must be supplied; if either is missing, the full filtered result
// set is returned with no offset or limit.
func (f Filters) Paginated() bool {
	return f.Start != nil && f.Limit != nil
}

// ValidateFilters checks the filter and pagination parameters, collecting
// every failure into v.
func ValidateFilters(v *validator.Validator, f Filters) {
	if f.Genre != "" {
		checkGenre(v, f.Genre)
	}
	if f.Start != nil {
		v.Check(*f.Start >= 0, "start", "Start must be zero or greater")
	}
	if f.Limit != nil {
		v.Check(*f.Limit >= 1 && *f.Limit <= 100, "limit", "Limit must be between 1 and 100")
	}
}

// Metadata carries the pagination block returned alongside a paginated
// list response. TotalItems counts every matching record before the
// offset and limit were applied, so callers can compute page counts.
type Metadata struct {
	Start      int `json:"start"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
}
