package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The list query builder is pure, so its output SQL can be inspected
// directly without a database.

func TestListQuery_AlwaysExcludesTerminated(t *testing.T) {
	sql, _, err := listQuery(Filters{}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `"status"`)
	assert.Contains(t, sql, `'Terminated'`)
}

func TestListQuery_OrdersByInsertionOrder(t *testing.T) {
	sql, _, err := listQuery(Filters{}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `ORDER BY "id" ASC`)
}

func TestListQuery_CarriesTotalCountWindow(t *testing.T) {
	sql, _, err := listQuery(Filters{Start: intPtr(5), Limit: intPtr(10)}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "count(*) OVER()")
}

func TestListQuery_AuthorSubstringCaseInsensitive(t *testing.T) {
	sql, _, err := listQuery(Filters{Author: "rob"}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, sql, "'%rob%'")
}

func TestListQuery_EscapesPatternMetacharacters(t *testing.T) {
	// LIKE wildcards in the author filter must match literally, not as
	// pattern syntax.
	sql, _, err := listQuery(Filters{Author: "50%_off"}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `'%50\%\_off%'`)

	sql, _, err = listQuery(Filters{Author: `back\slash`}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `back\\slash`)
}

func TestCountQuery_SharesFiltersWithoutPagination(t *testing.T) {
	// The fallback total for an out-of-range page counts over exactly the
	// same WHERE clause as the list, with the offset and limit dropped.
	filters := Filters{Author: "rob", Genre: "science", Start: intPtr(50), Limit: intPtr(10)}

	sql, _, err := countQuery(filters).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*)")
	assert.Contains(t, sql, `'Terminated'`)
	assert.Contains(t, sql, "'%rob%'")
	assert.Contains(t, sql, `'science'`)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}

func TestListQuery_FiltersAreANDCombined(t *testing.T) {
	sql, _, err := listQuery(Filters{Author: "rob", Genre: "science", Available: boolPtr(true)}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "'%rob%'")
	assert.Contains(t, sql, `"genre"`)
	assert.Contains(t, sql, `'science'`)
	assert.Contains(t, sql, "IS TRUE")
	assert.NotContains(t, sql, " OR ")
}

func TestListQuery_AbsentFiltersAddNoConstraint(t *testing.T) {
	sql, _, err := listQuery(Filters{}).ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "ILIKE")
	assert.NotContains(t, sql, `"genre" =`)
	assert.NotContains(t, sql, `"available"`)
}

func TestListQuery_PaginationOnlyWhenBothSupplied(t *testing.T) {
	sql, _, err := listQuery(Filters{Start: intPtr(2), Limit: intPtr(5)}).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 5")
	assert.Contains(t, sql, "OFFSET 2")

	// Either parameter on its own leaves the result set unbounded.
	sql, _, err = listQuery(Filters{Start: intPtr(2)}).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")

	sql, _, err = listQuery(Filters{Limit: intPtr(5)}).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}
