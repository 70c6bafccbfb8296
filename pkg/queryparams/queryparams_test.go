package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Validate(t *testing.T) {
	params := ListParams{Page: 0, PerPage: 500, OrderBy: "sideways"}
	params.Validate()

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, MaxPerPage, params.PerPage)
	assert.Equal(t, DefaultOrderBy, params.OrderBy)

	params = ListParams{Page: 3, PerPage: 10, OrderBy: "asc"}
	params.Validate()
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.PerPage)
	assert.Equal(t, "asc", params.OrderBy)
}

func TestListParams_CalculateOffset(t *testing.T) {
	params := ListParams{Page: 1, PerPage: 20}
	assert.Equal(t, 0, params.CalculateOffset())

	params.Page = 4
	assert.Equal(t, 60, params.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(1, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}
