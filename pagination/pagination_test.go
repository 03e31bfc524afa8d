package pagination_test

import (
	"testing"

	"github.com/rise-and-shine/iconreg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		req := pagination.Request{}
		req.Normalize()

		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 100, req.PageSize)
	})

	t.Run("caps page size", func(t *testing.T) {
		t.Parallel()

		req := pagination.Request{Page: 2, PageSize: 10_000}
		req.Normalize()

		assert.Equal(t, 2, req.Page)
		assert.Equal(t, 500, req.PageSize)
	})

	t.Run("negative values fall back", func(t *testing.T) {
		t.Parallel()

		req := pagination.Request{Page: -3, PageSize: -1}
		req.Normalize()

		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 100, req.PageSize)
	})

	t.Run("custom options", func(t *testing.T) {
		t.Parallel()

		req := pagination.Request{PageSize: 80}
		req.Normalize(pagination.WithMaxPageSize(50), pagination.WithDefaultPageSize(20))

		assert.Equal(t, 50, req.PageSize)
	})
}

func TestOffsetLimit(t *testing.T) {
	t.Parallel()

	req := pagination.Request{Page: 3, PageSize: 25}

	assert.Equal(t, 50, req.Offset())
	assert.Equal(t, 25, req.Limit())
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	req := pagination.Request{Page: 1, PageSize: 10}
	resp := pagination.NewResponse([]string{"a", "b"}, 25, req)

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Items, 2)
}

func TestNewResponse_NilItems(t *testing.T) {
	t.Parallel()

	req := pagination.Request{Page: 1, PageSize: 10}
	resp := pagination.NewResponse[string](nil, 0, req)

	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalPages)
}
