package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{21, 10, 3},
		{3, 1, 3},
	}
	for _, tc := range cases {
		p := newPage([]int{}, 1, tc.limit, tc.total)
		assert.Equal(t, int64(tc.pages), p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}

	// nil items marshal as an empty list, not null.
	p := newPage[int](nil, 1, 10, 0)
	assert.NotNil(t, p.Items)
}

func TestNormalizePaging(t *testing.T) {
	page, limit := normalizePaging(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePaging(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePaging(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
