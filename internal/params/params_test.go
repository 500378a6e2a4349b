package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 15, wantPage: 1, wantOffset: 0},
		{name: "explicit values", query: "limit=10&page=3", wantLimit: 10, wantPage: 3, wantOffset: 20},
		{name: "limit capped at 30", query: "limit=500", wantLimit: 30, wantPage: 1, wantOffset: 0},
		{name: "zero limit falls back", query: "limit=0", wantLimit: 15, wantPage: 1, wantOffset: 0},
		{name: "negative page falls back", query: "page=-2", wantLimit: 15, wantPage: 1, wantOffset: 0},
		{name: "garbage ignored", query: "limit=abc&page=xyz", wantLimit: 15, wantPage: 1, wantOffset: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{name: "single page", page: 1, limit: 15, total: 10, wantTotalPages: 1},
		{name: "middle page", page: 2, limit: 10, total: 35, wantTotalPages: 4, wantHasNext: true, wantHasPrev: true},
		{name: "last page", page: 4, limit: 10, total: 35, wantTotalPages: 4, wantHasPrev: true},
		{name: "empty result", page: 1, limit: 15, total: 0, wantTotalPages: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Pagination{Page: tc.page, Limit: tc.limit}
			p.ComputeMeta(tc.total)

			assert.Equal(t, tc.total, p.Count)
			assert.Equal(t, tc.wantTotalPages, p.TotalPages)
			assert.Equal(t, tc.wantHasNext, p.HasNext)
			assert.Equal(t, tc.wantHasPrev, p.HasPrev)
		})
	}
}
