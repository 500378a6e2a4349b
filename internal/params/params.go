package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Pagination holds parsed page parameters plus metadata computed after
// the total count is known.
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Count      int  `json:"count"` // total rows matching the query
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... safely. Keys are case sensitive.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: 15, // default
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = 15
			case limit > 30:
				p.Limit = 30
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Count = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}
