package store

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ProductFilter holds the optional query filters for product listings.
// Nil pointer means "no filter".
type ProductFilter struct {
	PriceMin   *float64 // inclusive lower bound
	PriceMax   *float64 // inclusive upper bound
	ReleasedOn *Date    // exact release date
	InStock    *bool
	Search     string // case-insensitive substring over name or category name
}

// Parse extracts query parameters from the request URL and populates the ProductFilter.
// Unparseable in_stock values are ignored on purpose; malformed prices and
// dates are reported back as errors.
func (f ProductFilter) Parse(r *http.Request) (ProductFilter, error) {
	params := r.URL.Query()

	if priceMinStr := params.Get("price_min"); priceMinStr != "" {
		priceMin, err := strconv.ParseFloat(priceMinStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid price_min: %w", err)
		}
		f.PriceMin = &priceMin
	}

	if priceMaxStr := params.Get("price_max"); priceMaxStr != "" {
		priceMax, err := strconv.ParseFloat(priceMaxStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid price_max: %w", err)
		}
		f.PriceMax = &priceMax
	}

	if releasedOnStr := params.Get("released_on"); releasedOnStr != "" {
		releasedOn, err := ParseDate(releasedOnStr)
		if err != nil {
			return f, fmt.Errorf("invalid released_on: %w", err)
		}
		f.ReleasedOn = &releasedOn
	}

	// in_stock accepts true/1/false/0 (case-insensitive); any other value
	// leaves the set unfiltered.
	if inStockStr := params.Get("in_stock"); inStockStr != "" {
		switch strings.ToLower(inStockStr) {
		case "true", "1":
			v := true
			f.InStock = &v
		case "false", "0":
			v := false
			f.InStock = &v
		}
	}

	if search := strings.TrimSpace(params.Get("search")); search != "" {
		f.Search = search
	}

	return f, nil
}

// where builds the WHERE clause fragments and bind args for the filter,
// numbering placeholders from startArg.
func (f ProductFilter) where(startArg int) ([]string, []any) {
	clauses := []string{}
	args := []any{}
	n := startArg

	if f.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("p.price >= $%d", n))
		args = append(args, *f.PriceMin)
		n++
	}
	if f.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("p.price <= $%d", n))
		args = append(args, *f.PriceMax)
		n++
	}
	if f.ReleasedOn != nil {
		clauses = append(clauses, fmt.Sprintf("p.released_on = $%d", n))
		args = append(args, *f.ReleasedOn)
		n++
	}
	if f.InStock != nil {
		clauses = append(clauses, fmt.Sprintf("p.in_stock = $%d", n))
		args = append(args, *f.InStock)
		n++
	}
	if f.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(p.name ILIKE $%d OR c.name ILIKE $%d)", n, n))
		args = append(args, "%"+f.Search+"%")
		n++
	}

	return clauses, args
}
