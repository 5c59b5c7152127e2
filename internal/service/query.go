package service

import (
	"math"
	"strconv"
	"strings"

	"estately/internal/models"
	"estately/internal/repository"
)

const (
	// DefaultPageSize applies when limit is absent or unusable.
	DefaultPageSize = 10
	// MaxPageSize caps limit regardless of what the client asks for.
	MaxPageSize = 100
)

// PropertySearchParams are the raw query string values of a listing search.
type PropertySearchParams struct {
	Search      string
	City        string
	ListingType string
	Type        string
	MinPrice    string
	MaxPrice    string
	Bedrooms    string
	Furnished   string
	Sort        string
	Page        string
	Limit       string
}

// BuildPropertyQuery turns raw search parameters into a public, approved-only query.
// Malformed numeric values drop their filter instead of failing the request.
func BuildPropertyQuery(p PropertySearchParams) repository.PropertyQuery {
	status := models.PropertyStatusApproved
	q := repository.PropertyQuery{
		Status:      &status,
		Search:      strings.TrimSpace(p.Search),
		City:        strings.TrimSpace(p.City),
		ListingType: strings.TrimSpace(p.ListingType),
		Type:        strings.TrimSpace(p.Type),
		Bedrooms:    parseInt(p.Bedrooms),
		Furnished:   parseTriState(p.Furnished),
		MinPrice:    parsePrice(p.MinPrice),
		MaxPrice:    parsePrice(p.MaxPrice),
		Sort:        parseSort(p.Sort),
		Page:        1,
		Limit:       DefaultPageSize,
	}

	if page := parseInt(p.Page); page != nil && *page >= 1 {
		q.Page = *page
	}
	if limit := parseInt(p.Limit); limit != nil && *limit >= 1 {
		q.Limit = min(*limit, MaxPageSize)
	}
	// Keep (page-1)*limit within int so the offset never wraps negative.
	q.Page = min(q.Page, math.MaxInt/q.Limit)

	return q
}

// parseTriState accepts only the literal strings "true" and "false".
func parseTriState(s string) *bool {
	var v bool
	switch s {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseSort(s string) repository.PropertySort {
	switch s {
	case "priceAsc":
		return repository.SortPriceAsc
	case "priceDesc":
		return repository.SortPriceDesc
	default:
		return repository.SortNewest
	}
}
