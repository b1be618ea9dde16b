// Package query derives the visible, ordered subset of a catalog from the
// search, sort and availability filter parameters.
package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/brightwell/svccat/internal/catalog"
)

// SortKey selects the ordering of the visible records.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPrice      SortKey = "price"
	SortName       SortKey = "name"
)

// SortKeys lists the sort keys in cycling order.
var SortKeys = []SortKey{SortPopularity, SortPrice, SortName}

// ParseSort converts a string to a SortKey.
func ParseSort(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q (want popularity, price or name)", s)
}

// Label returns the display label for the key.
func (k SortKey) Label() string {
	switch k {
	case SortPopularity:
		return "Most Popular"
	case SortPrice:
		return "Price: Low to High"
	case SortName:
		return "Name: A to Z"
	}
	return string(k)
}

// Filter restricts records to those offering a feature with a given
// availability.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterAvailable  Filter = Filter(catalog.AvailabilityAvailable)
	FilterBeta       Filter = Filter(catalog.AvailabilityBeta)
	FilterComingSoon Filter = Filter(catalog.AvailabilityComingSoon)
)

// Filters lists the filters in cycling order.
var Filters = []Filter{FilterAll, FilterAvailable, FilterBeta, FilterComingSoon}

// ParseFilter converts a string to a Filter.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, available, beta or coming-soon)", s)
}

// Label returns the display label for the filter.
func (f Filter) Label() string {
	if f == FilterAll {
		return "All Services"
	}
	return catalog.Availability(f).Label()
}

// Query is the tuple of parameters that controls which records are visible.
type Query struct {
	Search string
	Sort   SortKey
	Filter Filter
}

// Default returns the query shown before the user changes anything.
func Default() Query {
	return Query{Sort: SortPopularity, Filter: FilterAll}
}

// Apply returns the records matching q in q's order. The result is always
// a new slice; services is never modified.
func Apply(services []*catalog.ServiceDetail, q Query) []*catalog.ServiceDetail {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*catalog.ServiceDetail, 0, len(services))
	for _, s := range services {
		if s == nil {
			continue
		}
		if !matchesSearch(s, term) || !matchesFilter(s, q.Filter) {
			continue
		}
		out = append(out, s)
	}

	sortServices(out, q.Sort)
	return out
}

func matchesSearch(s *catalog.ServiceDetail, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.ShortDescription), term)
}

// Any feature with the requested availability keeps the record.
func matchesFilter(s *catalog.ServiceDetail, f Filter) bool {
	if f == "" || f == FilterAll {
		return true
	}
	return s.HasFeatureWith(catalog.Availability(f))
}

func sortServices(list []*catalog.ServiceDetail, key SortKey) {
	switch key {
	case SortPrice:
		slices.SortStableFunc(list, func(a, b *catalog.ServiceDetail) int {
			return a.StartingPrice().Compare(b.StartingPrice())
		})
	case SortName:
		// collate.Collator keeps internal buffers, so one per call.
		col := collate.New(language.English)
		slices.SortStableFunc(list, func(a, b *catalog.ServiceDetail) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortPopularity, "":
		slices.SortStableFunc(list, func(a, b *catalog.ServiceDetail) int {
			return b.Popularity() - a.Popularity()
		})
	}
}

// Testimonial categories shown in the category bar.
const (
	CategoryAll      = "All"
	CategoryFeatured = "Featured"
)

// TestimonialCategories lists the categories in display order. Categories
// other than All and Featured match on specialty substring.
var TestimonialCategories = []string{
	CategoryAll,
	CategoryFeatured,
	"Family Medicine",
	"Internal Medicine",
	"Surgery",
	"Multi-Specialty",
}

// ParseCategory checks that s is a known testimonial category.
func ParseCategory(s string) (string, error) {
	for _, c := range TestimonialCategories {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (want one of %s)", s, strings.Join(TestimonialCategories, ", "))
}

// FilterTestimonials returns the testimonials in category, in input order,
// as a new slice.
func FilterTestimonials(list []*catalog.VideoTestimonial, category string) []*catalog.VideoTestimonial {
	out := make([]*catalog.VideoTestimonial, 0, len(list))
	for _, t := range list {
		if t == nil {
			continue
		}
		switch category {
		case "", CategoryAll:
		case CategoryFeatured:
			if !t.Featured {
				continue
			}
		default:
			if !strings.Contains(t.Specialty, category) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
