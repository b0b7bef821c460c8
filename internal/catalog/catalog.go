// Package catalog applies the storefront's category and search filtering to
// the fetched service list. Filters compose with AND; order of application
// only changes intermediate sizes, never the result set.
package catalog

import (
	"strings"

	"github.com/reservat/storefront-go/internal/types"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// categoryTypes maps the UI's coarse categories onto service type values.
var categoryTypes = map[string]string{
	"transportes":  types.TypeTransport,
	"hoteles":      types.TypeLodging,
	"restaurantes": types.TypeRestaurant,
	"experiencias": types.TypeExperience,
}

// Categories lists the known category keys, excluding CategoryAll.
func Categories() []string {
	out := make([]string, 0, len(categoryTypes))
	for k := range categoryTypes {
		out = append(out, k)
	}
	return out
}

// Filter narrows services by category, then by the optional free-text,
// city and type filters.
func Filter(services []types.Service, category string, f types.SearchFilters) []types.Service {
	filtered := services

	if category != CategoryAll && category != "" {
		want := categoryTypes[category]
		filtered = keep(filtered, func(s types.Service) bool {
			return s.Type == want
		})
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		filtered = keep(filtered, func(s types.Service) bool {
			return strings.Contains(strings.ToLower(s.Name), q) ||
				strings.Contains(strings.ToLower(s.Description), q)
		})
	}

	if f.City != "" {
		city := strings.ToLower(f.City)
		filtered = keep(filtered, func(s types.Service) bool {
			return strings.Contains(strings.ToLower(s.City), city)
		})
	}

	if f.ServiceType != "" {
		filtered = keep(filtered, func(s types.Service) bool {
			return s.Type == f.ServiceType
		})
	}

	// Always hand back a fresh slice so callers can't alias store state.
	out := make([]types.Service, len(filtered))
	copy(out, filtered)
	return out
}

func keep(in []types.Service, pred func(types.Service) bool) []types.Service {
	out := make([]types.Service, 0, len(in))
	for _, s := range in {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
