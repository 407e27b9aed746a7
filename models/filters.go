package models

import (
	"sort"
	"strings"
)

type FilterOperator string

// Text operators (contains, startswith, endswith) are case sensitive: they
// compile to LIKE, matching the historical behavior of the API.
const (
	FilterEq         FilterOperator = "eq"
	FilterGt         FilterOperator = "gt"
	FilterLt         FilterOperator = "lt"
	FilterGte        FilterOperator = "gte"
	FilterLte        FilterOperator = "lte"
	FilterContains   FilterOperator = "contains"
	FilterStartsWith FilterOperator = "startswith"
	FilterEndsWith   FilterOperator = "endswith"
	FilterIn         FilterOperator = "in"
)

// FilterPathSeparator splits filter keys into relationship hops and the
// trailing operator: "submitter__bu__name__eq=value".
const FilterPathSeparator = "__"

var knownOperators = map[FilterOperator]struct{}{
	FilterEq:         {},
	FilterGt:         {},
	FilterLt:         {},
	FilterGte:        {},
	FilterLte:        {},
	FilterContains:   {},
	FilterStartsWith: {},
	FilterEndsWith:   {},
	FilterIn:         {},
}

// Filter is one parsed query-string entry: a field path (possibly through
// declared relationships), an operator and the raw string value. Coercion of
// the value to the target field's type happens when the predicate is built,
// once the path has been resolved.
type Filter struct {
	Path  []string
	Op    FilterOperator
	Value string
}

func (f Filter) FieldPath() string {
	return strings.Join(f.Path, FilterPathSeparator)
}

// ParseFilters turns raw query parameters into filters. The last path
// segment is the operator when it names one, otherwise the whole key is the
// field path and the operator defaults to eq. Parsing never fails: path
// validation is deferred to the predicate builder. Keys are processed in
// sorted order so the result is deterministic.
func ParseFilters(queryParams map[string]string) []Filter {
	keys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	filters := make([]Filter, 0, len(keys))
	for _, key := range keys {
		parts := strings.Split(key, FilterPathSeparator)
		op := FilterEq
		if len(parts) > 1 {
			if _, ok := knownOperators[FilterOperator(parts[len(parts)-1])]; ok {
				op = FilterOperator(parts[len(parts)-1])
				parts = parts[:len(parts)-1]
			}
		}
		filters = append(filters, Filter{
			Path:  parts,
			Op:    op,
			Value: queryParams[key],
		})
	}
	return filters
}
