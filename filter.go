// Package paramfilter compiles textual query parameters into type-checked
// filter conditions and an ordering spec over an abstract queryable
// collection. Parameters that fail to parse, reference unknown fields, or
// pair an operator with an incompatible field kind contribute nothing:
// clients may send arbitrary parameters without failing the request.
package paramfilter

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Filter adds one condition per accepted parameter to q and returns the
// resulting handle. Keys are processed in sorted order so the output is
// deterministic. Applying the same params twice adds the same conditions
// twice; conjunction is not deduplicated.
func Filter(q Queryable, params map[string]string) Queryable {
	fields := fieldsByName(q)

	keys := lo.Keys(params)
	sort.Strings(keys)

	for _, key := range keys {
		pk, ok := ParseParamKey(key)
		if !ok {
			continue
		}
		field, ok := fields[pk.Field]
		if !ok {
			continue
		}
		a := adapterFor(field.Kind)
		if !a.Supports(pk.Operator) {
			continue
		}

		value := params[key]
		if pk.Operator.IsMethod() {
			q = q.Where(Condition{Field: field.Name, Operator: pk.Operator, Value: value == "true"})
			continue
		}
		q = q.Where(Condition{Field: field.Name, Operator: pk.Operator, Value: a.ParseValue(value)})
	}
	return q
}

const descMarker = "-"

// Order applies the comma-separated ordering spec to q. A nil spec falls
// back to the primary field ascending. A non-nil spec with no surviving
// terms (empty string, or every term referencing an unknown field) applies
// no ordering at all; "absent" and "present but useless" stay distinct.
func Order(q Queryable, ordering *string) Queryable {
	if ordering == nil {
		if primary, ok := q.PrimaryField(); ok {
			q = q.OrderBy(primary.Name, false)
		}
		return q
	}

	fields := fieldsByName(q)
	terms := lo.FilterMap(strings.Split(*ordering, ","), func(raw string, _ int) (orderTerm, bool) {
		name := strings.TrimSpace(raw)
		desc := strings.HasPrefix(name, descMarker)
		if desc {
			name = strings.TrimPrefix(name, descMarker)
		}
		if _, ok := fields[name]; !ok {
			return orderTerm{}, false
		}
		return orderTerm{field: name, desc: desc}, true
	})

	// OrderBy gives the most recent key precedence, so terms are applied
	// last to first: the first written term ends up the primary sort key.
	for _, term := range lo.Reverse(terms) {
		q = q.OrderBy(term.field, term.desc)
	}
	return q
}

type orderTerm struct {
	field string
	desc  bool
}

// Apply runs the ordering filter and then the predicate filter over q.
// The two only add clauses, so their relative order does not affect the
// result.
func Apply(q Queryable, params map[string]string, ordering *string) Queryable {
	return Filter(Order(q, ordering), params)
}

func fieldsByName(q Queryable) map[string]Field {
	return lo.SliceToMap(q.SelectedFields(), func(f Field) (string, Field) {
		return f.Name, f
	})
}
