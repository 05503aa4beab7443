package paramfilter

import "time"

// Kind classifies a queryable field for value coercion and operator support
// checks. Backends map their native column types onto these kinds; anything
// they cannot classify is KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindBoolean
	KindInteger
	KindDateTime
)

// timestampLayouts are tried in order when coercing a KindDateTime value.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
}

// adapter answers the two per-kind questions: how to coerce a raw parameter
// value, and which operators make sense for the kind.
type adapter struct {
	parseValue  func(raw string) any
	unsupported []Operator
}

func (a adapter) ParseValue(raw string) any {
	if a.parseValue == nil {
		return raw
	}
	return a.parseValue(raw)
}

func (a adapter) Supports(op Operator) bool {
	for _, u := range a.unsupported {
		if op == u {
			return false
		}
	}
	return true
}

// defaultAdapter serves unmapped kinds: identity coercion and every operator
// accepted, deferring rejection to the backend.
var defaultAdapter = adapter{}

// kindAdapters is resolved in declaration order; unknown kinds fall back to
// defaultAdapter.
var kindAdapters = []struct {
	kind Kind
	adapter
}{
	{kind: KindText, adapter: adapter{}},
	{kind: KindBoolean, adapter: adapter{
		// Exact literal match: "True" and "1" are false.
		parseValue:  func(raw string) any { return raw == "true" },
		unsupported: []Operator{OpGte, OpLte, OpGt, OpLt, OpLike, OpILike},
	}},
	{kind: KindInteger, adapter: adapter{
		// Numeric coercion is deferred to the backend.
		unsupported: []Operator{OpLike, OpILike},
	}},
	{kind: KindDateTime, adapter: adapter{
		parseValue:  parseTimestamp,
		unsupported: []Operator{OpLike, OpILike},
	}},
}

func adapterFor(kind Kind) adapter {
	for _, entry := range kindAdapters {
		if entry.kind == kind {
			return entry.adapter
		}
	}
	return defaultAdapter
}

// parseTimestamp returns the first layout that parses raw, or raw unchanged
// when none does. A failed coercion is not an error here: the backend decides
// whether the uncoerced value is usable.
func parseTimestamp(raw string) any {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return raw
}
