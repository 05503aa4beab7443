package paramfilter

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sortKey struct {
	field string
	desc  bool
}

// fakeQueryable records added conditions and sort keys. OrderBy prepends,
// matching the contract that the most recent sort key takes precedence:
// sortKeys[0] is the primary key of the resulting order.
type fakeQueryable struct {
	fields     []Field
	primary    string
	conditions []Condition
	sortKeys   []sortKey
}

func (q *fakeQueryable) SelectedFields() []Field { return q.fields }

func (q *fakeQueryable) PrimaryField() (Field, bool) {
	field, ok := lo.Find(q.fields, func(f Field) bool { return f.Name == q.primary })
	return field, ok
}

func (q *fakeQueryable) Where(cond Condition) Queryable {
	q.conditions = append(q.conditions, cond)
	return q
}

func (q *fakeQueryable) OrderBy(field string, desc bool) Queryable {
	q.sortKeys = append([]sortKey{{field: field, desc: desc}}, q.sortKeys...)
	return q
}

func newFakeQueryable() *fakeQueryable {
	return &fakeQueryable{
		fields: []Field{
			{Name: "id", Kind: KindInteger},
			{Name: "name", Kind: KindText},
			{Name: "active", Kind: KindBoolean},
			{Name: "created_at", Kind: KindDateTime},
			{Name: "score", Kind: KindOther},
		},
		primary: "id",
	}
}

func TestFilter(t *testing.T) {
	t.Run("invalid parameters are silently dropped", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{
			"name(==)":          "Alice",
			"unknown_field(==)": "x",
			"active(LIKE)":      "true",
			"name":              "no grammar match",
			"age(BETWEEN)":      "1",
		})
		require.Equal(t, []Condition{
			{Field: "name", Operator: OpEq, Value: "Alice"},
		}, q.conditions)
	})

	t.Run("conditions are added in sorted key order", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{
			"name(!=)": "Bob",
			"id(>=)":   "10",
			"id(<)":    "20",
		})
		require.Equal(t, []Condition{
			{Field: "id", Operator: OpLt, Value: "20"},
			{Field: "id", Operator: OpGte, Value: "10"},
			{Field: "name", Operator: OpNeq, Value: "Bob"},
		}, q.conditions)
	})

	t.Run("boolean coercion is an exact literal match", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{"active(==)": "true"})
		require.Equal(t, []Condition{
			{Field: "active", Operator: OpEq, Value: true},
		}, q.conditions)

		q = newFakeQueryable()
		Filter(q, map[string]string{"active(==)": "True"})
		require.Equal(t, []Condition{
			{Field: "active", Operator: OpEq, Value: false},
		}, q.conditions)
	})

	t.Run("date-time values are coerced when they parse", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{
			"created_at(>=)": "2024-05-06T07:08:09",
			"created_at(<=)": "garbage",
		})
		require.Equal(t, []Condition{
			{Field: "created_at", Operator: OpLte, Value: "garbage"},
			{Field: "created_at", Operator: OpGte, Value: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		}, q.conditions)
	})

	t.Run("is_null bypasses the kind adapters", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{
			"name(is_null)":   "true",
			"active(is_null)": "false",
			"score(is_null)":  "True",
		})
		require.Equal(t, []Condition{
			{Field: "active", Operator: OpIsNull, Value: false},
			{Field: "name", Operator: OpIsNull, Value: true},
			{Field: "score", Operator: OpIsNull, Value: false},
		}, q.conditions)
	})

	t.Run("fallback kind accepts pattern operators", func(t *testing.T) {
		q := newFakeQueryable()
		Filter(q, map[string]string{"score(ILIKE)": "%x%"})
		require.Equal(t, []Condition{
			{Field: "score", Operator: OpILike, Value: "%x%"},
		}, q.conditions)
	})

	t.Run("filtering twice duplicates conditions", func(t *testing.T) {
		// Conjunction is not deduplicated.
		q := newFakeQueryable()
		params := map[string]string{"name(==)": "Alice"}
		Filter(q, params)
		Filter(q, params)
		require.Len(t, q.conditions, 2)
	})
}

func TestOrder(t *testing.T) {
	t.Run("nil spec orders by the primary field ascending", func(t *testing.T) {
		q := newFakeQueryable()
		Order(q, nil)
		require.Equal(t, []sortKey{{field: "id", desc: false}}, q.sortKeys)
	})

	t.Run("first written term is the primary sort key", func(t *testing.T) {
		q := newFakeQueryable()
		Order(q, lo.ToPtr("name,-id"))
		require.Equal(t, []sortKey{
			{field: "name", desc: false},
			{field: "id", desc: true},
		}, q.sortKeys)
	})

	t.Run("terms are trimmed and unknown fields dropped", func(t *testing.T) {
		q := newFakeQueryable()
		Order(q, lo.ToPtr(" -score , bogus_field , name "))
		require.Equal(t, []sortKey{
			{field: "score", desc: true},
			{field: "name", desc: false},
		}, q.sortKeys)
	})

	t.Run("spec with no valid terms applies no ordering", func(t *testing.T) {
		// Distinct from the nil case: no fallback to the primary field.
		q := newFakeQueryable()
		Order(q, lo.ToPtr("bogus_field"))
		assert.Empty(t, q.sortKeys)

		q = newFakeQueryable()
		Order(q, lo.ToPtr("  "))
		assert.Empty(t, q.sortKeys)

		q = newFakeQueryable()
		Order(q, lo.ToPtr(""))
		assert.Empty(t, q.sortKeys)
	})

	t.Run("bare descending marker is dropped", func(t *testing.T) {
		q := newFakeQueryable()
		Order(q, lo.ToPtr("-"))
		assert.Empty(t, q.sortKeys)
	})
}

func TestApply(t *testing.T) {
	q := newFakeQueryable()
	Apply(q, map[string]string{
		"name(ILIKE)":  "ali%",
		"active(==)":   "true",
		"active(>=)":   "true",
		"unknown(==)":  "x",
		"id(is_null)":  "false",
		"name(BAD_OP)": "x",
	}, lo.ToPtr("-created_at,name"))

	require.Equal(t, []Condition{
		{Field: "active", Operator: OpEq, Value: true},
		{Field: "id", Operator: OpIsNull, Value: false},
		{Field: "name", Operator: OpILike, Value: "ali%"},
	}, q.conditions)
	require.Equal(t, []sortKey{
		{field: "created_at", desc: true},
		{field: "name", desc: false},
	}, q.sortKeys)
}
