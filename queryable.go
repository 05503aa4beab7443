package paramfilter

// Field describes one selected column of a Queryable.
type Field struct {
	Name string
	Kind Kind
}

// Condition is one accepted comparison, handed to the Queryable to turn into
// a backend predicate. For OpIsNull, Value is the boolean method argument.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// Queryable is the query-builder collaborator that predicates and sort keys
// are added to. Implementations return the updated handle and callers must
// keep using the returned value.
type Queryable interface {
	// SelectedFields lists the fields that parameters may reference. Anything
	// outside this list is silently ignored by the filters.
	SelectedFields() []Field

	// PrimaryField reports the collection's identity field, used as the
	// default sort key when no ordering spec is supplied.
	PrimaryField() (Field, bool)

	// Where conjoins cond with all previously added conditions.
	Where(cond Condition) Queryable

	// OrderBy layers a sort key on top of previously added ones: the most
	// recently added key takes precedence over earlier ones.
	OrderBy(field string, desc bool) Queryable
}
