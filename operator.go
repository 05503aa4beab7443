package paramfilter

// Operator is a comparison or method token as it appears inside a composite
// parameter key, e.g. "age(>=)" carries OpGte.
type Operator string

const (
	OpEq  Operator = "=="
	OpNeq Operator = "!="
	OpGte Operator = ">="
	OpLte Operator = "<="
	OpGt  Operator = ">"
	OpLt  Operator = "<"

	// OpLike and OpILike use the raw parameter value as the pattern
	// expression. No escaping of % or _ is performed.
	OpLike  Operator = "LIKE"
	OpILike Operator = "ILIKE"

	// OpIsNull is a method operator: the parameter value "true" selects NULL
	// rows, anything else selects NOT NULL rows. Its argument coercion
	// bypasses the kind adapters.
	OpIsNull Operator = "is_null"
)

// comparisonOperators lists the binary comparison tokens in the order the key
// grammar tries them. Tokens that prefix another token (">" and ">=") must
// come after the longer one.
var comparisonOperators = []Operator{
	OpEq,
	OpNeq,
	OpGte,
	OpLte,
	OpGt,
	OpLt,
	OpLike,
	OpILike,
}

// methodOperators lists the named method tokens.
var methodOperators = []Operator{
	OpIsNull,
}

// IsMethod reports whether o is a method operator rather than a binary
// comparison.
func (o Operator) IsMethod() bool {
	for _, m := range methodOperators {
		if o == m {
			return true
		}
	}
	return false
}
