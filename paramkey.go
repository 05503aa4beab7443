package paramfilter

import (
	"regexp"
	"strings"
)

// ParamKey is the parsed form of a composite parameter key such as
// "age(>=)".
type ParamKey struct {
	Field    string
	Operator Operator
}

// paramKeyRe matches "<field>(<operator>)". The alternation is built from
// the operator tables so the grammar and the filters always agree on the
// token set. The field portion is captured verbatim and validated later
// against the queryable's selected fields.
var paramKeyRe = regexp.MustCompile(`(.*)\((` + operatorAlternation() + `)\)`)

func operatorAlternation() string {
	tokens := make([]string, 0, len(comparisonOperators)+len(methodOperators))
	for _, op := range comparisonOperators {
		tokens = append(tokens, regexp.QuoteMeta(string(op)))
	}
	for _, op := range methodOperators {
		tokens = append(tokens, regexp.QuoteMeta(string(op)))
	}
	return strings.Join(tokens, "|")
}

// ParseParamKey splits a composite parameter key into its field name and
// operator. It reports false for keys that do not match the grammar; such
// parameters are ignored by the predicate filter.
func ParseParamKey(key string) (ParamKey, bool) {
	m := paramKeyRe.FindStringSubmatch(key)
	if m == nil {
		return ParamKey{}, false
	}
	return ParamKey{Field: m[1], Operator: Operator(m[2])}, true
}
