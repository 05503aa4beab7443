package paramfilter

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// OrderingKey is the reserved parameter carrying the ordering spec.
const OrderingKey = "ordering"

var jsoniterForParams = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// ParamsFromJSON decodes a flat JSON object into the parameter map and the
// optional ordering spec. Non-string members are skipped rather than
// rejected: the predicate filter ignores anything it does not understand,
// and decoding follows suit.
func ParamsFromJSON(data []byte) (map[string]string, *string, error) {
	var raw map[string]any
	if err := jsoniterForParams.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "unmarshal params")
	}

	params := make(map[string]string, len(raw))
	var ordering *string
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if key == OrderingKey {
			ordering = &s
			continue
		}
		params[key] = s
	}
	return params, ordering, nil
}
