package schema

import (
	"encoding/json"
	"math"
	"strings"
)

// Infer derives a JSON Schema from a literal example payload. Leaf values
// are annotated with a description holding their literal JSON
// representation, so the example survives into the generated declaration.
func Infer(value any) Node {
	switch v := value.(type) {
	case nil:
		return Node{"type": "null"}
	case bool:
		return leaf("boolean", v)
	case string:
		return leaf("string", v)
	case float64:
		if v == math.Trunc(v) {
			return leaf("integer", v)
		}
		return leaf("number", v)
	case int:
		return leaf("integer", v)
	case int64:
		return leaf("integer", v)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return leaf("integer", v)
		}
		return leaf("number", v)
	case []any:
		n := Node{"type": "array"}
		if len(v) > 0 {
			n["items"] = Infer(v[0])
		}
		return n
	case map[string]any:
		props := make(map[string]any, len(v))
		required := make([]any, 0, len(v))
		for _, key := range sortedKeys(v) {
			props[key] = Infer(v[key])
			required = append(required, key)
		}
		return Node{
			"type":       "object",
			"properties": props,
			"required":   required,
		}
	default:
		return Node{}
	}
}

func leaf(typ string, value any) Node {
	n := Node{"type": typ}
	if raw, err := json.Marshal(value); err == nil {
		n["description"] = string(raw)
	}
	return n
}

// Generator-name prefixes whose runtime value is numeric or boolean. Only
// the leading name is checked; argument lists vary.
var (
	numericMockRules = []string{"natural", "integer", "float", "increment"}
	booleanMockRules = []string{"boolean", "bool"}
)

// InferMock derives a schema from a mock template. Keys of the form
// "field|rule" have their rule suffix stripped; string values holding a
// generator directive ("@name(...)") are substituted with a
// type-representative placeholder before inference.
func InferMock(template map[string]any) Node {
	return Infer(stripMockRules(template))
}

func stripMockRules(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, e := range v {
			name := key
			if i := strings.Index(key, "|"); i >= 0 {
				name = key[:i]
			}
			out[name] = stripMockRules(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = stripMockRules(e)
		}
		return v
	case string:
		return substituteMockValue(v)
	default:
		return v
	}
}

func substituteMockValue(s string) any {
	if !strings.HasPrefix(s, "@") {
		return s
	}
	name := strings.ToLower(s[1:])
	if i := strings.IndexAny(name, "( "); i >= 0 {
		name = name[:i]
	}
	for _, rule := range numericMockRules {
		if strings.HasPrefix(name, rule) {
			return float64(1)
		}
	}
	for _, rule := range booleanMockRules {
		if strings.HasPrefix(name, rule) {
			return true
		}
	}
	return s
}
