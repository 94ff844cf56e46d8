// Package schema implements the JSON Schema normalization engine: recursive
// canonicalization of heterogeneous schema input, repair of known
// malformations, example-to-schema inference, and the path-based
// type-reference syntax used to point one type at another.
package schema

import (
	"encoding/json"
	"sort"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"
)

// Node is a JSON-Schema-shaped tree node. Normalization mutates nodes in
// place, so callers hand over ownership (or Clone first).
type Node = map[string]any

// maxDepth bounds recursive traversal. Reference removal is expected to have
// happened upstream; a genuinely cyclic graph is cut off at this depth
// instead of recursing forever.
const maxDepth = 64

// Clone returns a deep copy of the node so normalization cannot leak
// mutations back into the source interface definition.
func Clone(node Node) Node {
	if node == nil {
		return nil
	}
	out, ok := deepcopy.Copy(node).(map[string]any)
	if !ok {
		return Node{}
	}
	return out
}

// ParseLoose decodes a JSON payload leniently: strict JSON first, then YAML,
// which accepts the JSON5-ish relaxations (unquoted keys, single quotes)
// that hand-written example payloads tend to contain.
func ParseLoose(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err == nil {
		return v, nil
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeYAMLValue(v), nil
}

// ParseLooseObject is ParseLoose narrowed to an object payload.
func ParseLooseObject(data []byte) (Node, error) {
	v, err := ParseLoose(data)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return Node{}, nil
}

// normalizeYAMLValue rewrites yaml.v3's map[any]any trees into the
// map[string]any shape the rest of the pipeline works with.
func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, e := range val {
			val[k] = normalizeYAMLValue(e)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeYAMLValue(e)
			}
		}
		return out
	case []any:
		for i, e := range val {
			val[i] = normalizeYAMLValue(e)
		}
		return val
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
