package schema

import "strings"

// primitiveTypes maps legacy and alias primitive names onto the small set of
// schema primitive kinds. Matched case-insensitively.
var primitiveTypes = map[string]string{
	"byte":       "integer",
	"short":      "integer",
	"int":        "integer",
	"long":       "integer",
	"integer":    "integer",
	"float":      "number",
	"double":     "number",
	"bigdecimal": "number",
	"number":     "number",
	"char":       "string",
	"string":     "string",
	"text":       "string",
	"void":       "null",
	"null":       "null",
	"bool":       "boolean",
	"boolean":    "boolean",
	"map":        "object",
	"object":     "object",
	"list":       "array",
	"array":      "array",
}

// Visitor is applied to each node before its children are visited.
type Visitor func(node Node) Node

// Traverse walks a schema tree, applying fn at each node before descending
// into properties, items (single or tuple) and the oneOf/anyOf/allOf
// composition lists. The input is mutated in place and returned.
func Traverse(node Node, fn Visitor) Node {
	return traverse(node, fn, 0)
}

func traverse(node Node, fn Visitor, depth int) Node {
	if node == nil || depth > maxDepth {
		return node
	}
	node = fn(node)

	if props, ok := node["properties"].(map[string]any); ok {
		for _, key := range sortedKeys(props) {
			if child, ok := props[key].(map[string]any); ok {
				props[key] = traverse(child, fn, depth+1)
			}
		}
	}
	switch items := node["items"].(type) {
	case map[string]any:
		node["items"] = traverse(items, fn, depth+1)
	case []any:
		for i, it := range items {
			if child, ok := it.(map[string]any); ok {
				items[i] = traverse(child, fn, depth+1)
			}
		}
	}
	for _, comb := range []string{"oneOf", "anyOf", "allOf"} {
		list, ok := node[comb].([]any)
		if !ok {
			continue
		}
		for i, it := range list {
			if child, ok := it.(map[string]any); ok {
				list[i] = traverse(child, fn, depth+1)
			}
		}
	}
	return node
}

// Normalize canonicalizes a schema tree in place: repairs the
// properties-as-array malformation, strips residual reference markers,
// collapses tuple items to a single representative type, maps legacy
// primitive type names, and trims whitespace from property names and the
// required list. Idempotent on already-normalized input. The override table
// takes precedence over the built-in mapping and is matched
// case-insensitively.
func Normalize(node Node, typeOverrides map[string]string) Node {
	overrides := lowerKeys(typeOverrides)
	return Traverse(node, func(n Node) Node {
		repairPropertiesArray(n)
		delete(n, "$ref")
		delete(n, "$$ref")
		collapseTupleItems(n)
		normalizeType(n, overrides)
		trimPropertyNames(n)
		return n
	})
}

// ForSynthesis prepares an already-normalized schema for type compilation:
// removes title/id so the compiler does not invent type names from them,
// drops array-length constraints and defaults, and closes every object node.
func ForSynthesis(node Node, typeOverrides map[string]string) Node {
	node = Normalize(node, typeOverrides)
	return Traverse(node, func(n Node) Node {
		if _, isRef := n[refKey]; isRef {
			return n
		}
		delete(n, "title")
		delete(n, "id")
		delete(n, "minItems")
		delete(n, "maxItems")
		delete(n, "default")
		if t, _ := n["type"].(string); t == "object" {
			n["additionalProperties"] = false
		}
		return n
	})
}

// repairPropertiesArray rewrites the known malformation where "properties"
// arrives as an array of {name, ...schema} entries instead of a name-keyed
// mapping.
func repairPropertiesArray(n Node) {
	list, ok := n["properties"].([]any)
	if !ok {
		return
	}
	props := make(map[string]any, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, ok := m["name"].(string)
		if !ok || name == "" {
			continue
		}
		sub := make(map[string]any, len(m)-1)
		for k, v := range m {
			if k != "name" {
				sub[k] = v
			}
		}
		props[name] = sub
	}
	n["properties"] = props
}

// collapseTupleItems keeps only the first element of a tuple-typed items
// array. Multi-type tuples are not distinguished downstream.
func collapseTupleItems(n Node) {
	list, ok := n["items"].([]any)
	if !ok {
		return
	}
	if len(list) > 0 {
		n["items"] = list[0]
	} else {
		delete(n, "items")
	}
}

func normalizeType(n Node, overrides map[string]string) {
	switch t := n["type"].(type) {
	case string:
		n["type"] = mapType(t, overrides)
	case []any:
		for i, e := range t {
			if s, ok := e.(string); ok {
				t[i] = mapType(s, overrides)
			}
		}
	}
}

func mapType(t string, overrides map[string]string) string {
	key := strings.ToLower(strings.TrimSpace(t))
	if mapped, ok := overrides[key]; ok {
		return mapped
	}
	if mapped, ok := primitiveTypes[key]; ok {
		return mapped
	}
	return t
}

// trimPropertyNames trims surrounding whitespace from property names and the
// required list, keeping both in sync.
func trimPropertyNames(n Node) {
	if props, ok := n["properties"].(map[string]any); ok {
		for _, key := range sortedKeys(props) {
			trimmed := strings.TrimSpace(key)
			if trimmed != key {
				props[trimmed] = props[key]
				delete(props, key)
			}
		}
	}
	if req, ok := n["required"].([]any); ok {
		for i, e := range req {
			if s, ok := e.(string); ok {
				req[i] = strings.TrimSpace(s)
			}
		}
	}
}

func lowerKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
