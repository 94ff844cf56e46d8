package schema

// Reach follows a property path through nested object schemas and returns
// the sub-schema at that position. If any step of the path does not exist,
// the original schema is returned unchanged; lookup never fails.
func Reach(node Node, keys ...string) Node {
	cur := node
	for _, key := range keys {
		props, ok := cur["properties"].(map[string]any)
		if !ok {
			return node
		}
		next, ok := props[key].(map[string]any)
		if !ok {
			return node
		}
		cur = next
	}
	return cur
}

// WrapDataKey nests a schema under the given property path, producing the
// enveloped shape a server actually responds with. Inverse of UnwrapDataKey
// for the same path.
func WrapDataKey(node Node, keys ...string) Node {
	if len(keys) == 0 {
		return node
	}
	inner := WrapDataKey(node, keys[1:]...)
	return Node{
		"type":       "object",
		"properties": map[string]any{keys[0]: inner},
		"required":   []any{keys[0]},
	}
}

// UnwrapDataKey extracts the sub-schema at the configured response data key.
// Missing paths degrade to the input schema (see Reach).
func UnwrapDataKey(node Node, keys ...string) Node {
	if len(keys) == 0 {
		return node
	}
	return Reach(node, keys...)
}
