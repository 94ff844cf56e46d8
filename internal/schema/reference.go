package schema

import (
	"path"
	"strings"
)

// refKey marks a node that was rewritten into an explicit type reference.
// Its value is the []string of property segments, addressed from the root of
// the declaration being compiled.
const refKey = "tsRef"

const refPrefix = "&"

// refRawKey carries verbatim type text straight through to the compiler,
// e.g. the file-upload type of form fields.
const refRawKey = "tsType"

// RawTSType reports whether node carries verbatim type text.
func RawTSType(node Node) (string, bool) {
	s, ok := node[refRawKey].(string)
	return s, ok && s != ""
}

// ResolveReferences rewrites the path-based type-reference syntax into
// explicit reference nodes. A node whose title (or, absent that,
// description) starts with "&" is replaced by a reference to the node at the
// given path, resolved POSIX-style against the node's own position in the
// tree. Run before ForSynthesis, which strips titles.
func ResolveReferences(node Node) Node {
	resolveRefs(node, nil, 0)
	return node
}

func resolveRefs(node Node, pos []string, depth int) {
	if node == nil || depth > maxDepth {
		return
	}
	if rel, ok := referenceTarget(node); ok {
		segments := resolveRefPath(pos, rel)
		for k := range node {
			delete(node, k)
		}
		node[refKey] = segments
		return
	}
	if props, ok := node["properties"].(map[string]any); ok {
		for _, key := range sortedKeys(props) {
			if child, ok := props[key].(map[string]any); ok {
				resolveRefs(child, append(append([]string(nil), pos...), key), depth+1)
			}
		}
	}
	switch items := node["items"].(type) {
	case map[string]any:
		// An array element addresses the same position as the array itself.
		resolveRefs(items, pos, depth+1)
	case []any:
		for _, it := range items {
			if child, ok := it.(map[string]any); ok {
				resolveRefs(child, pos, depth+1)
			}
		}
	}
	for _, comb := range []string{"oneOf", "anyOf", "allOf"} {
		if list, ok := node[comb].([]any); ok {
			for _, it := range list {
				if child, ok := it.(map[string]any); ok {
					resolveRefs(child, pos, depth+1)
				}
			}
		}
	}
}

func referenceTarget(node Node) (string, bool) {
	if title, ok := node["title"].(string); ok && strings.HasPrefix(title, refPrefix) {
		return strings.TrimPrefix(title, refPrefix), true
	}
	if desc, ok := node["description"].(string); ok && strings.HasPrefix(desc, refPrefix) {
		return strings.TrimPrefix(desc, refPrefix), true
	}
	return "", false
}

// resolveRefPath resolves rel against the node's position using POSIX path
// semantics ("." / ".." / absolute "/"), yielding root-relative segments.
func resolveRefPath(pos []string, rel string) []string {
	base := "/" + strings.Join(pos, "/")
	var abs string
	if strings.HasPrefix(rel, "/") {
		abs = path.Clean(rel)
	} else {
		abs = path.Join(base, rel)
	}
	abs = strings.Trim(abs, "/")
	if abs == "" || abs == "." {
		return nil
	}
	return strings.Split(abs, "/")
}

// ReferenceSegments reports whether node is an explicit reference and, if
// so, its path segments.
func ReferenceSegments(node Node) ([]string, bool) {
	v, ok := node[refKey]
	if !ok {
		return nil, false
	}
	switch segs := v.(type) {
	case []string:
		return segs, true
	case []any:
		out := make([]string, 0, len(segs))
		for _, s := range segs {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out, true
	}
	return nil, false
}
