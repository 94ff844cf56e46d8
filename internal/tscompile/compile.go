// Package tscompile compiles a normalized JSON Schema into a TypeScript
// declaration. Output style is fixed: 4-space indent, no semicolons, no
// trailing commas, closed object literals.
package tscompile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yourorg/tsclientgen/internal/schema"
)

// Options tunes rendering. The zero value is the canonical style.
type Options struct {
	// Indent used per nesting level; defaults to four spaces.
	Indent string
}

func (o Options) indent() string {
	if o.Indent == "" {
		return "    "
	}
	return o.Indent
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Compile renders a named type declaration for the given schema. The name is
// sanitized into a valid TypeScript identifier; callers that need an exact
// name compile under a placeholder and substitute afterwards.
func Compile(node schema.Node, name string, opts Options) (string, error) {
	typeName := SanitizeTypeName(name)
	if typeName == "" {
		return "", fmt.Errorf("tscompile: empty type name")
	}
	r := &renderer{opts: opts, root: typeName}

	if isPlainObject(node) {
		body := r.objectBody(node, 1)
		return "export interface " + typeName + " " + body, nil
	}
	return "export type " + typeName + " = " + r.typeExpr(node, 1), nil
}

// SanitizeTypeName strips characters that cannot appear in a TypeScript
// identifier and upper-cases the first letter.
func SanitizeTypeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '$' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return strings.ToUpper(out[:1]) + out[1:]
}

type renderer struct {
	opts Options
	root string
}

func (r *renderer) typeExpr(node schema.Node, level int) string {
	if len(node) == 0 {
		return "any"
	}
	if segs, ok := schema.ReferenceSegments(node); ok {
		return r.referenceExpr(segs)
	}
	if raw, ok := schema.RawTSType(node); ok {
		return raw
	}
	if enum, ok := node["enum"].([]any); ok && len(enum) > 0 {
		return enumExpr(enum)
	}
	for _, comb := range []struct{ key, sep string }{
		{"oneOf", " | "}, {"anyOf", " | "}, {"allOf", " & "},
	} {
		if list, ok := node[comb.key].([]any); ok && len(list) > 0 {
			return r.compositionExpr(list, comb.sep, level)
		}
	}

	switch t := node["type"].(type) {
	case string:
		return r.primitiveExpr(node, t, level)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				single := schema.Node{"type": s}
				if s == "object" || s == "array" {
					single = node
				}
				parts = append(parts, r.primitiveExpr(single, s, level))
			}
		}
		if len(parts) == 0 {
			return "any"
		}
		return strings.Join(dedupe(parts), " | ")
	}
	return "any"
}

func (r *renderer) primitiveExpr(node schema.Node, typ string, level int) string {
	switch typ {
	case "string":
		return "string"
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "null":
		return "null"
	case "array":
		items, ok := node["items"].(map[string]any)
		if !ok {
			return "any[]"
		}
		inner := r.typeExpr(items, level)
		if needsParens(inner) {
			return "(" + inner + ")[]"
		}
		return inner + "[]"
	case "object":
		return r.objectBody(node, level)
	case "any", "unknown":
		return "any"
	default:
		return "any"
	}
}

func (r *renderer) objectBody(node schema.Node, level int) string {
	props, _ := node["properties"].(map[string]any)
	if len(props) == 0 {
		if allowsExtraProperties(node) {
			return "{\n" + strings.Repeat(r.opts.indent(), level) + "[k: string]: any\n" +
				strings.Repeat(r.opts.indent(), level-1) + "}"
		}
		return "{}"
	}
	required := requiredSet(node)
	pad := strings.Repeat(r.opts.indent(), level)
	var b strings.Builder
	b.WriteString("{\n")
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	// Property order is sorted for stable output across runs.
	sort.Strings(keys)
	for _, key := range keys {
		child, ok := props[key].(map[string]any)
		if !ok {
			child = schema.Node{}
		}
		if doc := propertyDoc(child); doc != "" {
			for _, line := range strings.Split(doc, "\n") {
				b.WriteString(pad + line + "\n")
			}
		}
		marker := "?"
		if required[key] {
			marker = ""
		}
		b.WriteString(pad + propertyKey(key) + marker + ": " + r.typeExpr(child, level+1) + "\n")
	}
	if allowsExtraProperties(node) {
		b.WriteString(pad + "[k: string]: any\n")
	}
	b.WriteString(strings.Repeat(r.opts.indent(), level-1) + "}")
	return b.String()
}

func (r *renderer) compositionExpr(list []any, sep string, level int) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		if child, ok := e.(map[string]any); ok {
			parts = append(parts, r.typeExpr(child, level))
		}
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, sep)
}

// referenceExpr renders an explicit type reference as an indexed-access
// chain on the root type, narrowed to non-null once per segment.
func (r *renderer) referenceExpr(segs []string) string {
	expr := r.root
	for _, seg := range segs {
		expr = "NonNullable<" + expr + "['" + seg + "']>"
	}
	return expr
}

func enumExpr(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		parts = append(parts, string(raw))
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(dedupe(parts), " | ")
}

func propertyDoc(node schema.Node) string {
	desc, _ := node["description"].(string)
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	lines := strings.Split(desc, "\n")
	if len(lines) == 1 {
		return "/** " + lines[0] + " */"
	}
	var b strings.Builder
	b.WriteString("/**\n")
	for _, l := range lines {
		b.WriteString(" * " + l + "\n")
	}
	b.WriteString(" */")
	return b.String()
}

func propertyKey(key string) string {
	if identRe.MatchString(key) {
		return key
	}
	raw, _ := json.Marshal(key)
	return string(raw)
}

func requiredSet(node schema.Node) map[string]bool {
	out := map[string]bool{}
	if list, ok := node["required"].([]any); ok {
		for _, e := range list {
			if s, ok := e.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

func isPlainObject(node schema.Node) bool {
	if _, isRef := schema.ReferenceSegments(node); isRef {
		return false
	}
	if _, isRaw := schema.RawTSType(node); isRaw {
		return false
	}
	for _, comb := range []string{"oneOf", "anyOf", "allOf", "enum"} {
		if _, ok := node[comb]; ok {
			return false
		}
	}
	t, _ := node["type"].(string)
	return t == "object"
}

func allowsExtraProperties(node schema.Node) bool {
	switch v := node["additionalProperties"].(type) {
	case bool:
		return v
	case map[string]any:
		return true
	}
	return false
}

func needsParens(expr string) bool {
	return strings.ContainsAny(expr, "|&") && !strings.HasPrefix(expr, "(")
}

func dedupe(parts []string) []string {
	seen := map[string]bool{}
	out := parts[:0]
	for _, p := range parts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
