// Package synth turns normalized schemas into named TypeScript type
// declarations and reconciles the different shapes a source may declare a
// request or response body in.
package synth

import (
	"fmt"
	"strings"

	"github.com/yourorg/tsclientgen/internal/schema"
	"github.com/yourorg/tsclientgen/internal/tscompile"
	"github.com/yourorg/tsclientgen/internal/wire"
)

// placeholderName is compiled in place of the real type name and substituted
// afterwards, sidestepping the compiler's own name sanitization.
const placeholderName = "CodegenPlaceholderType"

// UnknownType marks a schema whose shape could not be determined; it
// synthesizes to an any-equivalent alias.
const UnknownType = "unknown"

// Synthesize renders a named type declaration for the schema. The input is
// deep-cloned first; synthesis never mutates the caller's copy.
func Synthesize(node schema.Node, typeName string, typeOverrides map[string]string) (string, error) {
	if typeName == "" {
		return "", fmt.Errorf("synth: empty type name")
	}
	if len(node) == 0 {
		return "export interface " + typeName + " {}", nil
	}
	if t, _ := node["type"].(string); t == UnknownType {
		return "export type " + typeName + " = any", nil
	}

	clone := schema.Clone(node)
	clone = schema.ResolveReferences(clone)
	clone = schema.ForSynthesis(clone, typeOverrides)

	out, err := tscompile.Compile(clone, placeholderName, tscompile.Options{})
	if err != nil {
		return "", fmt.Errorf("synth: compile %s: %w", typeName, err)
	}
	return strings.ReplaceAll(out, placeholderName, typeName), nil
}

// RequestSchema reconciles the three request-body shapes a source may
// declare (form-field list, JSON Schema document, literal example payload)
// into one object schema, then merges the declared query and path
// parameters into it by key. Path parameters are always forced required.
func RequestSchema(itf wire.ExtendedInterface, typeOverrides map[string]string) (schema.Node, error) {
	var body schema.Node
	switch itf.ReqBodyType {
	case wire.RequestBodyForm:
		body = schema.FormToSchema(itf.ReqBodyForm)
	default:
		raw := strings.TrimSpace(itf.ReqBody)
		if raw == "" {
			body = schema.Node{"type": "object", "properties": map[string]any{}}
			break
		}
		value, err := schema.ParseLoose([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("synth: parse request body of %s %s: %w", itf.Method, itf.Path, err)
		}
		if itf.ReqBodyIsJSONSchema {
			obj, _ := value.(map[string]any)
			body = schema.Normalize(obj, typeOverrides)
		} else {
			body = schema.Infer(value)
		}
	}
	if t, _ := body["type"].(string); t != "object" {
		// Non-object bodies cannot carry parameters; wrap them away.
		body = schema.Node{"type": "object", "properties": map[string]any{}}
	}

	body = schema.MergeObjectSchemas(body, schema.QueryToSchema(itf.ReqQuery))
	body = schema.MergeObjectSchemas(body, schema.PathParamsToSchema(itf.ReqParams))
	return body, nil
}

// ResponseSchema derives the response schema honoring the declared body
// discriminator, then unwraps the configured data key path.
func ResponseSchema(itf wire.ExtendedInterface, dataKey []string, typeOverrides map[string]string) (schema.Node, error) {
	raw := strings.TrimSpace(itf.ResBody)
	if raw == "" {
		return schema.Node{}, nil
	}
	value, err := schema.ParseLoose([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("synth: parse response body of %s %s: %w", itf.Method, itf.Path, err)
	}
	obj, _ := value.(map[string]any)

	var node schema.Node
	switch {
	case itf.ResBodyType == wire.ResponseBodyJSONSchema || itf.ResBodyIsJSONSchema:
		node = schema.Normalize(obj, typeOverrides)
	case itf.ResBodyType == wire.ResponseBodyMockJS:
		if obj == nil {
			node = schema.Infer(value)
		} else {
			node = schema.InferMock(obj)
		}
	default:
		node = schema.Infer(value)
	}
	return schema.UnwrapDataKey(node, dataKey...), nil
}

// IsBinaryResponse flags a file-download endpoint purely from its declared
// response schema: an object whose content is an octet stream or wildcard
// media type. Best-effort; sources rarely declare this explicitly.
func IsBinaryResponse(node schema.Node) bool {
	if node == nil {
		return false
	}
	if t, _ := node["type"].(string); t != "object" {
		return false
	}
	content, _ := node["content"].(string)
	return content == "application/octet-stream" || content == "*/*"
}
