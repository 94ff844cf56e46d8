package schema

import (
	"reflect"
	"testing"
)

func TestInfer(t *testing.T) {
	t.Parallel()
	got := Infer(map[string]any{
		"id":    float64(12),
		"ratio": 0.5,
		"name":  "alice",
		"ok":    true,
		"tags":  []any{"a", "b"},
	})
	if got["type"] != "object" {
		t.Fatalf("type: got %v", got["type"])
	}
	props := got["properties"].(map[string]any)
	for name, want := range map[string]string{
		"id":    "integer",
		"ratio": "number",
		"name":  "string",
		"ok":    "boolean",
		"tags":  "array",
	} {
		p := props[name].(Node)
		if p["type"] != want {
			t.Errorf("%s: got %v, want %v", name, p["type"], want)
		}
	}
	if d := props["id"].(Node)["description"]; d != "12" {
		t.Errorf("id literal: got %v", d)
	}
	if d := props["name"].(Node)["description"]; d != `"alice"` {
		t.Errorf("name literal: got %v", d)
	}
	items := props["tags"].(Node)["items"].(Node)
	if items["type"] != "string" {
		t.Errorf("tags items: got %v", items["type"])
	}
	// Example objects carry no optionality signal, so every key is required.
	want := []any{"id", "name", "ok", "ratio", "tags"}
	if !reflect.DeepEqual(got["required"], want) {
		t.Errorf("required: got %v, want %v", got["required"], want)
	}
}

func TestInfer_Null(t *testing.T) {
	t.Parallel()
	if got := Infer(nil); got["type"] != "null" {
		t.Fatalf("got %v", got["type"])
	}
}

func TestInferMock(t *testing.T) {
	t.Parallel()
	got := InferMock(map[string]any{
		"count|+1": "@integer(1, 100)",
		"score":    "@float(0, 1, 2, 2)",
		"enabled":  "@boolean",
		"name":     "@cname",
		"plain":    "hello",
	})
	props := got["properties"].(map[string]any)
	if _, stale := props["count|+1"]; stale {
		t.Fatalf("rule suffix not stripped from key")
	}
	for name, want := range map[string]string{
		"count":   "integer",
		"score":   "integer", // placeholder value 1 infers as integer
		"enabled": "boolean",
		"name":    "string",
		"plain":   "string",
	} {
		p, ok := props[name].(Node)
		if !ok {
			t.Fatalf("%s missing: %v", name, props)
		}
		if p["type"] != want {
			t.Errorf("%s: got %v, want %v", name, p["type"], want)
		}
	}
	// Unknown directives pass through as their literal text.
	if d := props["name"].(Node)["description"]; d != `"@cname"` {
		t.Errorf("unknown directive literal: got %v", d)
	}
}

func TestWrapUnwrapDataKey(t *testing.T) {
	t.Parallel()
	inner := Node{"type": "string"}
	wrapped := WrapDataKey(inner, "data", "list")
	if wrapped["type"] != "object" {
		t.Fatalf("wrap type: got %v", wrapped["type"])
	}
	got := UnwrapDataKey(wrapped, "data", "list")
	if !reflect.DeepEqual(got, inner) {
		t.Fatalf("round trip: got %#v", got)
	}
}

func TestUnwrapDataKey_MissingPathKeepsSchema(t *testing.T) {
	t.Parallel()
	node := Node{
		"type": "object",
		"properties": map[string]any{
			"result": map[string]any{"type": "string"},
		},
	}
	got := UnwrapDataKey(node, "data")
	if !reflect.DeepEqual(got, node) {
		t.Fatalf("missing path should keep schema: got %#v", got)
	}
}
