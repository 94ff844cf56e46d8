package schema

import "github.com/yourorg/tsclientgen/internal/wire"

// FileTSType is the raw type emitted for file-typed form fields. The shared
// request-function module declares it.
const FileTSType = "FileData"

// FormToSchema converts a form-field list into an object schema. Text
// fields become strings; file fields become the special file-typed property.
func FormToSchema(items []wire.FormItem) Node {
	props := make(map[string]any, len(items))
	required := make([]any, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		var field Node
		if item.Type == "file" {
			field = Node{refRawKey: FileTSType}
		} else {
			field = Node{"type": "string"}
		}
		if item.Desc != "" {
			field["description"] = item.Desc
		}
		props[item.Name] = field
		if item.Required == "1" {
			required = append(required, item.Name)
		}
	}
	return Node{"type": "object", "properties": props, "required": required}
}

// QueryToSchema converts declared query parameters into object properties.
func QueryToSchema(items []wire.QueryItem) Node {
	props := make(map[string]any, len(items))
	required := make([]any, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		field := Node{"type": "string"}
		if item.Desc != "" {
			field["description"] = item.Desc
		}
		props[item.Name] = field
		if item.Required == "1" {
			required = append(required, item.Name)
		}
	}
	return Node{"type": "object", "properties": props, "required": required}
}

// PathParamsToSchema converts declared path parameters into object
// properties. Path parameters are always required: the URL cannot be built
// without them.
func PathParamsToSchema(items []wire.PathParamItem) Node {
	props := make(map[string]any, len(items))
	required := make([]any, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		field := Node{"type": "string"}
		if item.Desc != "" {
			field["description"] = item.Desc
		}
		props[item.Name] = field
		required = append(required, item.Name)
	}
	return Node{"type": "object", "properties": props, "required": required}
}

// MergeObjectSchemas merges src's properties into dst by key (src wins) and
// unions the required lists. Both must be object schemas.
func MergeObjectSchemas(dst, src Node) Node {
	if dst == nil {
		return src
	}
	if src == nil {
		return dst
	}
	dstProps, _ := dst["properties"].(map[string]any)
	if dstProps == nil {
		dstProps = map[string]any{}
		dst["properties"] = dstProps
	}
	if srcProps, ok := src["properties"].(map[string]any); ok {
		for _, key := range sortedKeys(srcProps) {
			dstProps[key] = srcProps[key]
		}
	}
	seen := map[string]bool{}
	merged := make([]any, 0)
	appendReq := func(list any) {
		items, ok := list.([]any)
		if !ok {
			return
		}
		for _, e := range items {
			s, ok := e.(string)
			if !ok || seen[s] {
				continue
			}
			if _, exists := dstProps[s]; !exists {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	appendReq(dst["required"])
	appendReq(src["required"])
	dst["required"] = merged
	dst["type"] = "object"
	return dst
}
