// Package swagger adapts Swagger/OpenAPI documents to the canonical wire
// shape by standing up a short-lived local HTTP endpoint for the lifetime
// of one generation run.
package swagger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/yaml"

	"github.com/yourorg/tsclientgen/internal/wire"
)

// Adapter serves a translated document from a loopback listener until
// Close is called.
type Adapter struct {
	project    wire.Project
	categories []wire.Category
	srv        *http.Server
	lis        net.Listener
}

// Start loads a Swagger v2 or OpenAPI v3 document from a file path or
// http(s) URL, translates it, and begins serving the canonical endpoints.
func Start(ctx context.Context, input string) (*Adapter, error) {
	doc, err := load(ctx, input)
	if err != nil {
		return nil, err
	}
	a := &Adapter{}
	a.project, a.categories = translate(doc)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("swagger adapter: listen: %w", err)
	}
	a.lis = lis

	mux := http.NewServeMux()
	mux.HandleFunc("/api/project/get", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, a.project)
	})
	mux.HandleFunc("/api/plugin/export", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, a.categories)
	})
	a.srv = &http.Server{Handler: mux}
	go func() { _ = a.srv.Serve(lis) }()
	return a, nil
}

// ServerURL returns the base URL the adapter serves on.
func (a *Adapter) ServerURL() string {
	return "http://" + a.lis.Addr().String()
}

// Close releases the local endpoint. Always called at the end of a run,
// success or failure.
func (a *Adapter) Close() error {
	return a.srv.Close()
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errcode": 0,
		"errmsg":  "success",
		"data":    data,
	})
}

// load reads the document and converts Swagger v2 to OpenAPI v3 when
// necessary. Validation is permissive: synthesis only needs shapes, not a
// fully valid document.
func load(ctx context.Context, input string) (*openapi3.T, error) {
	raw, err := read(ctx, input)
	if err != nil {
		return nil, err
	}
	var probe map[string]any
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("swagger adapter: parse %s: %w", input, err)
	}
	if v, _ := probe["swagger"].(string); strings.HasPrefix(v, "2.") {
		var v2 openapi2.T
		if err := yaml.Unmarshal(raw, &v2); err != nil {
			return nil, fmt.Errorf("swagger adapter: parse v2 %s: %w", input, err)
		}
		doc, err := openapi2conv.ToV3(&v2)
		if err != nil {
			return nil, fmt.Errorf("swagger adapter: convert v2 to v3: %w", err)
		}
		return doc, nil
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("swagger adapter: load %s: %w", input, err)
	}
	return doc, nil
}

func read(ctx context.Context, input string) ([]byte, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("swagger adapter: fetch %s: %w", input, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("swagger adapter: fetch %s: http %d", input, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("swagger adapter: read %s: %w", input, err)
	}
	return data, nil
}

// translate maps an OpenAPI document onto the canonical project/category/
// interface shape, grouping operations by their first tag.
func translate(doc *openapi3.T) (wire.Project, []wire.Category) {
	project := wire.Project{ID: 1}
	if doc.Info != nil {
		project.Name = doc.Info.Title
		project.Desc = doc.Info.Description
	}
	for _, s := range doc.Servers {
		if s != nil {
			project.Envs = append(project.Envs, wire.Environment{Name: s.Description, Domain: s.URL})
		}
	}

	byTag := map[string][]wire.RawInterface{}
	var nextID int64

	pathKeys := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, p := range pathKeys {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		ops := []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", item.Get}, {"POST", item.Post}, {"PUT", item.Put},
			{"DELETE", item.Delete}, {"PATCH", item.Patch}, {"HEAD", item.Head},
			{"OPTIONS", item.Options},
		}
		for _, pair := range ops {
			if pair.op == nil {
				continue
			}
			nextID++
			itf := translateOperation(nextID, pair.method, p, pair.op)
			tag := "default"
			if len(pair.op.Tags) > 0 && strings.TrimSpace(pair.op.Tags[0]) != "" {
				tag = strings.TrimSpace(pair.op.Tags[0])
			}
			byTag[tag] = append(byTag[tag], itf)
		}
	}

	tags := make([]string, 0, len(byTag))
	for t := range byTag {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	categories := make([]wire.Category, 0, len(tags))
	for i, tag := range tags {
		categories = append(categories, wire.Category{
			ID:   int64(i + 1),
			Name: tag,
			List: byTag[tag],
		})
	}
	for ci := range categories {
		for ii := range categories[ci].List {
			categories[ci].List[ii].CatID = categories[ci].ID
		}
	}
	return project, categories
}

func translateOperation(id int64, method, p string, op *openapi3.Operation) wire.RawInterface {
	itf := wire.RawInterface{
		ID:     id,
		Method: method,
		Path:   p,
		Title:  strings.TrimSpace(op.Summary),
		Tags:   op.Tags,
	}

	for _, pref := range op.Parameters {
		if pref == nil || pref.Value == nil {
			continue
		}
		param := pref.Value
		required := "0"
		if param.Required {
			required = "1"
		}
		switch param.In {
		case "query":
			itf.ReqQuery = append(itf.ReqQuery, wire.QueryItem{Name: param.Name, Required: required, Desc: param.Description})
		case "path":
			itf.ReqParams = append(itf.ReqParams, wire.PathParamItem{Name: param.Name, Desc: param.Description})
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if body := schemaJSON(jsonMedia(op.RequestBody.Value.Content)); body != "" {
			itf.ReqBodyType = wire.RequestBodyJSON
			itf.ReqBody = body
			itf.ReqBodyIsJSONSchema = true
		}
	}

	if op.Responses != nil {
		codes := make([]string, 0, len(op.Responses))
		for code := range op.Responses {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			rref := op.Responses[code]
			if rref == nil || rref.Value == nil {
				continue
			}
			if body := schemaJSON(jsonMedia(rref.Value.Content)); body != "" {
				itf.ResBodyType = wire.ResponseBodyJSONSchema
				itf.ResBody = body
				itf.ResBodyIsJSONSchema = true
				break
			}
		}
	}
	return itf
}

func jsonMedia(content openapi3.Content) *openapi3.SchemaRef {
	if content == nil {
		return nil
	}
	if mt := content.Get("application/json"); mt != nil {
		return mt.Schema
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if content[k] != nil && content[k].Schema != nil {
			return content[k].Schema
		}
	}
	return nil
}

func schemaJSON(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil {
		return ""
	}
	raw, err := json.Marshal(ref.Value)
	if err != nil {
		return ""
	}
	return string(raw)
}
