// Package wire defines the canonical shape an API-definition source must
// serve. Native YApi-style servers speak it directly; foreign formats
// (Swagger/OpenAPI) are translated into it by adapters.
package wire

import "strings"

// RequestBodyType discriminates how an interface declares its request body.
type RequestBodyType string

const (
	RequestBodyForm RequestBodyType = "form"
	RequestBodyJSON RequestBodyType = "json"
	RequestBodyRaw  RequestBodyType = "raw"
)

// ResponseBodyType discriminates how an interface declares its response body.
type ResponseBodyType string

const (
	ResponseBodyJSON       ResponseBodyType = "json"
	ResponseBodyJSONSchema ResponseBodyType = "json-schema"
	ResponseBodyMockJS     ResponseBodyType = "mockjs"
	ResponseBodyRaw        ResponseBodyType = "raw"
)

// Project is the descriptor a source serves for one project.
type Project struct {
	ID       int64         `json:"_id"`
	Name     string        `json:"name"`
	Desc     string        `json:"desc"`
	BasePath string        `json:"basepath"`
	Envs     []Environment `json:"env"`
}

// Environment names a deployable domain for a project.
type Environment struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Category groups interfaces inside a project and maps to one output module.
type Category struct {
	ID   int64          `json:"_id"`
	Name string         `json:"name"`
	Desc string         `json:"desc"`
	List []RawInterface `json:"list"`
}

// FormItem is one field of a form-encoded request body.
type FormItem struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // text|file
	Required string `json:"required"`
	Example  string `json:"example"`
	Desc     string `json:"desc"`
}

// QueryItem is one declared query parameter.
type QueryItem struct {
	Name     string `json:"name"`
	Required string `json:"required"`
	Example  string `json:"example"`
	Desc     string `json:"desc"`
}

// PathParamItem is one declared path parameter.
type PathParamItem struct {
	Name    string `json:"name"`
	Example string `json:"example"`
	Desc    string `json:"desc"`
}

// RawInterface is one API endpoint exactly as a source returns it.
// Immutable once fetched within a run.
type RawInterface struct {
	ID                  int64            `json:"_id"`
	CatID               int64            `json:"catid"`
	Method              string           `json:"method"`
	Path                string           `json:"path"`
	Title               string           `json:"title"`
	Tags                []string         `json:"tag"`
	Status              string           `json:"status"`
	ReqBodyType         RequestBodyType  `json:"req_body_type"`
	ReqBodyForm         []FormItem       `json:"req_body_form"`
	ReqBody             string           `json:"req_body_other"`
	ReqBodyIsJSONSchema bool             `json:"req_body_is_json_schema"`
	ResBodyType         ResponseBodyType `json:"res_body_type"`
	ResBody             string           `json:"res_body"`
	ResBodyIsJSONSchema bool             `json:"res_body_is_json_schema"`
	ReqQuery            []QueryItem      `json:"req_query"`
	ReqParams           []PathParamItem  `json:"req_params"`
}

// ExtendedInterface is a RawInterface plus derived fields. Created once per
// interface and read-only afterward.
type ExtendedInterface struct {
	RawInterface

	PathSegments []string
	ProjectID    int64
	CategoryID   int64
	CategoryName string
}

// Extend derives the read-only view used by synthesis. The path is taken
// after any configured prefix stripping.
func Extend(raw RawInterface, projectID int64, cat Category) ExtendedInterface {
	segs := make([]string, 0, 4)
	for _, s := range strings.Split(strings.TrimPrefix(raw.Path, "/"), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return ExtendedInterface{
		RawInterface: raw,
		PathSegments: segs,
		ProjectID:    projectID,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	}
}

// Envelope is the response wrapper every canonical endpoint uses. A non-zero
// Errcode inside a 200 response is still an upstream failure.
type Envelope struct {
	Errcode int    `json:"errcode"`
	Errmsg  string `json:"errmsg"`
}
