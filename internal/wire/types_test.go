package wire

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtend(t *testing.T) {
	t.Parallel()
	raw := RawInterface{ID: 5, Method: "GET", Path: "/pet//list/"}
	got := Extend(raw, 11, Category{ID: 7, Name: "pets"})
	if !reflect.DeepEqual(got.PathSegments, []string{"pet", "list"}) {
		t.Errorf("segments: %v", got.PathSegments)
	}
	if got.ProjectID != 11 || got.CategoryID != 7 || got.CategoryName != "pets" {
		t.Errorf("derived fields: %+v", got)
	}
	if got.ID != 5 {
		t.Errorf("raw fields lost: %+v", got)
	}
}

func TestRawInterface_Decode(t *testing.T) {
	t.Parallel()
	payload := `{
		"_id": 3,
		"catid": 7,
		"method": "POST",
		"path": "/user/create",
		"req_body_type": "json",
		"req_body_other": "{\"a\":1}",
		"req_body_is_json_schema": false,
		"res_body_type": "json-schema",
		"res_body": "{}",
		"req_query": [{"name": "q", "required": "1"}],
		"req_params": [{"name": "id"}]
	}`
	var itf RawInterface
	if err := json.Unmarshal([]byte(payload), &itf); err != nil {
		t.Fatal(err)
	}
	if itf.ID != 3 || itf.CatID != 7 {
		t.Errorf("ids: %+v", itf)
	}
	if itf.ReqBodyType != RequestBodyJSON || itf.ResBodyType != ResponseBodyJSONSchema {
		t.Errorf("discriminators: %+v", itf)
	}
	if len(itf.ReqQuery) != 1 || itf.ReqQuery[0].Required != "1" {
		t.Errorf("query: %+v", itf.ReqQuery)
	}
	if len(itf.ReqParams) != 1 || itf.ReqParams[0].Name != "id" {
		t.Errorf("params: %+v", itf.ReqParams)
	}
}
