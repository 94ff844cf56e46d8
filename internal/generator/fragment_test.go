package generator

import (
	"strings"
	"testing"

	"github.com/yourorg/tsclientgen/internal/config"
	"github.com/yourorg/tsclientgen/internal/wire"
)

func mergedConfig(mutate func(*config.CategoryConfig)) config.Synthetical {
	server := config.ServerConfig{Type: config.ServerYApi, ServerURL: "http://example.test"}
	var cat config.CategoryConfig
	if mutate != nil {
		mutate(&cat)
	}
	return config.Merge(server, "tok", config.ProjectConfig{}, cat)
}

func listPetsInterface() wire.ExtendedInterface {
	return wire.Extend(wire.RawInterface{
		Method:      "GET",
		Path:        "/pet/list",
		Title:       "List pets",
		ResBodyType: wire.ResponseBodyJSON,
		ResBody:     `{"data": {"total": 1}}`,
	}, 11, wire.Category{ID: 101, Name: "pets"})
}

func TestSynthesizeFragment(t *testing.T) {
	t.Parallel()
	code, err := synthesizeFragment(listPetsInterface(), mergedConfig(nil))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"/**\n * List pets\n *\n * Request parameters of GET /pet/list\n */",
		"export interface GetPetListRequestType {}",
		"Response data of GET /pet/list",
		"export interface GetPetListResponseType",
		"export const getPetListApi = (data: GetPetListRequestType) =>",
		"request<GetPetListResponseType>({",
		"method: 'GET',",
		"path: '/pet/list',",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
	if strings.Contains(code, "makeRequestHook") {
		t.Errorf("hook emitted without reactHooks enabled:\n%s", code)
	}
}

func TestSynthesizeFragment_DataKey(t *testing.T) {
	t.Parallel()
	sc := mergedConfig(func(cat *config.CategoryConfig) {
		cat.DataKey = config.StringList{"data"}
	})
	code, err := synthesizeFragment(listPetsInterface(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "dataKey: ['data'],") {
		t.Errorf("data key not forwarded:\n%s", code)
	}
	// The declared type describes the unwrapped payload.
	if !strings.Contains(code, "total: number") {
		t.Errorf("response not unwrapped:\n%s", code)
	}
}

func TestSynthesizeFragment_TypesOnly(t *testing.T) {
	t.Parallel()
	typesOnly := true
	sc := mergedConfig(func(cat *config.CategoryConfig) {
		cat.TypesOnly = &typesOnly
	})
	code, err := synthesizeFragment(listPetsInterface(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(code, "request<") {
		t.Errorf("request function emitted in types-only mode:\n%s", code)
	}
	if !strings.Contains(code, "export interface GetPetListResponseType") {
		t.Errorf("type declarations missing:\n%s", code)
	}
}

func TestSynthesizeFragment_ReactHooks(t *testing.T) {
	t.Parallel()
	sc := mergedConfig(func(cat *config.CategoryConfig) {
		cat.ReactHooks = &config.ReactHooks{Enabled: true}
	})
	code, err := synthesizeFragment(listPetsInterface(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "export const useGetPetListApi = makeRequestHook(getPetListApi)") {
		t.Errorf("hook wrapper missing:\n%s", code)
	}
}

func TestSynthesizeFragment_BinaryResponse(t *testing.T) {
	t.Parallel()
	itf := wire.Extend(wire.RawInterface{
		Method:      "GET",
		Path:        "/report/download",
		ResBodyType: wire.ResponseBodyJSONSchema,
		ResBody:     `{"type":"object","content":"application/octet-stream"}`,
	}, 11, wire.Category{ID: 101, Name: "reports"})

	code, err := synthesizeFragment(itf, mergedConfig(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "export const getReportDownloadApi = () =>") {
		t.Errorf("download function should take no parameters:\n%s", code)
	}
	if !strings.Contains(code, "responseType: 'blob',") {
		t.Errorf("blob response type missing:\n%s", code)
	}
	if strings.Contains(code, "data,") {
		t.Errorf("binary request should not send data:\n%s", code)
	}
}
