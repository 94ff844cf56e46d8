package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourorg/tsclientgen/internal/wire"
)

func canonicalTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/project/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"errcode": 0,
			"data":    wire.Project{ID: 42, Name: "Demo"},
		})
	})
	mux.HandleFunc("/api/plugin/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"errcode": 0,
			"data": []wire.Category{{
				ID:   7,
				Name: "pets",
				List: []wire.RawInterface{{
					ID:          1,
					CatID:       7,
					Method:      "GET",
					Path:        "/pet/list",
					ResBodyType: wire.ResponseBodyJSON,
					ResBody:     `{"data": {"total": 1}}`,
				}},
			}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writePipelineConfig(t *testing.T, serverURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tsclientgen.yaml")
	content := fmt.Sprintf(`
dataKey: data
servers:
  - type: yapi
    serverUrl: %s
    projects:
      - token: tok
        categories:
          - id: 0
`, serverURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	prev := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = prev }()
	fn()
	w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunGenerate_WritesModules(t *testing.T) {
	t.Parallel()
	srv := canonicalTestServer(t)
	outBase := t.TempDir()

	err := runGenerate(context.Background(), &GenerateConfig{
		ConfigPath: writePipelineConfig(t, srv.URL),
		OutBase:    outBase,
	})
	if err != nil {
		t.Fatal(err)
	}

	module, err := os.ReadFile(filepath.Join(outBase, "src/api/pets/index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(module)
	for _, want := range []string{
		"// Generated by tsclientgen. Do not edit.",
		"import { request } from './request'",
		"export const getPetListApi",
		"dataKey: ['data'],",
		"total: number",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("missing %q in:\n%s", want, content)
		}
	}
	if _, err := os.Stat(filepath.Join(outBase, "src/api/pets/request.ts")); err != nil {
		t.Errorf("shared request file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outBase, "src/api/index.ts")); err != nil {
		t.Errorf("aggregating index missing: %v", err)
	}
}

func TestRunGenerate_DryRun(t *testing.T) {
	srv := canonicalTestServer(t)
	outBase := t.TempDir()

	out := captureStdout(t, func() {
		err := runGenerate(context.Background(), &GenerateConfig{
			ConfigPath: writePipelineConfig(t, srv.URL),
			OutBase:    outBase,
			DryRun:     true,
		})
		if err != nil {
			t.Error(err)
		}
	})

	if !strings.Contains(out, "Planned writes") {
		t.Errorf("plan header missing:\n%s", out)
	}
	if !strings.Contains(out, "src/api/pets/index.ts") {
		t.Errorf("planned module missing:\n%s", out)
	}
	entries, err := os.ReadDir(outBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote files: %v", entries)
	}
}

func TestRunGenerate_MissingConfig(t *testing.T) {
	t.Parallel()
	err := runGenerate(context.Background(), &GenerateConfig{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "tsclientgen init") {
		t.Fatalf("err = %v", err)
	}
}
