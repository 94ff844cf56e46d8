// Package fetch retrieves project descriptors and interface exports from
// servers speaking the canonical wire shape. Fetches are memoized per run:
// a Session deduplicates concurrent requests for the same server+token and
// caches results so interfaces sharing a project never re-issue the call.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yourorg/tsclientgen/internal/wire"
)

// UpstreamError is a failed canonical-endpoint call, carrying the request
// URL and parameters for diagnosis. Upstream failures are fatal to the run;
// there is no automatic retry.
type UpstreamError struct {
	URL     string
	Params  url.Values
	Status  int
	Errcode int
	Errmsg  string
	Cause   error
}

func (e *UpstreamError) Error() string {
	msg := e.Errmsg
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return fmt.Sprintf("upstream: %s (params: %s): %s", e.URL, e.Params.Encode(), msg)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// cacheSize bounds the per-run caches; a run rarely touches more than a
// handful of projects.
const cacheSize = 128

// Session scopes the memoized fetch caches to one generation run. Never
// shared across runs.
type Session struct {
	client   *http.Client
	group    singleflight.Group
	projects *lru.Cache[string, *wire.Project]
	exports  *lru.Cache[string, []wire.Category]
	log      zerolog.Logger
}

// NewSession builds a run-scoped fetch session.
func NewSession(log zerolog.Logger) *Session {
	projects, _ := lru.New[string, *wire.Project](cacheSize)
	exports, _ := lru.New[string, []wire.Category](cacheSize)
	return &Session{
		client:   &http.Client{Timeout: 30 * time.Second},
		projects: projects,
		exports:  exports,
		log:      log,
	}
}

// Project fetches the project descriptor for a token, memoized by
// serverURL+token.
func (s *Session) Project(ctx context.Context, serverURL, token string) (*wire.Project, error) {
	key := "project|" + serverURL + "|" + token
	if cached, ok := s.projects.Get(key); ok {
		return cached, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		var payload struct {
			wire.Envelope
			Data *wire.Project `json:"data"`
		}
		params := url.Values{"token": {token}}
		if err := s.getJSON(ctx, serverURL+"/api/project/get", params, &payload); err != nil {
			return nil, err
		}
		if payload.Data == nil {
			return nil, &UpstreamError{URL: serverURL + "/api/project/get", Params: params, Errmsg: "empty project payload"}
		}
		s.projects.Add(key, payload.Data)
		return payload.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*wire.Project), nil
}

// Export fetches the full category/interface export for a token, memoized
// by serverURL+token.
func (s *Session) Export(ctx context.Context, serverURL, token string) ([]wire.Category, error) {
	key := "export|" + serverURL + "|" + token
	if cached, ok := s.exports.Get(key); ok {
		return cached, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		var payload struct {
			wire.Envelope
			Data []wire.Category `json:"data"`
		}
		params := url.Values{
			"type":   {"json"},
			"status": {"all"},
			"isWiki": {"false"},
			"token":  {token},
		}
		if err := s.getJSON(ctx, serverURL+"/api/plugin/export", params, &payload); err != nil {
			return nil, err
		}
		s.exports.Add(key, payload.Data)
		return payload.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]wire.Category), nil
}

// getJSON issues a GET and decodes the enveloped response. A non-success
// status, a non-JSON body, or a non-zero errcode inside a successful
// response all fail the call.
func (s *Session) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	full := endpoint + "?" + params.Encode()
	s.log.Debug().Str("url", endpoint).Msg("fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return &UpstreamError{URL: endpoint, Params: params, Cause: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return &UpstreamError{URL: endpoint, Params: params, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &UpstreamError{
			URL:    endpoint,
			Params: params,
			Status: resp.StatusCode,
			Errmsg: fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		return &UpstreamError{
			URL:    endpoint,
			Params: params,
			Status: resp.StatusCode,
			Errmsg: fmt.Sprintf("unexpected content type %q", ct),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{URL: endpoint, Params: params, Cause: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &UpstreamError{URL: endpoint, Params: params, Cause: fmt.Errorf("decode: %w", err)}
	}

	// An error code embedded in a successful-status payload is still a failure.
	var env wire.Envelope
	_ = json.Unmarshal(data, &env)
	if env.Errcode != 0 {
		return &UpstreamError{URL: endpoint, Params: params, Status: resp.StatusCode, Errcode: env.Errcode, Errmsg: env.Errmsg}
	}
	return nil
}
