package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/fetch"
	"github.com/matzehuels/kundli/pkg/pipeline"
)

const libraChart = `{"rasiChart":{"ascendant":{"sign":"Libra","degree":3},"planets":[
  {"name":"Sun","sign":"Libra","degree":5.2},
  {"name":"Moon","sign":"Scorpio","degree":22.7},
  {"name":"Mars","sign":"Aries","degree":29.6,"retrograde":true},
  {"name":"Saturn","sign":"Virgo","degree":10}
]}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	srv := New(Options{
		Runner: pipeline.NewRunner(c, nil, nil),
		Fetch:  fetch.NewClient(fetch.Options{Retry: cache.RetryPolicy{Attempts: 1}}),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestResolve(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/charts/resolve", libraChart)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Shape string `json:"shape"`
		Chart struct {
			Ascendant struct {
				Sign int `json:"sign"`
			} `json:"ascendant"`
		} `json:"chart"`
		Model struct {
			Planets []struct {
				TargetID string `json:"targetId"`
				House    int    `json:"house"`
			} `json:"planets"`
			SignNumbers []json.RawMessage `json:"signNumbers"`
		} `json:"model"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "rasiChart", body.Shape)
	assert.Equal(t, 7, body.Chart.Ascendant.Sign)
	assert.Len(t, body.Model.SignNumbers, 12)
	require.Len(t, body.Model.Planets, 4)
	houses := []int{body.Model.Planets[0].House, body.Model.Planets[1].House, body.Model.Planets[2].House, body.Model.Planets[3].House}
	assert.Equal(t, []int{1, 2, 7, 12}, houses)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/charts/render?format=svg&palette=dark", libraChart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Render-ID"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	again := post(t, ts.URL+"/v1/charts/render?format=svg&palette=dark", libraChart)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
	assert.NotEqual(t, resp.Header.Get("X-Render-ID"), again.Header.Get("X-Render-ID"))
}

func TestRenderFormats(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
	}{
		{"", "image/svg+xml"},
		{"json", "application/json"},
		{"mp", "application/msgpack"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/charts/render?format="+tt.format, libraChart)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
		})
	}
}

// brokenWriter accepts headers but fails every body write, like a client
// that hung up mid-response.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("client went away")
}

func TestRenderWriteFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	srv := New(Options{
		Runner: pipeline.NewRunner(nil, nil, nil),
		Logger: log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel}),
	})

	w := brokenWriter{httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodPost, "/v1/charts/render?format=svg", strings.NewReader(libraChart))
	srv.Handler().ServeHTTP(w, req)

	renderID := w.Header().Get("X-Render-ID")
	require.NotEmpty(t, renderID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "render response not written")
	assert.Contains(t, logs.String(), "render_id="+renderID)
	assert.Contains(t, logs.String(), "client went away")
}

func TestRenderSynthesized(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/charts/render", `{"meta":{"source":"none"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Chart-Synthesized"))
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"invalid chart data", "/v1/charts/render", `{"planets":[{"name":"Sun","sign":"Foo"}],"ascendant":{"sign":1}}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidChartData},
		{"strict without chart", "/v1/charts/resolve?strict=true", `{"meta":{}}`, http.StatusUnprocessableEntity, errors.ErrCodeNoChartData},
		{"unknown format", "/v1/charts/render?format=gif", libraChart, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad boolean", "/v1/charts/render?strict=maybe", libraChart, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown palette", "/v1/charts/render?palette=neon", libraChart, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed body", "/v1/charts/resolve", `{"planets": [`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"empty body", "/v1/charts/resolve", ``, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad url", "/v1/charts/resolve?url=file:///etc/passwd", ``, http.StatusBadRequest, errors.ErrCodeInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(t, tt.code, decodeError(t, resp).Code)
		})
	}
}

func TestResolveFromURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(libraChart))
	}))
	defer upstream.Close()

	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/charts/resolve?url="+upstream.URL+"/chart", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing := post(t, ts.URL+"/v1/charts/resolve?url="+upstream.URL+"/missing", "")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, missing).Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(context.Canceled))
	assert.Equal(t, http.StatusGatewayTimeout, StatusOf(errors.New(errors.ErrCodeTimeout, "slow")))
	assert.Equal(t, http.StatusBadGateway, StatusOf(errors.New(errors.ErrCodeNetwork, "down")))
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
