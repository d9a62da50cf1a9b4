package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
	"github.com/shandysiswandi/elasticmail/internal/pkg/hash"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return NewRouter(Config{
		Config:     cfg,
		UUID:       fixedID("cid-1"),
		Hash:       hash.NewHMACSHA256("test"),
		Instrument: instrument.NewNoop(),
		Public:     map[string][]string{http.MethodPost: {"/open"}},
	})
}

func serve(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AdminToken(t *testing.T) {
	r := newTestRouter(t, "app:\n  server:\n    admin_token: s3cret\n")
	r.GET("/private", func(*Request) (any, error) { return map[string]string{"ok": "yes"}, nil })

	rec := serve(r, http.MethodGet, "/private", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/private", "", map[string]string{HeaderAdminToken: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/private", "", map[string]string{HeaderAdminToken: "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"request has been successfully","data":{"ok":"yes"}}`, rec.Body.String())
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))

	rec = serve(r, http.MethodGet, "/private", "", map[string]string{"Authorization": "Bearer s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminTokenNotConfigured(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")
	r.GET("/private", func(*Request) (any, error) { return nil, nil })
	r.POST("/open", func(*Request) (any, error) { return nil, nil })

	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/private", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/open", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "", nil).Code)
}

func TestRouter_ErrorRendering(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")
	r.POST("/open", func(req *Request) (any, error) {
		var body struct {
			Name string `json:"name"`
		}
		if err := req.DecodeBody(&body); err != nil {
			return nil, err
		}
		if body.Name == "panic" {
			panic("boom")
		}
		if body.Name == "plain" {
			return nil, errors.New("plain")
		}
		return nil, goerror.NewInvalidInput(nil, "name", "is wrong")
	})

	rec := serve(r, http.MethodPost, "/open", `{"unknown":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodPost, "/open", `{"name":"x"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Validation error","error":{"name":"is wrong"}}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/open", `{"name":"plain"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(r, http.MethodPost, "/open", `{"name":"panic"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: [\"/open\"]\n")
	r.POST("/open", func(*Request) (any, error) { return nil, nil })

	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodPost, "/open", "", nil).Code)
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/nope", "", nil).Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestNormalizeCID(t *testing.T) {
	assert.Empty(t, normalizeCID("a\nb"))
	assert.Equal(t, "abc", normalizeCID("  abc "))
	assert.Len(t, normalizeCID(strings.Repeat("x", 200)), maxCorrelationIDLen)
}
