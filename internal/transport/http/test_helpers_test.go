package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/auth"
	"github.com/vovakirdan/presence-server/internal/config"
	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/identity"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
)

type testEnv struct {
	router   *gin.Engine
	sessions *auth.Service
	cfg      config.Config
}

func newTestEnv(t *testing.T, opts ...core.RegistryOption) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, nil, opts...)
}

func newTestEnvWithConfig(t *testing.T, tweak func(*config.Config), opts ...core.RegistryOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	cfg.SessionSecret = "test-secret"
	if tweak != nil {
		tweak(&cfg)
	}

	key, err := auth.DeriveKey(cfg.SessionSecret)
	if err != nil {
		t.Fatalf("derive key: %v", err)
	}
	sessions := auth.NewService(&auth.JWTConfig{Secret: key, Issuer: "test", TTL: time.Hour})

	svc := rooms.New(core.NewRegistry(opts...), core.NewHub(), nil, &logger)
	router := NewRouter(svc, sessions, identity.NewResolver(nil), &cfg, &logger)

	return &testEnv{router: router, sessions: sessions, cfg: cfg}
}

// testClient keeps the session cookie between requests, like a browser.
type testClient struct {
	t      *testing.T
	env    *testEnv
	cookie *http.Cookie
}

func (e *testEnv) client(t *testing.T) *testClient {
	return &testClient{t: t, env: e}
}

func (tc *testClient) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	tc.t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}

	resp := httptest.NewRecorder()
	tc.env.router.ServeHTTP(resp, req)

	for _, c := range resp.Result().Cookies() {
		if c.Name == tc.env.cfg.SessionCookie {
			tc.cookie = c
		}
	}
	return resp
}

func (tc *testClient) form(path, body string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, path, "application/x-www-form-urlencoded", body)
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodGet, path, "", "")
}
