package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/config"
	"github.com/hackry/mymlhmock/internal/reqid"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Listen = "127.0.0.1:0"
	cfg.ClientID = "client_id"
	cfg.ClientSecret = "client_secret"
	cfg.CallbackURLs = []string{"https://app.test/auth/callback"}

	s, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ClientID = "client_id"
	// No client secret.
	_, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)

	// Serve one request so the counters have something to report.
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mymlhmock_http_requests_total")
}

func TestMountedProviderRoutes(t *testing.T) {
	s := testServer(t)

	authorize := "/oauth/authorize?client_id=client_id&response_type=code" +
		"&redirect_uri=" + url.QueryEscape("https://app.test/auth/callback")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, authorize, nil))

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.NotEmpty(t, loc.Query().Get("code"))
}

func TestRun_ServesAndShutsDown(t *testing.T) {
	s := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	// Give Run a moment to bind before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestEndToEndFlowOverListener(t *testing.T) {
	cfg := config.Default()
	cfg.ClientID = "client_id"
	cfg.ClientSecret = "client_secret"
	cfg.CallbackURLs = []string{"https://app.test/auth/callback"}

	s, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/oauth/authorize?client_id=client_id" +
		"&response_type=code&redirect_uri=" +
		url.QueryEscape("https://app.test/auth/callback"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	code := loc.Query().Get("code")
	require.Len(t, code, 16)

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {"client_id"},
		"client_secret": {"client_secret"},
		"code":          {code},
		"redirect_uri":  {"https://app.test/auth/callback"},
	}
	resp, err = client.Post(ts.URL+"/oauth/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(body, &token))
	require.Len(t, token.AccessToken, 64)

	resp, err = client.Get(fmt.Sprintf("%s/api/v2/user.json?access_token=%s",
		ts.URL, token.AccessToken))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "OK", profile.Status)
	assert.Equal(t, "Jane", profile.Data["first_name"])
}
