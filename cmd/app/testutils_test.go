package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sutanlim/blogify/internal/blogservice"
	"github.com/sutanlim/blogify/internal/common"
	"github.com/sutanlim/blogify/internal/userservice"
)

// noopProducer satisfies common.MessageProducer so handler tests do not need a broker.
type noopProducer struct{}

func (noopProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) *application {
	db := common.TestDB("file://../../migrations", t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &application{
		config: &Config{
			Environment:    "testing",
			Version:        "test",
			LimiterEnabled: false,
			LimiterRPS:     2,
			LimiterBurst:   4,
		},
		logger:      logger,
		cache:       common.NewCache(5*time.Minute, 10*time.Minute),
		userService: userservice.NewUserService(db, noopProducer{}, "test-secret", logger),
		blogService: blogservice.NewBlogService(db),
	}
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// do sends a request with an optional JSON body and bearer token and decodes the
// response body into an envelope-ish map. A 204 response yields a nil body.
func (ts *testServer) do(t *testing.T, method, urlPath, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+urlPath, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	if len(raw) == 0 {
		return res.StatusCode, nil
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return res.StatusCode, decoded
}

// signupAndSignin registers a user and returns a valid token for it.
func (ts *testServer) signupAndSignin(t *testing.T, firstName, lastName, email, password string) string {
	t.Helper()

	status, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   password,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.do(t, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return token
}
