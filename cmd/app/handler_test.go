package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, body := ts.do(t, http.MethodGet, "/v1/healthcheck", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}

func TestSignupAndSignin(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("signup then signin", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"first_name": "Jane",
			"last_name":  "Doe",
			"email":      "jane@example.com",
			"password":   "pass1234",
		})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "jane@example.com", body["email"])
		assert.NotZero(t, body["id"])

		status, body = ts.do(t, http.MethodPost, "/api/auth/signin", "", map[string]any{
			"email":    "jane@example.com",
			"password": "pass1234",
		})
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"first_name": "Janet",
			"last_name":  "Doe",
			"email":      "jane@example.com",
			"password":   "pass1234",
		})
		assert.Equal(t, http.StatusBadRequest, status)

		errs, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "email")
	})

	t.Run("invalid signup input", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"first_name": "Jane",
			"last_name":  "Doe",
			"email":      "not-an-email",
			"password":   "short",
		})
		assert.Equal(t, http.StatusBadRequest, status)

		errs, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		status, wrongPass := ts.do(t, http.MethodPost, "/api/auth/signin", "", map[string]any{
			"email":    "jane@example.com",
			"password": "wrongpass",
		})
		assert.Equal(t, http.StatusUnauthorized, status)

		status, unknownEmail := ts.do(t, http.MethodPost, "/api/auth/signin", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "pass1234",
		})
		assert.Equal(t, http.StatusUnauthorized, status)

		assert.Equal(t, wrongPass, unknownEmail)
	})

	t.Run("malformed body", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"first_name": "Jane",
			"unknown":    "field",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestBlogLifecycle(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	janeToken := ts.signupAndSignin(t, "Jane", "Doe", "jane@example.com", "pass1234")
	johnToken := ts.signupAndSignin(t, "John", "Smith", "john@example.com", "pass1234")

	var blogPath string

	t.Run("create requires authentication", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPost, "/api/blogs", "", map[string]any{
			"title": "Nope",
			"body":  "body",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("create draft", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, "/api/blogs", janeToken, map[string]any{
			"title":       "My First Post",
			"description": "An introduction",
			"tags":        []string{"go"},
			"body":        "Hello there, this is my first post.",
		})
		require.Equal(t, http.StatusCreated, status)

		assert.Equal(t, "draft", body["state"])
		assert.Equal(t, float64(0), body["read_count"])
		assert.Equal(t, float64(1), body["reading_time"])

		author, ok := body["author"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Jane", author["first_name"])

		id, ok := body["id"].(float64)
		require.True(t, ok)
		blogPath = "/api/blogs/" + itoa(int64(id))
	})

	t.Run("duplicate title", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPost, "/api/blogs", janeToken, map[string]any{
			"title": "My First Post",
			"body":  "different body",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("draft hidden from anonymous and other users", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodGet, blogPath, "", nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = ts.do(t, http.MethodGet, blogPath, johnToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner reads own draft", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, blogPath, janeToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "draft", body["state"])
		assert.Equal(t, float64(1), body["read_count"])
	})

	t.Run("non-owner cannot update or publish", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPut, blogPath, johnToken, map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = ts.do(t, http.MethodPost, blogPath+"/publish", johnToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("missing blog yields 404 even for a would-be non-owner", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPut, "/api/blogs/999999", johnToken, map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("owner publishes", func(t *testing.T) {
		status, body := ts.do(t, http.MethodPost, blogPath+"/publish", janeToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "published", body["state"])
	})

	t.Run("published blog is readable and counts reads", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, blogPath, "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), body["read_count"])

		status, body = ts.do(t, http.MethodGet, blogPath, johnToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["read_count"])
	})

	t.Run("owner updates body and reading time follows", func(t *testing.T) {
		longBody := ""
		for i := 0; i < 401; i++ {
			longBody += "word "
		}

		status, body := ts.do(t, http.MethodPut, blogPath, janeToken, map[string]any{
			"body": longBody,
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["reading_time"])
		assert.Equal(t, "My First Post", body["title"])
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodDelete, blogPath, johnToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner deletes", func(t *testing.T) {
		status, body := ts.do(t, http.MethodDelete, blogPath, janeToken, nil)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Nil(t, body)

		status, _ = ts.do(t, http.MethodGet, blogPath, janeToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("invalid id parameter", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodGet, "/api/blogs/abc", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestListEndpoints(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	janeToken := ts.signupAndSignin(t, "Jane", "Doe", "jane@example.com", "pass1234")

	status, published := ts.do(t, http.MethodPost, "/api/blogs", janeToken, map[string]any{
		"title": "Published Post",
		"body":  "visible to everyone",
	})
	require.Equal(t, http.StatusCreated, status)

	publishPath := "/api/blogs/" + itoa(int64(published["id"].(float64))) + "/publish"
	status, _ = ts.do(t, http.MethodPost, publishPath, janeToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodPost, "/api/blogs", janeToken, map[string]any{
		"title": "Draft Post",
		"body":  "only for me",
	})
	require.Equal(t, http.StatusCreated, status)

	t.Run("anonymous list sees published only", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs", "", nil)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, float64(1), body["total"])
		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Published Post", items[0].(map[string]any)["title"])
	})

	t.Run("anonymous draft filter is overridden", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs?state=draft", "", nil)
		require.Equal(t, http.StatusOK, status)

		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "published", items[0].(map[string]any)["state"])
	})

	t.Run("authenticated caller may filter by draft", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs?state=draft", janeToken, nil)
		require.Equal(t, http.StatusOK, status)

		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Draft Post", items[0].(map[string]any)["title"])
	})

	t.Run("search by title", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs?search=published", "", nil)
		require.Equal(t, http.StatusOK, status)

		items := body["items"].([]any)
		require.Len(t, items, 1)
	})

	t.Run("own list requires authentication", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodGet, "/api/blogs/me/list", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("own list includes drafts", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs/me/list", janeToken, nil)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, float64(2), body["total"])
		items := body["items"].([]any)
		assert.Len(t, items, 2)
	})

	t.Run("pagination echoes page and limit", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs/me/list?page=2&limit=1", janeToken, nil)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, float64(2), body["page"])
		assert.Equal(t, float64(1), body["limit"])
		items := body["items"].([]any)
		assert.Len(t, items, 1)
	})

	t.Run("malformed page falls back to default", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/blogs?page=abc", "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), body["page"])
	})
}
