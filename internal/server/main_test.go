package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp builds a server against a throwaway sqlite file and an in-process
// Redis, with the full route table mounted.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		Port:      "8460",
		SecretKey: "test-secret-key-for-handler-tests",
		DBDriver:  "sqlite",
		DBPath:    filepath.Join(t.TempDir(), "test.db"),
		Env:       "test",
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return app, srv
}

// doForm issues a form-encoded POST, attaching any cookies given.
func doForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doGet issues a GET, attaching any cookies given.
func doGet(t *testing.T, app *fiber.App, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// responseCookie returns the named cookie set by the response, or nil.
func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// flashMessage decodes the flash cookie a response set, or "" if none.
func flashMessage(t *testing.T, resp *http.Response) string {
	t.Helper()

	cookie := responseCookie(resp, "flash")
	if cookie == nil || cookie.Value == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(cookie.Value)
	require.NoError(t, err)
	return decoded
}

// decodeBody parses a JSON response body into a map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// registerUser signs a user up and returns the session cookie.
func registerUser(t *testing.T, app *fiber.App, email, password, name string) *http.Cookie {
	t.Helper()

	resp := doForm(t, app, "/register", url.Values{
		"email":    {email},
		"password": {password},
		"name":     {name},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	cookie := responseCookie(resp, "session")
	require.NotNil(t, cookie, "registration should log the user in")
	return cookie
}

// createPost publishes a post as the given session and returns its route.
func createPost(t *testing.T, app *fiber.App, session *http.Cookie, title string) {
	t.Helper()

	resp := doForm(t, app, "/new-post", url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"body":     {"Some body text."},
		"img_url":  {"https://example.com/img.jpg"},
	}, session)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}
