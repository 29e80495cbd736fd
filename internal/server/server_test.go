package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPages(t *testing.T) {
	app, _ := newTestApp(t)

	for _, tc := range []struct {
		path string
		page string
	}{
		{"/about", "about"},
		{"/contact", "contact"},
		{"/register", "register"},
		{"/login", "login"},
	} {
		resp := doGet(t, app, tc.path)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.page, decodeBody(t, resp)["page"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGet(t, app, "/health/live")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", decodeBody(t, resp)["status"])

	resp = doGet(t, app, "/health/ready")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])

	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "healthy", checks["redis"])
}

func TestFlashMessage_IsOneShot(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doForm(t, app, "/register", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
		"name":     {"Alice"},
	})
	flash := responseCookie(resp, "flash")
	require.NotNil(t, flash)

	// First page load renders the message and clears the cookie.
	resp = doGet(t, app, "/", flash)
	body := decodeBody(t, resp)
	message := body["flash"].(map[string]any)
	assert.Equal(t, "success", message["category"])

	cleared := responseCookie(resp, "flash")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Without the cookie the message is gone.
	body = decodeBody(t, doGet(t, app, "/"))
	assert.Nil(t, body["flash"])
}

func TestSetupMiddleware_CORSPreflight(t *testing.T) {
	_, srv := newTestApp(t)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	// A plain request flows through the whole chain, limiter included.
	resp = doGet(t, app, "/health/live")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionIdentity_TagsRequest(t *testing.T) {
	app, srv := newTestApp(t)
	admin := registerUser(t, app, "admin@example.com", "secret", "Admin")

	app.Get("/whoami", srv.sessionIdentity(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})

	body := decodeBody(t, doGet(t, app, "/whoami", admin))
	assert.Equal(t, float64(1), body["user_id"], "a valid session should tag the request")

	body = decodeBody(t, doGet(t, app, "/whoami"))
	assert.Nil(t, body["user_id"], "anonymous requests carry no tag")
}

func TestEmptyBlog_ListsNoPosts(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGet(t, app, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "index", body["page"])
	assert.Empty(t, body["posts"])
}
