package middleware_test

import (
	"net/http/httptest"
	"testing"

	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/internal/testutil"
	"vyaparpro-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, repository.UserRepository, *model.User, *model.User) {
	t.Helper()
	db := testutil.OpenDB(t)
	userRepo := repository.NewUserRepo(db)

	staff := testutil.CreateUser(t, db, "bob", model.RoleStaff)
	viewer := testutil.CreateUser(t, db, "carol", model.RoleViewer)

	app := fiber.New()
	api := app.Group("/api", middleware.RequireAuth(testSecret, userRepo))
	api.Get("/products",
		middleware.RequirePermission(policy.ResourceProduct, policy.ActionRead),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user": middleware.CurrentUser(c).Email})
		})
	api.Post("/products",
		middleware.RequirePermission(policy.ResourceProduct, policy.ActionCreate),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusCreated)
		})

	return app, userRepo, staff, viewer
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, user.ID, user.Email, user.Name, string(user.Role), "vyaparpro-test", 1)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	app, _, staff, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", tokenFor(t, staff)) // no Bearer prefix
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	app, _, staff, _ := newTestApp(t)

	token, err := jwt.Generate("other-secret", staff.ID, staff.Email, staff.Name, string(staff.Role), "vyaparpro-test", 1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	app, userRepo, staff, _ := newTestApp(t)

	token := tokenFor(t, staff)
	require.NoError(t, userRepo.Delete(staff.ID))

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	token, err := jwt.Generate(testSecret, uuid.New(), "ghost@example.com", "Ghost", "staff", "vyaparpro-test", 1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequirePermission(t *testing.T) {
	app, _, staff, viewer := newTestApp(t)

	// Any authenticated role may read.
	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, viewer))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Viewers cannot write.
	req = httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, viewer))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	// Staff can.
	req = httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, staff))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestRequireAuth_RoleChangeTakesEffect(t *testing.T) {
	app, userRepo, staff, _ := newTestApp(t)

	token := tokenFor(t, staff)

	// Demote after the token was issued; the stored role wins.
	staff.Role = model.RoleViewer
	require.NoError(t, userRepo.Update(staff))

	req := httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
