package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository/repotest"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

func newProtectedApp(t *testing.T) (*fiber.App, *TokenManager, *domain.User, *domain.User) {
	t.Helper()
	users := repotest.NewUserStore()
	citizen := &domain.User{Name: "Asha", Email: "asha@example.com", Role: domain.RoleCitizen}
	admin := &domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(context.Background(), citizen))
	require.NoError(t, users.Create(context.Background(), admin))

	tokens := NewTokenManager("secret", 60)
	mw := NewAuthMiddleware(tokens, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), ok)
	app.Get("/users/:userId", mw.Handle, RequireSelfOrAdmin("userId"), ok)
	app.Get("/any", mw.Handle, RequireAnyRole(), ok)
	return app, tokens, citizen, admin
}

func call(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMiddlewareAndRoles(t *testing.T) {
	app, tokens, citizen, admin := newProtectedApp(t)
	citizenToken, _, err := tokens.GenerateToken(citizen.Email, citizen.Role)
	require.NoError(t, err)
	adminToken, _, err := tokens.GenerateToken(admin.Email, admin.Role)
	require.NoError(t, err)
	ghostToken, _, err := tokens.GenerateToken("ghost@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/any", ""))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/any", "not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/any", ghostToken))
	assert.Equal(t, http.StatusNoContent, call(t, app, "/any", citizenToken))

	assert.Equal(t, http.StatusForbidden, call(t, app, "/admin", citizenToken))
	assert.Equal(t, http.StatusNoContent, call(t, app, "/admin", adminToken))

	assert.Equal(t, http.StatusNoContent, call(t, app, "/users/"+citizen.ID, citizenToken))
	assert.Equal(t, http.StatusForbidden, call(t, app, "/users/"+admin.ID, citizenToken))
	assert.Equal(t, http.StatusNoContent, call(t, app, "/users/"+citizen.ID, adminToken))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = BearerToken("Basic abc")
	assert.Error(t, err)
	_, err = BearerToken("")
	assert.Error(t, err)
}
