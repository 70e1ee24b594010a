package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-admin-portal/internal/model"
	"go-admin-portal/pkg/jwt"
)

type stubTokenRepo struct {
	live map[string]string // username -> live token string
}

func (s *stubTokenRepo) FindByName(name string) (*model.AuthToken, error) {
	if token, ok := s.live[name]; ok {
		return &model.AuthToken{Name: name, Token: token}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTokenRepo) FindLive(name, token string) (*model.AuthToken, error) {
	if s.live[name] == token {
		return &model.AuthToken{Name: name, Token: token}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTokenRepo) Upsert(name, token, providerUserID string) error {
	s.live[name] = token
	return nil
}

func (s *stubTokenRepo) DeleteByName(name string) error {
	delete(s.live, name)
	return nil
}

type stubUserRepo struct {
	users map[string]*model.User // email -> user
}

func (s *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(id uint) (*model.User, error)            { return nil, gorm.ErrRecordNotFound }
func (s *stubUserRepo) FindAll(limit, offset int) ([]model.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) Create(user *model.User) error            { return nil }
func (s *stubUserRepo) Update(user *model.User) error            { return nil }
func (s *stubUserRepo) Delete(id uint) error                     { return nil }
func (s *stubUserRepo) AssignRole(userID, roleID uint) error     { return nil }
func (s *stubUserRepo) CountByRole(roleID uint) (int64, error) { return 0, nil }

func newGateApp(t *testing.T, tokens *stubTokenRepo, users *stubUserRepo) *fiber.App {
	t.Helper()
	manager := jwt.NewManager("test-secret", "test")

	app := fiber.New()
	protected := app.Group("", RequireAuth(tokens, manager))
	protected.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	protected.Post("/admin-op", RequireAdmin(users), func(c *fiber.Ctx) error {
		return c.SendString("done")
	})
	return app
}

func issue(t *testing.T, username string) string {
	t.Helper()
	manager := jwt.NewManager("test-secret", "test")
	token, err := manager.Generate(username, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRequireAuthMissingToken(t *testing.T) {
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{}}, &stubUserRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthBadToken(t *testing.T) {
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{}}, &stubUserRepo{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "not-a-token")
	req.Header.Set("User", "user@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthIdentityMismatch(t *testing.T) {
	token := issue(t, "user@example.com")
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{"user@example.com": token}}, &stubUserRepo{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", token)
	req.Header.Set("User", "someone-else@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthDeadSession(t *testing.T) {
	// Cryptographically valid token whose session row is gone (logged out).
	token := issue(t, "user@example.com")
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{}}, &stubUserRepo{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", token)
	req.Header.Set("User", "user@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthSupersededToken(t *testing.T) {
	oldToken := issue(t, "user@example.com")
	newToken := issue(t, "user@example.com")
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{"user@example.com": newToken}}, &stubUserRepo{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", oldToken)
	req.Header.Set("User", "user@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthHappyPath(t *testing.T) {
	token := issue(t, "user@example.com")
	app := newGateApp(t, &stubTokenRepo{live: map[string]string{"user@example.com": token}}, &stubUserRepo{})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User", "user@example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name     string
		role     *model.Role
		expected int
	}{
		{"superAdmin passes", &model.Role{Name: model.RoleSuperAdmin}, fiber.StatusOK},
		{"admin passes", &model.Role{Name: model.RoleAdmin}, fiber.StatusOK},
		{"guest rejected", &model.Role{Name: model.RoleGuest}, fiber.StatusForbidden},
		{"no role rejected", nil, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := issue(t, "user@example.com")
			tokens := &stubTokenRepo{live: map[string]string{"user@example.com": token}}
			users := &stubUserRepo{users: map[string]*model.User{
				"user@example.com": {Email: "user@example.com", Role: tc.role},
			}}
			app := newGateApp(t, tokens, users)

			req := httptest.NewRequest("POST", "/admin-op", nil)
			req.Header.Set("Authorization", token)
			req.Header.Set("User", "user@example.com")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}
}
