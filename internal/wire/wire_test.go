package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/pkg/token"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubUserRepo backs the auth middleware and the profile endpoint.
type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUserRepo) FindAll(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Count(context.Context, string) (int64, error)       { return 0, nil }
func (s *stubUserRepo) Update(context.Context, *entity.User) error         { return nil }
func (s *stubUserRepo) Activate(context.Context, uuid.UUID, string) error  { return nil }
func (s *stubUserRepo) Delete(context.Context, uuid.UUID) error            { return nil }

type stubMailer struct{}

func (stubMailer) Send(string, string, string) error { return nil }

func newTestApp(t *testing.T) (*App, token.Signer, *stubUserRepo) {
	t.Helper()
	users := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	repo := &repository.Repository{User: users}
	config := &utils.Config{
		JWT:  utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Auth: utils.AuthConfig{Secret: "code-secret", ReservedUsername: "me"},
	}
	signer := token.NewSigner(config.JWT)
	app := Wiring(repo, config, signer, stubMailer{}, zap.NewNop())
	return app, signer, users
}

func seedActiveUser(users *stubUserRepo, username string, role entity.Role) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	}
	users.users[user.ID] = user
	return user
}

func TestHealthEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestPutIsMethodNotAllowed(t *testing.T) {
	app, _, _ := newTestApp(t)

	paths := []string{
		"/api/v1/titles/" + uuid.NewString(),
		"/api/v1/titles/" + uuid.NewString() + "/reviews/" + uuid.NewString(),
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "PUT %s", path)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileWithValidToken(t *testing.T) {
	app, signer, users := newTestApp(t)
	user := seedActiveUser(users, "jane", entity.RoleUser)

	signed, err := signer.Sign(user.ID, user.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"jane"`)
}

func TestTokenForInactiveUserRejected(t *testing.T) {
	app, signer, users := newTestApp(t)
	user := seedActiveUser(users, "jane", entity.RoleUser)
	user.IsActive = false

	signed, err := signer.Sign(user.ID, user.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
