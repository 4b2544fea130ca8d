package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/middleware"
	"imobiliaria/internal/pkg/token"
)

// MockUserFinder simula a busca do usuário vivo
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

const secret = "segredo-de-teste"

func newGuard() (*middleware.Guard, *MockUserFinder, *token.Service) {
	users := new(MockUserFinder)
	tokens := token.NewService(secret)
	return middleware.NewGuard(tokens, users, logger.NewLogger("fatal")), users, tokens
}

func bearer(t *testing.T, tokens *token.Service, id string, role domain.UserRole) string {
	t.Helper()
	signed, err := tokens.GenerateToken(id, "joao", string(role))
	require.NoError(t, err)
	return "Bearer " + signed
}

func okHandler(t *testing.T, wantRole domain.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantRole, user.Role)
		assert.Empty(t, user.PasswordHash)
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestRequire_MissingHeaderIs401(t *testing.T) {
	guard, _, _ := newGuard()
	rec := httptest.NewRecorder()

	guard.Require()(okHandler(t, domain.RoleUser))(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_MalformedSchemeIs401(t *testing.T) {
	guard, _, tokens := newGuard()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	signed, err := tokens.GenerateToken("u1", "joao", "admin")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token "+signed)

	guard.Require()(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_ForgedTokenIs401(t *testing.T) {
	guard, users, _ := newGuard()
	other := token.NewService("outro-segredo")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, other, "u1", domain.RoleSuperuser))

	guard.Require(domain.RoleAdmin)(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRequire_ExpiredTokenIs401(t *testing.T) {
	guard, _, _ := newGuard()
	old := token.NewService(secret).WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) })
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, old, "u1", domain.RoleAdmin))

	guard.Require()(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_DeletedUserIs401(t *testing.T) {
	guard, users, tokens := newGuard()
	users.On("FindByID", mock.Anything, "u1").Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "u1", domain.RoleAdmin))

	guard.Require()(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_UsesLiveRoleNotTokenRole(t *testing.T) {
	guard, users, tokens := newGuard()
	// token diz admin, cadastro atual diz user
	users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true, PasswordHash: "hash"}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/imoveis", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "u1", domain.RoleAdmin))

	guard.Require(domain.RoleAdmin)(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statusCode":403`)
}

func TestRequire_SuperuserBypassesRoleList(t *testing.T) {
	guard, users, tokens := newGuard()
	users.On("FindByID", mock.Anything, "s1").Return(domain.User{ID: "s1", Role: domain.RoleSuperuser, IsActive: true, PasswordHash: "hash"}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/imoveis", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "s1", domain.RoleSuperuser))

	guard.Require(domain.RoleAdmin)(okHandler(t, domain.RoleSuperuser))(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequire_StoreFailureIs500(t *testing.T) {
	guard, users, tokens := newGuard()
	users.On("FindByID", mock.Anything, "u1").Return(domain.User{}, apperror.NewDBError("falha", assert.AnError))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "u1", domain.RoleAdmin))

	guard.Require()(okHandler(t, domain.RoleAdmin))(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOptional_AttachesCallerWhenValid(t *testing.T) {
	guard, users, tokens := newGuard()
	users.On("FindByID", mock.Anything, "s1").Return(domain.User{ID: "s1", Role: domain.RoleSuperuser, IsActive: true}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "s1", domain.RoleSuperuser))

	guard.Optional(okHandler(t, domain.RoleSuperuser))(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOptional_InvalidTokenContinuesAnonymous(t *testing.T) {
	guard, _, _ := newGuard()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req.Header.Set("Authorization", "Bearer lixo")

	called := false
	guard.Optional(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := middleware.UserFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusCreated)
	})(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
