package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-consult-api/config"
	"go-consult-api/internal/domain/entity"
	"go-consult-api/internal/repository"
	"go-consult-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	jwtService *jwt.JWTService
	tokenStore *repository.MemoryTokenStore
	userRepo   *repository.MemoryUserRepository
	middleware *AuthMiddleware
}

func newAuthFixture(t *testing.T, expiry time.Duration) *authFixture {
	t.Helper()

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: expiry})
	tokenStore := repository.NewMemoryTokenStore()
	userRepo := repository.NewMemoryUserRepository()

	return &authFixture{
		jwtService: jwtService,
		tokenStore: tokenStore,
		userRepo:   userRepo,
		middleware: NewAuthMiddleware(jwtService, tokenStore, userRepo),
	}
}

// issue creates an active user and a registered token for it.
func (f *authFixture) issue(t *testing.T, role string) string {
	t.Helper()

	user := &entity.User{
		ID:       "user-" + role,
		Email:    role + "@example.com",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	token, tokenID, err := f.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	require.NoError(t, f.tokenStore.Save(context.Background(), user.ID, tokenID, time.Hour))

	return token
}

func protectedEndpoint(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRoleFromContext(r.Context())
		require.True(t, ok)
		_, ok = GetUserIDFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)
	handler := f.middleware.Authenticate(protectedEndpoint(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)
	handler := f.middleware.Authenticate(protectedEndpoint(t))

	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, -time.Minute)
	token := f.issue(t, entity.RoleDoctor)
	handler := f.middleware.Authenticate(protectedEndpoint(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)
	token := f.issue(t, entity.RoleDoctor)

	claims, err := f.jwtService.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, f.tokenStore.Delete(context.Background(), claims.UserID, claims.TokenID))

	handler := f.middleware.Authenticate(protectedEndpoint(t))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Revocation must be indistinguishable from an invalid or expired token.
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
	assert.NotContains(t, rec.Body.String(), "revoked")
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)
	token := f.issue(t, entity.RoleDoctor)
	handler := f.middleware.Authenticate(protectedEndpoint(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.RoleDoctor, rec.Header().Get("X-Role"))
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)
	adminToken := f.issue(t, entity.RoleAdmin)
	patientToken := f.issue(t, entity.RolePatient)

	handler := f.middleware.Authenticate(RequireAdmin(protectedEndpoint(t)))

	// A patient on an admin-only route is forbidden, not unauthenticated.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_DisabledUser(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, time.Hour)

	user := &entity.User{
		ID:       "user-disabled",
		Email:    "disabled@example.com",
		Role:     entity.RoleDoctor,
		IsActive: false,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	token, tokenID, err := f.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	require.NoError(t, f.tokenStore.Save(context.Background(), user.ID, tokenID, time.Hour))

	handler := f.middleware.Authenticate(protectedEndpoint(t))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
