package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/services"
)

func newSessions(t *testing.T) *services.SessionService {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return services.NewSessionService(rdb)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(identity.Email))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(r), "header %q", tt.header)
	}
}

func TestAuthenticateRejectsMissingOrBadToken(t *testing.T) {
	sessions := newSessions(t)
	handler := Authenticate(sessions)(okHandler())

	for _, header := range []string{"", "Bearer bogus-token"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Authentication required"}`, w.Body.String())
	}
}

func TestAuthenticatePutsIdentityOnContext(t *testing.T) {
	sessions := newSessions(t)
	token, err := sessions.Create(context.Background(), models.Identity{
		ID:    "user-1",
		Email: "farmer@example.com",
		Role:  models.RoleFarmer,
	})
	require.NoError(t, err)

	handler := Authenticate(sessions)(okHandler())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "farmer@example.com", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	sessions := newSessions(t)
	farmerToken, err := sessions.Create(context.Background(), models.Identity{
		ID:    "user-1",
		Email: "farmer@example.com",
		Role:  models.RoleFarmer,
	})
	require.NoError(t, err)

	adminOnly := Authenticate(sessions)(RequireRole(models.RoleAdmin)(okHandler()))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+farmerToken)
	w := httptest.NewRecorder()
	adminOnly.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	farmerOnly := Authenticate(sessions)(RequireRole(models.RoleFarmer)(okHandler()))
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+farmerToken)
	w = httptest.NewRecorder()
	farmerOnly.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
