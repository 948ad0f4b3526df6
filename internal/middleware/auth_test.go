package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/model"
)

type staticUserFinder struct {
	users map[int64]model.User
}

func (f staticUserFinder) FindByID(_ context.Context, id int64) (model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func resolveIdentity(t *testing.T, m *AuthMiddleware, authorization string) (*model.User, bool) {
	t.Helper()

	var (
		resolved *model.User
		ok       bool
	)
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		resolved, ok = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	m.ResolveUser(next).ServeHTTP(httptest.NewRecorder(), req)
	return resolved, ok
}

func TestResolveUser(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("test-secret", 30*time.Minute, 7*24*time.Hour)
	finder := staticUserFinder{users: map[int64]model.User{
		1: {ID: 1, Username: "alice"},
	}}
	m := NewAuthMiddleware(codec, finder)

	t.Run("valid access token resolves the user", func(t *testing.T) {
		pair, err := codec.IssuePair(1)
		require.NoError(t, err)

		user, ok := resolveIdentity(t, m, "Bearer "+pair.AccessToken)
		require.True(t, ok)
		require.Equal(t, "alice", user.Username)
	})

	t.Run("absent header resolves to anonymous", func(t *testing.T) {
		_, ok := resolveIdentity(t, m, "")
		require.False(t, ok)
	})

	t.Run("garbage token resolves to anonymous", func(t *testing.T) {
		_, ok := resolveIdentity(t, m, "Bearer not-a-token")
		require.False(t, ok)
	})

	t.Run("expired token resolves to anonymous", func(t *testing.T) {
		expired := auth.NewCodec("test-secret", -time.Second, -time.Second)
		pair, err := expired.IssuePair(1)
		require.NoError(t, err)

		_, ok := resolveIdentity(t, m, "Bearer "+pair.AccessToken)
		require.False(t, ok)
	})

	t.Run("refresh token does not resolve a session", func(t *testing.T) {
		pair, err := codec.IssuePair(1)
		require.NoError(t, err)

		_, ok := resolveIdentity(t, m, "Bearer "+pair.RefreshToken)
		require.False(t, ok)
	})

	t.Run("token for a deleted user resolves to anonymous", func(t *testing.T) {
		pair, err := codec.IssuePair(42)
		require.NoError(t, err)

		_, ok := resolveIdentity(t, m, "Bearer "+pair.AccessToken)
		require.False(t, ok)
	})
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("test-secret", 30*time.Minute, 7*24*time.Hour)
	finder := staticUserFinder{users: map[int64]model.User{1: {ID: 1, Username: "alice"}}}
	m := NewAuthMiddleware(codec, finder)

	handler := m.ResolveUser(m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	t.Run("anonymous request is rejected with 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		pair, err := codec.IssuePair(1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
