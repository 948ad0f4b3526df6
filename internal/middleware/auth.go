package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/model"
)

type tokenDecoder interface {
	Decode(tokenString string, expectedType string) (*auth.Claims, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	decoder tokenDecoder
	users   userFinder
}

func NewAuthMiddleware(decoder tokenDecoder, users userFinder) *AuthMiddleware {
	return &AuthMiddleware{decoder: decoder, users: users}
}

// ResolveUser attaches the bearer token's user to the request context.
// Resolution fails open: a missing, malformed or expired token, or a user
// that no longer exists, leaves the request anonymous. Whether anonymous
// is acceptable is decided per route by RequireUser, never here.
func (m *AuthMiddleware) ResolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.decoder.Decode(token, auth.TokenTypeAccess)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests with 401. It assumes ResolveUser
// ran earlier in the chain.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(identityContextKey).(*model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = jsonEncode(w, model.ErrorResponse{Error: "authentication required"})
}
