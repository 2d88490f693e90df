package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/costcalc/libs/auth"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return claims, ok
}

// RequireBearer rejects requests without a valid "Authorization: Bearer" token and
// exposes the verified claims through the request context.
func RequireBearer(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if !strings.HasPrefix(authHeader, "Bearer ") || token == "" {
				WriteError(w, http.StatusUnauthorized, "token not provided")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
