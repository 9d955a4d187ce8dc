package auth

import (
	"context"
	"net/http"
	"strings"

	"log/slog"

	"github.com/kurier-app/kurier/internal/authz"
)

// legacyTokenHeader is still sent by older mobile clients.
const legacyTokenHeader = "x-jwt"

// PrincipalSource loads the principal behind a verified user id.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, id int64) (*authz.Principal, error)
}

// Middleware resolves the bearer token into a principal on the request
// context. Every resolution failure (missing header, bad signature,
// expired token, unknown user) is normalized to "no principal": the gate
// downstream decides what that means for the operation.
func Middleware(tokens *TokenService, source PrincipalSource, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := tokens.Verify(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			p, err := source.PrincipalByID(r.Context(), userID)
			if err != nil {
				if logger != nil {
					logger.Warn("resolve principal", slog.Int64("user_id", userID), slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := authz.ContextWithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(r.Header.Get(legacyTokenHeader))
}
