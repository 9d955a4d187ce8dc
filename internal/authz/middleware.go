package authz

import (
	"net/http"

	"log/slog"
)

// Middleware wires gate decisions in front of HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// Require runs the gate for the given declaration before the handler.
// A deny always produces the same generic 403: the response must not
// reveal whether the principal was missing or merely had the wrong role.
func (m Middleware) Require(decl Declaration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if Decide(decl, p) {
				next.ServeHTTP(w, r)
				return
			}
			if m.Logger != nil {
				m.Logger.Warn("access denied", slog.String("path", r.URL.Path))
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
