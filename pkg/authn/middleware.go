package authn

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authkit/authkit/pkg/identity"
)

// Middleware guards every protected route behind the authenticator.
// Excluded paths pass through untouched. Requests without evidence get 401,
// requests whose evidence does not resolve get 403, and the resolved
// identity is attached to the request context for downstream handlers.
func Middleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.RequiresAuth(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := auth.Evidence(r); !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ident, err := auth.Resolve(r.Context(), r)
			if err != nil {
				if errors.Is(err, identity.ErrUnavailable) {
					writeError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
