package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mealshare/backend/internal/auth"
)

// TokenVerifier turns a bearer token into the caller's identity
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// BearerAuth middleware validates the JWT from the Authorization header and
// stores the caller's identity in the request context.
// Missing and invalid tokens are both answered with 401.
func BearerAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")

			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, "Unauthorized: bearer token required")
				return
			}

			id, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, "Unauthorized: invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="mealshare"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
