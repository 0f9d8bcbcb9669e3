package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/quill/internal/auth"
	"github.com/dukerupert/quill/internal/store"
	"github.com/dukerupert/quill/internal/token"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token and populates the caller's Identity.
// Every failure — missing header, malformed header, bad or expired token, or a
// subject that no longer exists — produces the same 401 body, so a caller
// cannot probe which check failed.
func RequireAuth(tokens *token.Service, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w)
				return
			}

			subjectID, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				unauthorized(w)
				return
			}

			// Tokens outlive account deletion; the store is the authority.
			user, err := userStore.GetByID(subjectID)
			if err != nil || user == nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				UserID: user.ID,
				Name:   user.Name,
				Email:  user.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "could not validate credentials"})
}
