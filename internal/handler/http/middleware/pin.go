package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/response"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
)

// RequireElevated gates sensitive endpoints (payroll, bulk edits, settings)
// behind a recent PIN re-auth. The client presents the elevated token from
// the PIN verify endpoint in X-Elevated-Token; it must belong to the caller's
// own session, and that session's PIN grace window must still be open.
func RequireElevated(jwtService jwt.Service, sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			elevated := r.Header.Get("X-Elevated-Token")
			if elevated == "" {
				response.Forbidden(w, "PIN verification required")
				return
			}

			userID, sessionID, err := jwtService.ValidateElevatedToken(elevated)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if claims["user_id"] != userID || claims["session_id"] != sessionID {
				response.Forbidden(w, "Elevated token does not match this session")
				return
			}

			if !sessions.IsPINVerified(sessionID) {
				response.Forbidden(w, "PIN verification expired")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
