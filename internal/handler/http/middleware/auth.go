package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/response"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
)

// AuthRequired verifies the access token and touches the server-side session.
// A session past its inactivity timeout rejects the request even when the JWT
// itself is still valid.
func AuthRequired(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, ok := claims["session_id"].(string)
			if !ok || sessionID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if _, err := sessions.Touch(sessionID); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
