package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/response"
)

type contextKey string

const (
	companyIDKey contextKey = "company_id"
	userIDKey    contextKey = "user_id"
)

// AuthRequired verifies the access token and stashes the tenant identity
// in the request context. Every protected route runs behind it, so
// handlers can assume CompanyIDFromContext returns a non-empty value.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			companyID, ok := claims["company_id"].(string)
			if !ok || companyID == "" {
				response.Forbidden(w, "Token carries no company")
				return
			}

			ctx := context.WithValue(r.Context(), companyIDKey, companyID)
			if userID, ok := claims["user_id"].(string); ok {
				ctx = context.WithValue(ctx, userIDKey, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// CompanyIDFromContext returns the tenant set by AuthRequired.
func CompanyIDFromContext(ctx context.Context) string {
	companyID, _ := ctx.Value(companyIDKey).(string)
	return companyID
}

// UserIDFromContext returns the authenticated user set by AuthRequired.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
