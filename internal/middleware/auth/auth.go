// Package auth resolves the bearer token of a request to a user id.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	tokens "fintrack/internal/auth"
)

const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// Verifier maps a token to the id of an existing user.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type contextKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the authenticated user id, or "" outside protected routes.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// TokenFromRequest accepts "Authorization: Bearer <t>", a bare
// "Authorization: <t>" and the x-auth-token header, in that order.
func TokenFromRequest(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(rest)
		}
		return h
	}
	return strings.TrimSpace(r.Header.Get("x-auth-token"))
}

// Middleware rejects requests without a valid token and stores the user id in
// the request context.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeMsg(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			userID, err := v.VerifyToken(r.Context(), token)
			switch {
			case errors.Is(err, tokens.ErrInvalidToken):
				writeMsg(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			case err != nil:
				slog.ErrorContext(r.Context(), "Token verification failed", "component", "auth", "error", err)
				writeMsg(w, http.StatusInternalServerError, "Server error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
