package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hsm-gustavo/account-api/internal/db"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AuthMiddleware verifies the bearer token and stores its claims in the
// request context. A missing token answers 401; an unusable one answers 400.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := bearerToken(r)
		if errors.Is(err, ErrMissingToken) {
			h.sendMessage(w, http.StatusUnauthorized, msgNoToken)
			return
		}
		if err != nil {
			h.sendMessage(w, http.StatusBadRequest, msgInvalidToken)
			return
		}

		claims, err := h.service.ParseJWT(tokenStr)
		if err != nil {
			h.sendMessage(w, http.StatusBadRequest, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" || strings.EqualFold(authHeader, "Bearer") {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// GetClaimsFromContext extracts claims from request context
func GetClaimsFromContext(r *http.Request) (*db.Claims, error) {
	claims, ok := r.Context().Value(ClaimsContextKey).(*db.Claims)
	if !ok {
		return nil, errors.New("no claims found in context")
	}
	return claims, nil
}
