package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorValidator validates operator tokens on ingestion endpoints.
type OperatorValidator interface {
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

// OperatorClaims is what a validated operator token must carry.
type OperatorClaims struct {
	OperatorID string
}

type contextKeyOperatorID struct{}

// ContextKeyOperatorID is exported for use in handlers and tests.
var ContextKeyOperatorID = contextKeyOperatorID{}

// GetOperatorID retrieves the authenticated operator id from the context.
func GetOperatorID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyOperatorID).(string); ok {
		return id
	}
	return ""
}

// HMACValidator validates HS256 operator tokens with a shared signing key.
type HMACValidator struct {
	key []byte
}

func NewHMACValidator(signingKey string) *HMACValidator {
	return &HMACValidator{key: []byte(signingKey)}
}

func (v *HMACValidator) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return &OperatorClaims{OperatorID: sub}, nil
}

// RequireAuth rejects requests without a valid bearer token and places the
// operator id in the request context.
func RequireAuth(validator OperatorValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, r, logger, "missing or invalid Authorization header")
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w, r, logger, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyOperatorID, claims.OperatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := fmt.Fprintf(w, `{"error":"unauthorized","error_description":%q}`, description); err != nil {
		logger.ErrorContext(r.Context(), "failed to write unauthorized response",
			"error", err,
			"request_id", GetRequestID(r.Context()),
		)
	}
}
