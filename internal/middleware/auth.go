// Package middleware provides HTTP middleware for the game service.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ecoplay/game-service/internal/auth"
	"github.com/ecoplay/game-service/internal/errors"
	internalhttputil "github.com/ecoplay/game-service/internal/httputil"
	"github.com/ecoplay/game-service/internal/logging"
)

type identityKeyType struct{}

var identityKey identityKeyType

// AuthMiddleware verifies bearer tokens and attaches the participant
// identity to the request context.
type AuthMiddleware struct {
	verifier    auth.Verifier
	logger      *logging.Logger
	skipPaths   map[string]bool
	devIdentity *auth.Identity
}

// NewAuthMiddleware creates an authentication middleware. Requests to the
// listed paths pass through unauthenticated.
func NewAuthMiddleware(verifier auth.Verifier, logger *logging.Logger, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool)
	for _, path := range skipPaths {
		skip[path] = true
	}

	return &AuthMiddleware{
		verifier:  verifier,
		logger:    logger,
		skipPaths: skip,
	}
}

// AllowDevBypass injects the given identity for requests without an
// Authorization header instead of rejecting them. Development environments
// only.
func (m *AuthMiddleware) AllowDevBypass(identity auth.Identity) {
	m.devIdentity = &identity
}

// Handler returns the middleware handler.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.devIdentity != nil {
				m.logger.WithContext(r.Context()).Warn("No Authorization header; using development identity")
				next.ServeHTTP(w, r.WithContext(m.withIdentity(r.Context(), *m.devIdentity)))
				return
			}
			m.respondError(w, r, errors.Unauthorized("Missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.respondError(w, r, errors.Unauthorized("Invalid Authorization header format"))
			return
		}

		identity, err := m.verifier.VerifyToken(parts[1])
		if err != nil {
			m.logger.WithContext(r.Context()).WithError(err).Warn("Token verification failed")
			m.respondError(w, r, err)
			return
		}

		ctx := m.withIdentity(r.Context(), identity)

		m.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"uid":     identity.UID,
			"user_id": identity.ParticipantID(),
		}).Debug("Authentication successful")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) withIdentity(ctx context.Context, identity auth.Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey, identity)
	return context.WithValue(ctx, logging.UserIDKey, identity.ParticipantID())
}

func (m *AuthMiddleware) respondError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := errors.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = errors.Internal("Authentication failed", err)
	}

	internalhttputil.WriteErrorResponse(w, r, serviceErr.HTTPStatus, string(serviceErr.Code), serviceErr.Message, serviceErr.Details)

	m.logger.WithContext(r.Context()).WithError(err).WithFields(map[string]interface{}{
		"path":   r.URL.Path,
		"method": r.Method,
		"status": serviceErr.HTTPStatus,
	}).Warn("Authentication failed")
}

// IdentityFromContext extracts the verified identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// GetUserID extracts the participant record number from context.
func GetUserID(ctx context.Context) string {
	return logging.GetUserID(ctx)
}

// RequireIdentity ensures a verified identity is present in context.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			internalhttputil.Unauthorized(w, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
