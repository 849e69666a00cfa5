package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/upb/authgate/authz"
	"github.com/upb/authgate/utils"
)

// TokenValidator defines the interface for validating bearer credentials
type TokenValidator interface {
	// Validate checks one credential and reports whether it is currently valid
	Validate(ctx context.Context, credential string) (authz.VerificationOutcome, error)
}

// RoleSource returns the roles a subject currently holds
type RoleSource interface {
	RolesFor(ctx context.Context, subjectID string) (authz.RoleSet, error)
}

// AuthMiddleware drives credential validation and role checks per route
type AuthMiddleware struct {
	validator TokenValidator
	roles     RoleSource
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, roles RoleSource, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		roles:     roles,
		logger:    logger,
	}
}

// Require builds the interceptor for one route requirement. The requirement
// is fixed at route registration; each request then runs the credential
// check and, when the requirement names roles, the role check. The role
// check never runs before the credential check has passed.
func (m *AuthMiddleware) Require(req authz.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := chimw.GetReqID(ctx)

			credential := extractBearerToken(r)
			if credential == "" {
				if req.RequiresToken() {
					m.logger.Warn("no credential provided",
						zap.String("request_id", requestID),
						zap.String("requirement", req.String()))
					utils.WriteUnauthorized(w, "no credential provided")
					return
				}
				// Anonymous pass-through on routes without a requirement.
				next.ServeHTTP(w, r)
				return
			}

			outcome, err := m.validator.Validate(ctx, credential)
			if err != nil {
				if ctx.Err() != nil {
					// Request abandoned mid-validation; no verdict, no response.
					return
				}
				if errors.Is(err, authz.ErrVerifierNotConfigured) {
					m.logger.Warn("token validation not configured",
						zap.String("request_id", requestID))
					utils.WriteUnauthorized(w, "validation not configured")
					return
				}
				m.logger.Warn("token validation failed",
					zap.String("request_id", requestID),
					zap.Error(err))
				utils.WriteUnauthorized(w, "invalid token")
				return
			}
			if !outcome.Valid {
				m.logger.Warn("invalid token",
					zap.String("request_id", requestID))
				utils.WriteUnauthorized(w, "invalid token")
				return
			}

			identity := &Identity{SubjectID: outcome.SubjectID}
			if identity.SubjectID == "" {
				// Verifier reported a live token without a subject. Keep the
				// request traceable by falling back to the raw credential.
				identity.SubjectID = credential
			}

			if req.HasRoleRule() {
				userRoles, err := m.roles.RolesFor(ctx, identity.SubjectID)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					// Role lookup failures fail closed: decide with no roles.
					m.logger.Warn("role lookup failed",
						zap.String("request_id", requestID),
						zap.String("subject", identity.SubjectID),
						zap.Error(err))
					userRoles = authz.NewRoleSet()
				}

				verdict := authz.Authorize(userRoles, req)
				if !verdict.Authorized {
					m.logger.Warn("insufficient role",
						zap.String("request_id", requestID),
						zap.String("subject", identity.SubjectID),
						zap.String("requirement", req.String()),
						zap.Strings("user_roles", verdict.UserRoles.Values()),
						zap.String("reason", verdict.Reason))
					utils.WriteForbidden(w, verdict.Reason)
					return
				}
				identity.GrantedRole = verdict.GrantedRole()
			}

			m.logger.Debug("request authorized",
				zap.String("request_id", requestID),
				zap.String("subject", identity.SubjectID),
				zap.String("granted_role", identity.GrantedRole))

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// RequireAuth requires a valid credential, any role
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.Require(authz.TokenOnly())(next)
}

// OptionalAuth forwards anonymous requests untouched but still validates
// a credential when one is presented.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return m.Require(authz.NoRequirement())(next)
}

// RequireRole requires a valid credential plus one specific role
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return m.Require(authz.SingleRole(role))
}

// RequireAnyRole requires a valid credential plus at least one listed role
func (m *AuthMiddleware) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return m.Require(authz.AnyRole(roles...))
}

// RequireAllRoles requires a valid credential plus every listed role
func (m *AuthMiddleware) RequireAllRoles(roles ...string) func(http.Handler) http.Handler {
	return m.Require(authz.AllRoles(roles...))
}

// extractBearerToken extracts the credential from the Authorization header.
// The scheme prefix is the case-sensitive literal "Bearer "; any other
// shape counts as no credential at all.
func extractBearerToken(r *http.Request) string {
	const prefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
}
