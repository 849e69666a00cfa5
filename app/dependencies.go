// Package app wires configuration, the identity client and the
// authorization pipeline into one dependency container.
package app

import (
	"go.uber.org/zap"

	"github.com/upb/authgate/authz"
	"github.com/upb/authgate/config"
	"github.com/upb/authgate/identity"
	"github.com/upb/authgate/internal/observability"
	"github.com/upb/authgate/middleware"
)

// Dependencies holds all initialized application components
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger
	Usage  *observability.UsageCollector

	// Identity provider
	Identity *identity.Client

	// Authorization pipeline
	Validator      middleware.TokenValidator
	Roles          middleware.RoleSource
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies wires the identity client, credential validator, role
// resolver and request interceptor from configuration.
func NewDependencies(cfg *config.Config, logger *zap.Logger) *Dependencies {
	client := identity.NewClient(identity.Config{
		SecretKey: cfg.Identity.SecretKey,
		BaseURL:   cfg.Identity.BaseURL,
		Timeout:   cfg.Identity.Timeout,
	})
	if !client.Configured() {
		logger.Warn("identity provider key not provisioned, protected routes will reject all credentials")
	}

	validator := authz.NewCredentialValidator(client)
	roles := authz.NewRoleResolver(client)

	deps := &Dependencies{
		Config:         cfg,
		Logger:         logger,
		Usage:          observability.NewUsageCollector(),
		Identity:       client,
		Validator:      validator,
		Roles:          roles,
		AuthMiddleware: middleware.NewAuthMiddleware(validator, roles, logger),
	}

	logger.Info("dependencies initialized",
		zap.Bool("identity_configured", client.Configured()),
		zap.String("identity_base_url", cfg.Identity.BaseURL))

	return deps
}

// Close flushes buffered log entries
func (d *Dependencies) Close() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}
