package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/authgate/app"
	"github.com/upb/authgate/middleware"
	"github.com/upb/authgate/utils"
)

// AdminConfigHandler returns the running configuration with secrets masked
func AdminConfigHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := deps.Config

		_ = utils.WriteOK(w, map[string]interface{}{
			"environment": cfg.Environment,
			"server": map[string]interface{}{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
			"identity": map[string]interface{}{
				"base_url":   cfg.Identity.BaseURL,
				"secret_key": maskSecret(cfg.Identity.SecretKey),
				"configured": deps.Identity.Configured(),
				"timeout":    cfg.Identity.Timeout.String(),
			},
			"observability": map[string]interface{}{
				"log_level":  cfg.Observability.LogLevel,
				"log_format": cfg.Observability.LogFormat,
			},
		})
	}
}

// RotateKeysHandler acknowledges a provider key rotation request. The
// rotation itself runs out-of-band; the endpoint records who asked.
func RotateKeysHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentityFromContext(r.Context())
		if identity == nil {
			utils.WriteUnauthorized(w, "")
			return
		}

		deps.Logger.Info("key rotation requested",
			zap.String("subject", identity.SubjectID),
			zap.String("granted_role", identity.GrantedRole))

		_ = utils.WriteAccepted(w, map[string]interface{}{
			"status":       "accepted",
			"requested_by": identity.SubjectID,
		})
	}
}

// maskSecret hides all but the last four characters of a secret
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
