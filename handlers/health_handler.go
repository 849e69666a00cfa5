package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/upb/authgate/app"
	"github.com/upb/authgate/middleware"
)

const version = "0.1.0"

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck reports whether the service can make authorization
// decisions. An unconfigured identity provider still counts as ready:
// rejecting credentials with 401 is the defined behavior for that state.
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		if deps.Identity != nil && deps.Identity.Configured() {
			checks["identity_provider"] = "configured"
		} else {
			checks["identity_provider"] = "not_configured"
		}

		response := map[string]interface{}{
			"status": "ready",
			"checks": checks,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// StatusHandler returns application status information. Behind OptionalAuth
// it also reports whether the caller is authenticated.
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"version":       version,
			"environment":   deps.Config.Environment,
			"authenticated": false,
		}
		if identity := middleware.GetIdentityFromContext(r.Context()); identity != nil {
			response["authenticated"] = true
			response["subject"] = identity.SubjectID
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
