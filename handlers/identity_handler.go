package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/authgate/app"
	"github.com/upb/authgate/middleware"
	"github.com/upb/authgate/utils"
)

// CurrentIdentityHandler returns the authenticated identity for the request
func CurrentIdentityHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentityFromContext(r.Context())
		if identity == nil {
			utils.WriteUnauthorized(w, "")
			return
		}

		_ = utils.WriteOK(w, identity)
	}
}

// CurrentRolesHandler returns the roles the authenticated subject holds
// right now, fetched fresh from the identity provider.
func CurrentRolesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentityFromContext(r.Context())
		if identity == nil {
			utils.WriteUnauthorized(w, "")
			return
		}

		roles, err := deps.Roles.RolesFor(r.Context(), identity.SubjectID)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			deps.Logger.Error("role lookup failed",
				zap.String("subject", identity.SubjectID),
				zap.Error(err))
			_ = utils.WriteError(w, http.StatusBadGateway, "identity provider unavailable", nil)
			return
		}

		_ = utils.WriteOK(w, map[string]interface{}{
			"subject": identity.SubjectID,
			"roles":   roles.Values(),
		})
	}
}
