package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/authgate/app"
	"github.com/upb/authgate/authz"
	"github.com/upb/authgate/middleware"
	"github.com/upb/authgate/utils"
)

// AccessCheckRequest asks whether the caller satisfies a role rule
type AccessCheckRequest struct {
	Mode  string   `json:"mode" validate:"required,oneof=single any all"`
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

// AccessCheckResponse reports the outcome of a dry-run authorization
type AccessCheckResponse struct {
	Authorized   bool     `json:"authorized"`
	MatchedRoles []string `json:"matched_roles"`
	Reason       string   `json:"reason,omitempty"`
}

// AccessCheckHandler evaluates a role rule against the caller's current
// roles without protecting anything. Useful for UIs that show or hide
// actions ahead of time.
func AccessCheckHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentityFromContext(r.Context())
		if identity == nil {
			utils.WriteUnauthorized(w, "")
			return
		}

		var req AccessCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "invalid request body", nil)
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			details := make(map[string]interface{})
			for field, msg := range utils.GetValidationFields(err) {
				details[field] = msg
			}
			_ = utils.WriteBadRequest(w, "invalid request body", details)
			return
		}
		if req.Mode == "single" && len(req.Roles) != 1 {
			_ = utils.WriteBadRequest(w, "single mode takes exactly one role", nil)
			return
		}

		var requirement authz.Requirement
		switch req.Mode {
		case "single":
			requirement = authz.SingleRole(req.Roles[0])
		case "any":
			requirement = authz.AnyRole(req.Roles...)
		case "all":
			requirement = authz.AllRoles(req.Roles...)
		}

		userRoles, err := deps.Roles.RolesFor(r.Context(), identity.SubjectID)
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

		verdict := authz.Authorize(userRoles, requirement)
		_ = utils.WriteOK(w, AccessCheckResponse{
			Authorized:   verdict.Authorized,
			MatchedRoles: verdict.MatchedRoles,
			Reason:       verdict.Reason,
		})
	}
}
