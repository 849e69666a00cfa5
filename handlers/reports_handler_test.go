package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/authgate/middleware"
)

func TestUsageReportHandler(t *testing.T) {
	t.Run("reports recorded traffic", func(t *testing.T) {
		deps := testDependencies("sk_test")
		deps.Usage.Record("/api/v1/me", 200)
		deps.Usage.Record("/api/v1/me", 401)
		deps.Usage.Record("/api/v1/admin/config", 403)

		req := authenticatedRequest(http.MethodGet, "/api/v1/reports/usage",
			&middleware.Identity{SubjectID: "user_42", GrantedRole: "org:analyst"})
		w := httptest.NewRecorder()

		UsageReportHandler(deps)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data struct {
				Total  uint64 `json:"total"`
				Routes []struct {
					Route        string `json:"route"`
					Served       uint64 `json:"served"`
					Unauthorized uint64 `json:"unauthorized"`
					Forbidden    uint64 `json:"forbidden"`
				} `json:"routes"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, uint64(3), response.Data.Total)
		require.Len(t, response.Data.Routes, 2)
		assert.Equal(t, "/api/v1/admin/config", response.Data.Routes[0].Route)
		assert.Equal(t, uint64(1), response.Data.Routes[0].Forbidden)
		assert.Equal(t, "/api/v1/me", response.Data.Routes[1].Route)
		assert.Equal(t, uint64(1), response.Data.Routes[1].Served)
		assert.Equal(t, uint64(1), response.Data.Routes[1].Unauthorized)
	})

	t.Run("empty report before any traffic", func(t *testing.T) {
		deps := testDependencies("sk_test")

		req := authenticatedRequest(http.MethodGet, "/api/v1/reports/usage",
			&middleware.Identity{SubjectID: "user_42", GrantedRole: "org:admin"})
		w := httptest.NewRecorder()

		UsageReportHandler(deps)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["total"])
	})
}
