package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedUsage struct {
	route  string
	status int
}

type fakeUsageRecorder struct {
	entries []recordedUsage
}

func (f *fakeUsageRecorder) Record(route string, status int) {
	f.entries = append(f.entries, recordedUsage{route: route, status: status})
}

func TestUsageTracker(t *testing.T) {
	t.Run("records the matched route pattern", func(t *testing.T) {
		recorder := &fakeUsageRecorder{}

		r := chi.NewRouter()
		r.Use(UsageTracker(recorder))
		r.Get("/api/v1/subjects/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/subjects/user_42", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, "/api/v1/subjects/{id}", recorder.entries[0].route)
		assert.Equal(t, http.StatusOK, recorder.entries[0].status)
	})

	t.Run("records rejection statuses", func(t *testing.T) {
		recorder := &fakeUsageRecorder{}

		r := chi.NewRouter()
		r.Use(UsageTracker(recorder))
		r.Get("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, http.StatusUnauthorized, recorder.entries[0].status)
	})

	t.Run("records status zero when nothing was written", func(t *testing.T) {
		recorder := &fakeUsageRecorder{}

		handler := UsageTracker(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Terminated request, no response.
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, "/api/v1/me", recorder.entries[0].route)
		assert.Equal(t, 0, recorder.entries[0].status)
	})

	t.Run("falls back to the raw path outside a router", func(t *testing.T) {
		recorder := &fakeUsageRecorder{}

		handler := UsageTracker(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodGet, "/bare", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, "/bare", recorder.entries[0].route)
		assert.Equal(t, http.StatusNoContent, recorder.entries[0].status)
	})
}
