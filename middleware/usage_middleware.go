package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// UsageRecorder receives one entry per completed request.
type UsageRecorder interface {
	Record(route string, status int)
}

// UsageTracker records the matched route pattern and response status of
// every request. Requests that end without a response are recorded with
// status zero.
func UsageTracker(usage UsageRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			usage.Record(route, ww.Status())
		})
	}
}
