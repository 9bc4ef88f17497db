package middleware

import (
	"net/http"

	"chandra-dukan-be/internal/metrics"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Metrics counts requests and error responses into the shared registry.
func Metrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.Requests.Inc()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			switch {
			case sw.status >= 500:
				reg.ServerErrors.Inc()
			case sw.status >= 400:
				reg.ClientErrors.Inc()
			}
		})
	}
}
