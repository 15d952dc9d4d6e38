package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

const unmatchedRoute = "unmatched"

// routeLabel is the pattern the API mux matched for r. Paths no route
// matched share one series, so probing clients cannot grow the label set.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}

// MetricsMiddleware records request count and latency per route and writes
// an access line to the event or query log. It must wrap the mux itself:
// the route is only known once the mux has matched the request.
func MetricsMiddleware(metrics MetricsProviderInterface, logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		route := routeLabel(r)
		metrics.IncRequestsTotal(route, sw.status)
		metrics.ObserveRequestDuration(route, duration)
		logger.Debugf(GetLogTypeByRequestType(r.Method), "%s %s -> %d in %s", r.Method, r.URL.RequestURI(), sw.status, duration)
	})
}
