package monitoring

import (
	"fmt"
	"net/http"
)

// HealthHandler reports liveness based on the last recorded run.
func HealthHandler(monitor *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if monitor.IsHealthy() {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "OK - %s", monitor.GetStatusSummary())
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "Service unhealthy - %s", monitor.GetStatusSummary())
		}
	}
}

// StatusHandler returns the plain-text run summary.
func StatusHandler(monitor *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%s", monitor.GetStatusSummary())
	}
}
