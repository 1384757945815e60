package web

import "net/http"

// registerRoutes maps URL paths to handlers. Method dispatch happens inside
// each handler.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/session", handleSession)

	mux.HandleFunc("/api/therapies", handleTherapies)
	mux.HandleFunc("/api/therapies/", handleTherapyByID)
	mux.HandleFunc("/api/therapists", handleTherapists)
	mux.HandleFunc("/api/therapists/", handleTherapistByID)

	mux.HandleFunc("/api/tracker", handleTracker)
	mux.HandleFunc("/api/activities", handleActivities)
	mux.HandleFunc("/api/activities/", handleActivityByID)

	mux.HandleFunc("/api/statistics", handleStatistics)
	mux.HandleFunc("/api/analytics", handleAnalytics)
	mux.HandleFunc("/api/statements", handleStatements)
	mux.HandleFunc("/api/performance", handlePerformance)

	mux.Handle("/metrics", metricsHandler())
	mux.HandleFunc("/healthz", handleHealth)
}
