package web

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physionomie",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	loginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physionomie",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	activitiesLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physionomie",
		Subsystem: "ledger",
		Name:      "activities_logged_total",
		Help:      "Activities appended to the ledger.",
	})

	activitiesRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physionomie",
		Subsystem: "ledger",
		Name:      "activities_removed_total",
		Help:      "Activities removed from the ledger.",
	})

	statementsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physionomie",
		Subsystem: "reports",
		Name:      "statements_sent_total",
		Help:      "Bonus statements sent by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		loginsTotal,
		activitiesLoggedTotal,
		activitiesRemovedTotal,
		statementsSentTotal,
	)
}

// metricsHandler exposes the Prometheus scrape endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// countingWriter captures the status for the request counter.
type countingWriter struct {
	http.ResponseWriter
	status int
}

func (cw *countingWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

// countRequests is middleware feeding the requests_total counter. The
// /metrics endpoint itself is not counted.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)
		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(cw.status)).Inc()
	})
}
