package metrics

import (
	"encoding/json"
	"net/http"

	"applytrack/api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	SignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "signups_total",
		Help:      "Total successful signups.",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	VerificationEmailsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "verification_emails_sent_total",
		Help:      "Total verification emails dispatched (signup and resend).",
	})

	VerificationsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "verifications_completed_total",
		Help:      "Total users who completed email verification.",
	})

	VerificationTokensExpiredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "verification_tokens_expired_total",
		Help:      "Total expired verification tokens cleared by the janitor.",
	})

	// Document metrics

	DocumentUploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "document_uploads_total",
		Help:      "Total documents uploaded.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "applytrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		SignupsTotal,
		LoginsTotal,
		VerificationEmailsSentTotal,
		VerificationsCompletedTotal,
		VerificationTokensExpiredTotal,
		DocumentUploadsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus liveness/readiness endpoints on a side port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
