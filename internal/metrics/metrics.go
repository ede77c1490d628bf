package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salestraining", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"route", "method", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salestraining", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salestraining", Name: "handler_errors_total", Help: "Handler errors (5xx)",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "salestraining", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	SeedRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salestraining", Name: "seed_runs_total", Help: "Seeding runs by kind and result",
	}, []string{"kind", "result"})
	PDFExports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salestraining", Name: "pdf_exports_total", Help: "PDF exports by source",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, HandlerErrors, DBPing, SeedRuns, PDFExports)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveSeed(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SeedRuns.WithLabelValues(kind, result).Inc()
}
