package mwmetrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	reqTotal *prometheus.CounterVec
	reqDur   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventflow",
			Name:      "http_requests_total",
			Help:      "Count of handled HTTP requests",
		}, []string{"method", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventflow",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(m.reqTotal, m.reqDur)

	return m
}

func (m *Metrics) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		t1 := time.Now()
		next.ServeHTTP(ww, r)

		m.reqTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.reqDur.WithLabelValues(r.Method).Observe(time.Since(t1).Seconds())
	}

	return http.HandlerFunc(fn)
}
