// Package metrics объявляет метрики Prometheus сервиса и HTTP-middleware,
// которое их заполняет.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Пути пересчёта итогов агрегата.
const (
	PathRoutine   = "routine"
	PathReduction = "reduction"
)

var (
	// HTTPRequests считает обработанные запросы по маршруту, методу и коду.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Name:      "http_requests_total",
		Help:      "Number of handled HTTP requests.",
	}, []string{"route", "method", "status"})

	// HTTPDuration: время обработки запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitness",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// TotalsRecalculations считает пересчёты итогов по агрегату и пути выполнения.
	TotalsRecalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Name:      "totals_recalculations_total",
		Help:      "Aggregate totals recalculations by execution path.",
	}, []string{"aggregate", "path"})

	// AuditEvents считает записи аудита по категории и исходу.
	AuditEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Name:      "audit_events_total",
		Help:      "Recorded audit entries.",
	}, []string{"category", "outcome"})
)

// Middleware измеряет длительность и считает запросы. Маршрут берётся из
// шаблона chi, чтобы идентификаторы в пути не раздували кардинальность.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
