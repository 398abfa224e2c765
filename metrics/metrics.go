// Package metrics 语音指令与 HTTP 接口的 Prometheus 指标
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sjzsdu/speak/voice"
)

const namespace = "speak"

// Metrics 独立的注册表，避免测试之间相互影响
type Metrics struct {
	registry *prometheus.Registry

	commands     *prometheus.CounterVec
	dropped      prometheus.Counter
	sessions     prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New 创建并注册全部指标
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Voice commands dispatched, by intent and outcome",
		}, []string{"intent", "outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_dropped_total",
			Help:      "Utterances dropped because a command was still in flight",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.commands, m.dropped, m.sessions, m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observer 记录每次分派的结果
func (m *Metrics) Observer() voice.Observer {
	return func(_ string, eff voice.Effect) {
		m.commands.WithLabelValues(string(eff.Command.Intent), eff.Outcome()).Inc()
	}
}

// Dropped 记录一次因忙碌被丢弃的指令
func (m *Metrics) Dropped() {
	m.dropped.Inc()
}

// SetSessions 更新内存中的会话数
func (m *Metrics) SetSessions(n int) {
	m.sessions.Set(float64(n))
}

// Handler /metrics 接口
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware 按 chi 路由模式统计请求，避免路径参数撑爆标签
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
