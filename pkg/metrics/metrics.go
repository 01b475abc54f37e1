// Package metrics 提供 Prometheus 指标定义与 /metrics 暴露
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 定价服务指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 定价请求计数，按定价模型区分
	PricingsTotal *prometheus.CounterVec
	// 定价计算耗时，按定价模型区分
	PricingDuration *prometheus.HistogramVec
	// 定价失败计数
	PricingErrorsTotal *prometheus.CounterVec
	// 单次定价模拟的路径数
	SimulatedPaths prometheus.Histogram
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		PricingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricings_total",
			Help:      "Total option pricing requests",
		}, []string{"model"}),
		PricingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricing_duration_seconds",
			Help:      "Option pricing duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"model"}),
		PricingErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricing_errors_total",
			Help:      "Total option pricing failures",
		}, []string{"model"}),
		SimulatedPaths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "simulated_paths",
			Help:      "Number of Monte Carlo paths per pricing",
			Buckets:   []float64{1000, 5000, 10000, 20000, 50000, 100000},
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PricingsTotal,
		m.PricingDuration,
		m.PricingErrorsTotal,
		m.SimulatedPaths,
	)
	return m
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve 启动独立的指标 HTTP 服务
func (m *Metrics) Serve(port int, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	go srv.ListenAndServe()
	return srv
}
