// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus collectors for dispatched requests and
// for the HTTP transport.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "dispatch"

	// unknownEndpoint labels requests whose endpoint is not registered.
	unknownEndpoint = "unknown"
	// anonymousRole labels requests that were not authenticated.
	anonymousRole = "anonymous"
	// otherMethod labels requests with a method outside knownMethods.
	otherMethod = "OTHER"
)

// knownMethods bounds the method label; the verb is caller supplied on
// every transport.
var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// Collector owns a private registry so that several instances (one per test)
// never clash on registration.
type Collector struct {
	registry *prometheus.Registry

	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	dispatchByRole   *prometheus.CounterVec

	httpRequestsTotal *prometheus.CounterVec
	httpResponseTime  prometheus.Histogram
}

// NewCollector creates and registers all collectors, including the Go
// runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "dispatched requests by endpoint, method and envelope status code",
			},
			[]string{"endpoint", "method", "code"},
		),
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "time spent dispatching a request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		dispatchByRole: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_from_role_total",
				Help:      "dispatched requests by caller role",
			},
			[]string{"role"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "http requests by code and method",
			},
			[]string{"code", "method"},
		),
		httpResponseTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_time_seconds",
				Help:      "http response time",
				Buckets:   []float64{0.005, 0.05, 0.5, 1, 5, 10, 30},
			},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.dispatchTotal,
		c.dispatchDuration,
		c.dispatchByRole,
		c.httpRequestsTotal,
		c.httpResponseTime,
	)

	return c
}

// ObserveDispatch records one dispatch outcome. It satisfies
// dispatcher.Observer.
func (c *Collector) ObserveDispatch(endpoint, method, role string, status int, elapsed time.Duration) {
	if endpoint == "" {
		endpoint = unknownEndpoint
	}
	if role == "" {
		role = anonymousRole
	}
	if _, ok := knownMethods[method]; !ok {
		method = otherMethod
	}

	c.dispatchTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	c.dispatchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	c.dispatchByRole.WithLabelValues(role).Inc()
}

// Middleware counts HTTP requests by status code and method.
// Requests to metricsPath are not counted.
func (c *Collector) Middleware(metricsPath string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == metricsPath {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				c.httpRequestsTotal.WithLabelValues(strconv.Itoa(status), r.Method).Inc()
				c.httpResponseTime.Observe(time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
