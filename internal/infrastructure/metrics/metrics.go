// Package metrics expone métricas Prometheus del servicio en un registro propio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores del servicio.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount      *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	ProductOperations *prometheus.CounterVec
	IdentityCalls     *prometheus.CounterVec
	IdentityDuration  *prometheus.HistogramVec
}

// New registra los colectores bajo el namespace indicado (p. ej. "catalogo").
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total de peticiones HTTP",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duración de las peticiones HTTP en segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ProductOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "productos",
				Name:      "operations_total",
				Help:      "Operaciones sobre el catálogo por resultado",
			},
			[]string{"operation", "result"},
		),
		IdentityCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "identity",
				Name:      "calls_total",
				Help:      "Llamadas a la API de administración del proveedor de identidad",
			},
			[]string{"operation", "result"},
		),
		IdentityDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "identity",
				Name:      "call_duration_seconds",
				Help:      "Duración de las llamadas al proveedor de identidad",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.ProductOperations,
		m.IdentityCalls,
		m.IdentityDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registro propio (útil en tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve el formato de exposición de Prometheus en una ruta de Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware cuenta peticiones por ruta registrada (no por path) para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		method := c.Method()

		m.RequestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveIdentityCall registra una llamada al proveedor de identidad.
func (m *Metrics) ObserveIdentityCall(operation string, err error, d time.Duration) {
	m.IdentityCalls.WithLabelValues(operation, result(err)).Inc()
	m.IdentityDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// CountProductOperation registra una operación del catálogo.
func (m *Metrics) CountProductOperation(operation string, err error) {
	m.ProductOperations.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
