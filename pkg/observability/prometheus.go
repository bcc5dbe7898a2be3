package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements LoadHooks, StyleHooks and HTTPHooks on a registry.
type Prometheus struct {
	loadDuration  *prometheus.HistogramVec
	graphVertices prometheus.Gauge
	graphEdges    prometheus.Gauge

	selections    *prometheus.CounterVec
	patchDuration prometheus.Histogram
	emitErrors    prometheus.Counter

	requests    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	subscribers prometheus.Gauge
}

// NewPrometheus registers arcview metrics on reg.
// Use a fresh registry per process; registering twice on the same registry panics.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		loadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcview_load_duration_seconds",
			Help:    "Graph load duration by result",
			Buckets: prometheus.DefBuckets,
		}, []string{"result"}),
		graphVertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcview_graph_vertices",
			Help: "Vertices in the loaded graph",
		}),
		graphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcview_graph_edges",
			Help: "Edges in the loaded graph",
		}),
		selections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcview_style_selections_total",
			Help: "Color selection events by color",
		}, []string{"color"}),
		patchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "arcview_style_patch_duration_seconds",
			Help:    "Time from selection to patch delivery",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		emitErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "arcview_style_emit_errors_total",
			Help: "Patches that could not be delivered",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcview_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		reqDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcview_http_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcview_patch_subscribers",
			Help: "Connected patch stream clients",
		}),
	}
}

func (p *Prometheus) OnLoadStart(context.Context, string, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, vertices, edges int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.loadDuration.WithLabelValues(result).Observe(d.Seconds())
	if err == nil {
		p.graphVertices.Set(float64(vertices))
		p.graphEdges.Set(float64(edges))
	}
}

func (p *Prometheus) OnSelect(_ context.Context, color string) {
	p.selections.WithLabelValues(color).Inc()
}

func (p *Prometheus) OnPatch(_ context.Context, _ string, d time.Duration) {
	p.patchDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnEmitError(context.Context, error) {
	p.emitErrors.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, statusClass(status)).Inc()
	p.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnClientConnect(context.Context)    { p.subscribers.Inc() }
func (p *Prometheus) OnClientDisconnect(context.Context) { p.subscribers.Dec() }

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

var (
	_ LoadHooks  = (*Prometheus)(nil)
	_ StyleHooks = (*Prometheus)(nil)
	_ HTTPHooks  = (*Prometheus)(nil)
)
