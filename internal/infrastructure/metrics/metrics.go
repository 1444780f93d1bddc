package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"qrkeeper/internal/domain/qrcode"
)

// Metrics собирает счетчики сервиса QR-кодов и HTTP-слоя.
type Metrics struct {
	generated       *prometheus.CounterVec
	updates         prometheus.Counter
	redirects       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New(registerer prometheus.Registerer, env string) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if env == "" {
		env = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": "qrkeeper",
		"env":     env,
	}

	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "qrkeeper_generated_total",
			Help:        "QR codes created by kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "qrkeeper_destination_updates_total",
			Help:        "Destination changes of dynamic QR codes.",
			ConstLabels: constLabels,
		}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "qrkeeper_redirects_total",
			Help:        "Public redirect lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "qrkeeper_http_request_duration_seconds",
			Help:        "HTTP request latency by operation and status.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
	}

	registerer.MustRegister(m.generated, m.updates, m.redirects, m.requestDuration)

	// нулевые серии, чтобы дашборды не пустели до первого события
	for _, k := range []qrcode.Kind{qrcode.KindStatic, qrcode.KindDynamic} {
		m.generated.WithLabelValues(k.String())
	}

	return m
}

func (m *Metrics) Generated(kind qrcode.Kind) {
	m.generated.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) Updated() {
	m.updates.Inc()
}

func (m *Metrics) Redirected(result string) {
	m.redirects.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(operation string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(d.Seconds())
}
