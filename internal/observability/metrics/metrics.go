package metrics

import "github.com/prometheus/client_golang/prometheus"

// KioskMetrics exposes counters/histograms for the patient kiosk flow.
type KioskMetrics struct {
	analysesTotal  *prometheus.CounterVec
	bookingsTotal  *prometheus.CounterVec
	reportsTotal   *prometheus.CounterVec
	modelLatency   prometheus.Histogram
	calendarWrites *prometheus.CounterVec
}

func NewKioskMetrics(reg prometheus.Registerer) *KioskMetrics {
	m := &KioskMetrics{
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediscribe",
			Subsystem: "kiosk",
			Name:      "analyses_total",
			Help:      "Total report analyses by outcome",
		}, []string{"status", "outcome"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediscribe",
			Subsystem: "kiosk",
			Name:      "bookings_total",
			Help:      "Total booking submissions",
		}, []string{"status"}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediscribe",
			Subsystem: "kiosk",
			Name:      "reports_generated_total",
			Help:      "Total PDF reports generated",
		}, []string{"kind", "status"}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mediscribe",
			Subsystem: "kiosk",
			Name:      "model_latency_seconds",
			Help:      "Latency of generative model calls",
			Buckets:   prometheus.DefBuckets,
		}),
		calendarWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediscribe",
			Subsystem: "kiosk",
			Name:      "calendar_writes_total",
			Help:      "Total hospital calendar block attempts",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.analysesTotal, m.bookingsTotal, m.reportsTotal, m.modelLatency, m.calendarWrites)
	return m
}

func (m *KioskMetrics) ObserveAnalysis(status, outcome string) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(status, outcome).Inc()
}

func (m *KioskMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *KioskMetrics) ObserveReport(kind, status string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(kind, status).Inc()
}

func (m *KioskMetrics) ObserveModelLatency(seconds float64) {
	if m == nil {
		return
	}
	m.modelLatency.Observe(seconds)
}

func (m *KioskMetrics) ObserveCalendarWrite(status string) {
	if m == nil {
		return
	}
	m.calendarWrites.WithLabelValues(status).Inc()
}
