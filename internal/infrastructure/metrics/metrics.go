// Package metrics expõe contadores Prometheus do núcleo de entregas e conformidade.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/epi-control/internal/application/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics coletores registrados num registry próprio (um por processo, e um por teste).
type Metrics struct {
	registry *prometheus.Registry

	Issuances        prometheus.Counter
	IssuedUnits      prometheus.Counter
	Rejections       *prometheus.CounterVec
	IssuanceDuration prometheus.Histogram
	ComplianceEvents *prometheus.CounterVec
	AuditEntries     *prometheus.CounterVec
	AuditDivergences *prometheus.CounterVec
}

// New registra as métricas num registry novo, junto com os coletores de processo e runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Issuances: f.NewCounter(prometheus.CounterOpts{
			Name: "epi_issuances_total",
			Help: "Entregas de EPI efetivadas",
		}),
		IssuedUnits: f.NewCounter(prometheus.CounterOpts{
			Name: "epi_issued_units_total",
			Help: "Unidades de EPI baixadas do estoque por entregas",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "epi_issuances_rejected_total",
			Help: "Entregas recusadas por categoria de erro",
		}, []string{"kind"}),
		IssuanceDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "epi_issuance_duration_seconds",
			Help:    "Duração da criação de entrega, da validação ao commit",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ComplianceEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "epi_compliance_events_total",
			Help: "Treinamentos e exames registrados",
		}, []string{"kind"}),
		AuditEntries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "epi_audit_entries_total",
			Help: "Entradas gravadas na trilha de auditoria",
		}, []string{"entity"}),
		AuditDivergences: f.NewCounterVec(prometheus.CounterOpts{
			Name: "epi_audit_divergences_total",
			Help: "Operações efetivadas cuja entrada de auditoria falhou",
		}, []string{"entity"}),
	}
}

// Handler expõe o registry no formato de texto do Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devolve o registry (usado em testes).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) IssuanceCommitted(quantity int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Issuances.Inc()
	m.IssuedUnits.Add(float64(quantity))
	m.IssuanceDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) IssuanceRejected(kind string) {
	if m != nil {
		m.Rejections.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ComplianceRecorded(kind string) {
	if m != nil {
		m.ComplianceEvents.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) AuditAppended(entity string) {
	if m != nil {
		m.AuditEntries.WithLabelValues(entity).Inc()
	}
}

func (m *Metrics) AuditDivergence(entity string) {
	if m != nil {
		m.AuditDivergences.WithLabelValues(entity).Inc()
	}
}
