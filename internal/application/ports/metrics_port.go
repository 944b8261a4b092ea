package ports

import "time"

// Metrics recebe os eventos operacionais do núcleo. Implementado em infrastructure/metrics.
type Metrics interface {
	IssuanceCommitted(quantity int, elapsed time.Duration)
	IssuanceRejected(kind string)
	ComplianceRecorded(kind string)
	AuditAppended(entity string)
	AuditDivergence(entity string)
}

// NopMetrics descarta tudo.
type NopMetrics struct{}

func (NopMetrics) IssuanceCommitted(int, time.Duration) {}
func (NopMetrics) IssuanceRejected(string)              {}
func (NopMetrics) ComplianceRecorded(string)            {}
func (NopMetrics) AuditAppended(string)                 {}
func (NopMetrics) AuditDivergence(string)               {}
