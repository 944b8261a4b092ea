// Package compliance classifica datas de vencimento (CA de EPI, treinamento, exame)
// em status de conformidade. É a única fonte dos limiares.
package compliance

import (
	"math"
	"time"
)

// Status classificação de uma data de vencimento.
type Status string

const (
	StatusNoRecord Status = "sem-registro"
	StatusOverdue  Status = "vencido"
	StatusUpcoming Status = "proximo"
	StatusOnTrack  Status = "em-dia"
)

// UpcomingWindowDays limite superior (inclusivo) da janela "próximo".
const UpcomingWindowDays = 30

// DaysUntil dias de calendário entre hoje (meia-noite local em loc) e o vencimento
// interpretado como meia-noite local. Frações de dia arredondam para cima.
func DaysUntil(due, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	n := now.In(loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	d := due
	if d.Location() != time.UTC {
		d = d.In(loc)
	}
	dueDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	// Projetar ambos em UTC evita dias de 23h/25h em trocas de horário de verão.
	return int(math.Ceil(dueDay.Sub(today).Hours() / 24))
}

// ClassifyDays aplica a tabela de limiares: <0 vencido, 0..30 próximo, >30 em dia.
func ClassifyDays(days int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days <= UpcomingWindowDays:
		return StatusUpcoming
	default:
		return StatusOnTrack
	}
}

// Classify classifica um vencimento opcional; nil é StatusNoRecord.
func Classify(due *time.Time, now time.Time, loc *time.Location) Status {
	if due == nil || due.IsZero() {
		return StatusNoRecord
	}
	return ClassifyDays(DaysUntil(*due, now, loc))
}

// Clock fornece "agora" e o fuso usado para a meia-noite local.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock relógio real no fuso informado.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// Classify atalho para Classify com o relógio.
func (c Clock) Classify(due *time.Time) Status {
	return Classify(due, c.Now(), c.Location)
}

// Summary contagem por status.
type Summary struct {
	OnTrack  int `json:"emDia"`
	Upcoming int `json:"proximos"`
	Overdue  int `json:"vencidos"`
	NoRecord int `json:"semRegistro"`
}

// Add contabiliza um status.
func (s *Summary) Add(st Status) {
	switch st {
	case StatusOnTrack:
		s.OnTrack++
	case StatusUpcoming:
		s.Upcoming++
	case StatusOverdue:
		s.Overdue++
	default:
		s.NoRecord++
	}
}
