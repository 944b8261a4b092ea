// Package audit expõe a trilha de auditoria append-only.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/pkg/logger"
)

// Tamanhos de página da consulta.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Event descreve uma ação a auditar.
type Event struct {
	Entity   string
	EntityID string
	Action   string
	Actor    access.Actor
	Details  any
	IP       string
}

// Trail grava e consulta a trilha.
type Trail struct {
	repo    repository.AuditRepository
	policy  *access.Policy
	metrics ports.Metrics
	log     *logger.Logger
}

// NewTrail constrói a trilha. metrics pode ser nil.
func NewTrail(repo repository.AuditRepository, policy *access.Policy, metrics ports.Metrics, log *logger.Logger) *Trail {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Trail{repo: repo, policy: policy, metrics: metrics, log: log.Component("audit")}
}

// Append grava a entrada; qualquer falha vira INTERNAL_ERROR.
func (t *Trail) Append(ctx context.Context, ev Event) (*entity.AuditEntry, error) {
	var details json.RawMessage
	if ev.Details != nil {
		b, err := json.Marshal(ev.Details)
		if err != nil {
			return nil, domain.Internal("auditoria: serializar detalhes", err)
		}
		details = b
	}
	e := &entity.AuditEntry{
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Action:    ev.Action,
		ActorID:   ev.Actor.ID,
		ActorRole: string(ev.Actor.Role),
		Details:   details,
		IP:        ev.IP,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.repo.Append(ctx, e); err != nil {
		return nil, domain.Internal("auditoria: gravar entrada", err)
	}
	t.metrics.AuditAppended(ev.Entity)
	return e, nil
}

// Record grava após o commit de uma operação já efetivada. A falha não é devolvida ao
// chamador: é registrada como divergência para os operadores.
func (t *Trail) Record(ctx context.Context, ev Event) {
	// o ctx da requisição pode ter sido cancelado logo após o commit
	ctx = context.WithoutCancel(ctx)
	if _, err := t.Append(ctx, ev); err != nil {
		t.metrics.AuditDivergence(ev.Entity)
		t.log.Error().Err(err).
			Str("entity", ev.Entity).
			Str("entity_id", ev.EntityID).
			Str("action", ev.Action).
			Str("actor_id", ev.Actor.ID).
			Msg("divergência de auditoria: operação efetivada sem entrada na trilha")
	}
}

// List devolve as entradas mais recentes. limit <= 0 usa DefaultLimit; acima de MaxLimit é truncado.
func (t *Trail) List(ctx context.Context, actor access.Actor, limit int) ([]*entity.AuditEntry, error) {
	if err := t.policy.Authorize(actor, access.ResourceAudit, access.ActionRead); err != nil {
		return nil, err
	}
	entries, err := t.repo.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, domain.Internal("auditoria: listar", err)
	}
	return entries, nil
}

// ClampLimit aplica o padrão e o teto do tamanho de página.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
