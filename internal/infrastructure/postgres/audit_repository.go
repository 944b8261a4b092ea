package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo trilha de auditoria sobre PostgreSQL. A tabela rejeita UPDATE e DELETE por trigger.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository constrói o adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append grava a entrada; ID e CreatedAt vêm do banco.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	var details any
	if len(e.Details) > 0 {
		details = string(e.Details)
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO audit_logs (entidade, entidade_id, acao, usuario_id, usuario_role, detalhes, ip)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
		RETURNING id, created_at`,
		e.Entity, e.EntityID, e.Action, nullIfEmpty(e.ActorID), nullIfEmpty(e.ActorRole), details, nullIfEmpty(e.IP),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit_log: %w", err)
	}
	return nil
}

// ListRecent entradas mais recentes primeiro.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, entidade, entidade_id, acao, COALESCE(usuario_id, ''), COALESCE(usuario_role, ''),
			COALESCE(detalhes::text, ''), COALESCE(ip, ''), created_at
		FROM audit_logs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit_logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var details string
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.ActorID, &e.ActorRole,
			&details, &e.IP, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit_log: %w", err)
		}
		if details != "" {
			e.Details = []byte(details)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
