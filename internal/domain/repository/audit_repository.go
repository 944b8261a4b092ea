package repository

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// AuditRepository trilha append-only. Não existe Update nem Delete.
type AuditRepository interface {
	// Append grava a entrada e preenche ID e CreatedAt.
	Append(ctx context.Context, e *entity.AuditEntry) error
	// ListRecent devolve as entradas mais recentes primeiro (ordem por ID desc).
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error)
}
