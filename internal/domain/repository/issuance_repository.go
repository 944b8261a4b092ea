package repository

import (
	"context"
	"time"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// IssuanceFilter filtro por período da data de entrega (inclusivo).
type IssuanceFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string
}

// IssuanceRepository define o porto de persistência para entregas.
// Não há Update: entregas são imutáveis.
type IssuanceRepository interface {
	// Create falha com domain.ErrDuplicateIssuance se o id já existe.
	Create(ctx context.Context, i *entity.Issuance) error
	GetByID(ctx context.Context, id string) (*entity.Issuance, error)
	// Delete devolve domain.ErrNotFound se não havia registro.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f IssuanceFilter) ([]*entity.Issuance, error)
	ListByExpiry(ctx context.Context) ([]*entity.Issuance, error)
}
