package repository

import (
	"context"
	"time"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// EquipmentRepository define o porto de persistência para Equipment.
// Usado dentro de transações para garantir consistência do estoque.
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	// GetForUpdate bloqueia a linha até o fim da transação (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error)
	UpdateStock(ctx context.Context, id string, stock int, at time.Time) error
	Update(ctx context.Context, e *entity.Equipment) error
	Retire(ctx context.Context, id, by string) error
	ListActive(ctx context.Context, search string) ([]*entity.Equipment, error)
	ListBelowMinimum(ctx context.Context) ([]*entity.Equipment, error)
}
