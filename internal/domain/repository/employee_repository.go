package repository

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// EmployeeFilter filtros de listagem de colaboradores ativos.
type EmployeeFilter struct {
	Search string // já normalizado com validation.FoldKey
}

// EmployeeRepository define o porto de persistência para Employee (DIP).
// GetByID devolve (nil, nil) quando não existe.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	UpdateTrainingSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error
	UpdateExamSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error
	Retire(ctx context.Context, id, by string) error
	ListActive(ctx context.Context, f EmployeeFilter) ([]*entity.Employee, error)
}
