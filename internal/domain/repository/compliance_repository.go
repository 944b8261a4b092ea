package repository

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// TrainingRepository persistência de treinamentos.
type TrainingRepository interface {
	Create(ctx context.Context, r *entity.TrainingRecord) error
	// List filtra por colaborador quando employeeID != "" e só inclui colaboradores ativos.
	List(ctx context.Context, employeeID string) ([]*entity.TrainingRecord, error)
}

// ExamRepository persistência de exames.
type ExamRepository interface {
	Create(ctx context.Context, r *entity.ExamRecord) error
	List(ctx context.Context, employeeID string) ([]*entity.ExamRecord, error)
}
