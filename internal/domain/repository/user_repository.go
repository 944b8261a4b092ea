package repository

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
