package memory

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.usersMu.Lock()
	defer r.s.usersMu.Unlock()
	for _, existing := range r.s.users {
		if existing.ID == u.ID || existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.usersMu.RLock()
	defer r.s.usersMu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.usersMu.RLock()
	defer r.s.usersMu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
