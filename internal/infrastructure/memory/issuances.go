package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.IssuanceRepository = (*issuanceRepo)(nil)

type issuanceRepo struct{ v view }

func (r *issuanceRepo) Create(ctx context.Context, i *entity.Issuance) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.issuances[i.ID]; ok {
			return domain.ErrDuplicateIssuance
		}
		st.issuances[i.ID] = *i
		return nil
	})
}

func (r *issuanceRepo) GetByID(_ context.Context, id string) (*entity.Issuance, error) {
	var out *entity.Issuance
	_ = r.v.read(func(st *state) error {
		if i, ok := st.issuances[id]; ok {
			out = &i
		}
		return nil
	})
	return out, nil
}

func (r *issuanceRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.issuances[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.issuances, id)
		return nil
	})
}

func (r *issuanceRepo) List(_ context.Context, f repository.IssuanceFilter) ([]*entity.Issuance, error) {
	var list []*entity.Issuance
	_ = r.v.read(func(st *state) error {
		for _, i := range st.issuances {
			if f.From != nil && i.IssueDate.Before(*f.From) {
				continue
			}
			if f.To != nil && i.IssueDate.After(*f.To) {
				continue
			}
			if f.EmployeeID != "" && i.EmployeeID != f.EmployeeID {
				continue
			}
			i := i
			list = append(list, &i)
		}
		return nil
	})
	sort.Slice(list, func(a, b int) bool {
		if !list[a].IssueDate.Equal(list[b].IssueDate) {
			return list[a].IssueDate.After(list[b].IssueDate)
		}
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	return list, nil
}

func (r *issuanceRepo) ListByExpiry(_ context.Context) ([]*entity.Issuance, error) {
	var list []*entity.Issuance
	_ = r.v.read(func(st *state) error {
		for _, i := range st.issuances {
			i := i
			list = append(list, &i)
		}
		return nil
	})
	sort.Slice(list, func(a, b int) bool { return list[a].ExpiryDate.Before(list[b].ExpiryDate) })
	return list, nil
}
