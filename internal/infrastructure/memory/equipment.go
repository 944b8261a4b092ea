package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

var _ repository.EquipmentRepository = (*equipmentRepo)(nil)

type equipmentRepo struct{ v view }

func (r *equipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.equipment[e.ID]; ok {
			return domain.ErrDuplicate
		}
		st.equipment[e.ID] = *e
		return nil
	})
}

func (r *equipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	var out *entity.Equipment
	_ = r.v.read(func(st *state) error {
		if e, ok := st.equipment[id]; ok {
			out = &e
		}
		return nil
	})
	return out, nil
}

// GetForUpdate dentro de Run a transação já é exclusiva.
func (r *equipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, id)
}

func (r *equipmentRepo) UpdateStock(ctx context.Context, id string, stock int, at time.Time) error {
	return r.v.write(ctx, func(st *state) error {
		e, ok := st.equipment[id]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			// equivalente ao CHECK (estoque >= 0) do PostgreSQL
			return domain.ErrInsufficientStock
		}
		e.Stock = stock
		e.UpdatedAt = &at
		st.equipment[id] = e
		return nil
	})
}

func (r *equipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	return r.v.write(ctx, func(st *state) error {
		cur, ok := st.equipment[e.ID]
		if !ok || !cur.Status.IsActive() {
			return domain.ErrNotFound
		}
		upd := *e
		upd.Status = cur.Status
		upd.RegisteredAt = cur.RegisteredAt
		upd.CreatedBy = cur.CreatedBy
		st.equipment[e.ID] = upd
		return nil
	})
}

func (r *equipmentRepo) Retire(ctx context.Context, id, by string) error {
	return r.v.write(ctx, func(st *state) error {
		e, ok := st.equipment[id]
		if !ok || !e.Status.IsActive() {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		e.Status = entity.StatusRetired
		e.UpdatedAt = &now
		e.UpdatedBy = by
		st.equipment[id] = e
		return nil
	})
}

func (r *equipmentRepo) ListActive(_ context.Context, search string) ([]*entity.Equipment, error) {
	return r.list(func(e entity.Equipment) bool {
		return search == "" || strings.Contains(validation.SearchKey(e.Name, e.ApprovalCertificate, e.Type), search)
	}), nil
}

func (r *equipmentRepo) ListBelowMinimum(_ context.Context) ([]*entity.Equipment, error) {
	return r.list(func(e entity.Equipment) bool { return e.BelowMinimum() }), nil
}

func (r *equipmentRepo) list(keep func(entity.Equipment) bool) []*entity.Equipment {
	var list []*entity.Equipment
	_ = r.v.read(func(st *state) error {
		for _, e := range st.equipment {
			if e.Status.IsActive() && keep(e) {
				e := e
				list = append(list, &e)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
