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

var _ repository.EmployeeRepository = (*employeeRepo)(nil)

type employeeRepo struct{ v view }

func (r *employeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.employees[e.ID]; ok {
			return domain.ErrDuplicate
		}
		if cpf := validation.OnlyDigits(e.CPF); cpf != "" {
			for _, other := range st.employees {
				if validation.OnlyDigits(other.CPF) == cpf {
					return domain.ErrDuplicate
				}
			}
		}
		st.employees[e.ID] = *e
		return nil
	})
}

func (r *employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	_ = r.v.read(func(st *state) error {
		if e, ok := st.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, nil
}

func (r *employeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.v.write(ctx, func(st *state) error {
		cur, ok := st.employees[e.ID]
		if !ok || !cur.Status.IsActive() {
			return domain.ErrNotFound
		}
		if cpf := validation.OnlyDigits(e.CPF); cpf != "" {
			for id, other := range st.employees {
				if id != e.ID && validation.OnlyDigits(other.CPF) == cpf {
					return domain.ErrDuplicate
				}
			}
		}
		upd := *e
		upd.Status = cur.Status
		upd.RegisteredAt = cur.RegisteredAt
		upd.CreatedBy = cur.CreatedBy
		st.employees[e.ID] = upd
		return nil
	})
}

func (r *employeeRepo) UpdateTrainingSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error {
	return r.v.write(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		last := s.LastEventDate
		at := s.UpdatedAt
		e.LastTrainingDate = &last
		e.NextTrainingDate = s.NextDue
		e.TrainingPeriodicityMonths = s.PeriodicityMonths
		e.UpdatedAt = &at
		e.UpdatedBy = s.UpdatedBy
		st.employees[id] = e
		return nil
	})
}

func (r *employeeRepo) UpdateExamSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error {
	return r.v.write(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		last := s.LastEventDate
		at := s.UpdatedAt
		e.LastExamDate = &last
		e.NextExamDate = s.NextDue
		e.ExamPeriodicityMonths = s.PeriodicityMonths
		e.UpdatedAt = &at
		e.UpdatedBy = s.UpdatedBy
		st.employees[id] = e
		return nil
	})
}

func (r *employeeRepo) Retire(ctx context.Context, id, by string) error {
	return r.v.write(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok || !e.Status.IsActive() {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		e.Status = entity.StatusRetired
		e.UpdatedAt = &now
		e.UpdatedBy = by
		st.employees[id] = e
		return nil
	})
}

func (r *employeeRepo) ListActive(_ context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var list []*entity.Employee
	_ = r.v.read(func(st *state) error {
		for _, e := range st.employees {
			if !e.Status.IsActive() {
				continue
			}
			if f.Search != "" && !strings.Contains(validation.SearchKey(e.Name, e.Function, e.City), f.Search) {
				continue
			}
			e := e
			list = append(list, &e)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
