package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var (
	_ repository.TrainingRepository = (*trainingRepo)(nil)
	_ repository.ExamRepository     = (*examRepo)(nil)
)

type trainingRepo struct{ v view }

func (r *trainingRepo) Create(ctx context.Context, t *entity.TrainingRecord) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.trainings {
			if existing.ID == t.ID {
				return domain.ErrDuplicate
			}
		}
		st.trainings = append(st.trainings, *t)
		return nil
	})
}

func (r *trainingRepo) List(_ context.Context, employeeID string) ([]*entity.TrainingRecord, error) {
	var list []*entity.TrainingRecord
	_ = r.v.read(func(st *state) error {
		for _, t := range st.trainings {
			emp, ok := st.employees[t.EmployeeID]
			if !ok || !emp.Status.IsActive() || (employeeID != "" && t.EmployeeID != employeeID) {
				continue
			}
			t := t
			t.EmployeeName = emp.Name
			list = append(list, &t)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].EventDate.After(list[j].EventDate) })
	return list, nil
}

type examRepo struct{ v view }

func (r *examRepo) Create(ctx context.Context, e *entity.ExamRecord) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.exams {
			if existing.ID == e.ID {
				return domain.ErrDuplicate
			}
		}
		st.exams = append(st.exams, *e)
		return nil
	})
}

func (r *examRepo) List(_ context.Context, employeeID string) ([]*entity.ExamRecord, error) {
	var list []*entity.ExamRecord
	_ = r.v.read(func(st *state) error {
		for _, e := range st.exams {
			emp, ok := st.employees[e.EmployeeID]
			if !ok || !emp.Status.IsActive() || (employeeID != "" && e.EmployeeID != employeeID) {
				continue
			}
			e := e
			e.EmployeeName = emp.Name
			list = append(list, &e)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].EventDate.After(list[j].EventDate) })
	return list, nil
}
