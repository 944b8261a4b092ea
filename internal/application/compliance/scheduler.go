// Package compliance registra treinamentos e exames e mantém a agenda do colaborador.
package compliance

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
	"github.com/jhoicas/epi-control/pkg/logger"
)

// Scheduler grava o evento e a agenda do colaborador na mesma transação.
// O próximo vencimento é gravado como recebido; a periodicidade é apenas armazenada.
type Scheduler struct {
	tx        ports.TxRunner
	employees repository.EmployeeRepository
	trainings repository.TrainingRepository
	exams     repository.ExamRepository
	policy    *access.Policy
	trail     *audit.Trail
	metrics   ports.Metrics
	clock     compliance.Clock
	log       *logger.Logger
}

// NewScheduler constrói o agendador. metrics e log podem ser nil.
func NewScheduler(
	tx ports.TxRunner,
	employees repository.EmployeeRepository,
	trainings repository.TrainingRepository,
	exams repository.ExamRepository,
	policy *access.Policy,
	trail *audit.Trail,
	metrics ports.Metrics,
	clock compliance.Clock,
	log *logger.Logger,
) *Scheduler {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if clock.Now == nil {
		clock = compliance.NewClock(time.UTC)
	}
	return &Scheduler{
		tx:        tx,
		employees: employees,
		trainings: trainings,
		exams:     exams,
		policy:    policy,
		trail:     trail,
		metrics:   metrics,
		clock:     clock,
		log:       log.Component("compliance"),
	}
}

// event forma comum de treinamento e exame já validada.
type event struct {
	id           string
	employeeID   string
	eventDate    time.Time
	nextDue      *time.Time
	periodicity  *int
	registeredAt time.Time
}

func parseEvent(id, employeeID, eventDate, eventField, nextDue, nextField, registeredAt string, periodicity *int) (event, error) {
	d, err := validation.ParseDate(eventDate)
	if err != nil {
		return event{}, domain.Validation("Data do evento inválida.", eventField)
	}
	next, err := validation.ParseOptionalDate(nextDue)
	if err != nil {
		return event{}, domain.Validation("Próximo vencimento inválido.", nextField)
	}
	reg, err := validation.ParseTimestamp(registeredAt)
	if err != nil {
		return event{}, domain.Validation("Data de cadastro inválida.", "dataCadastro")
	}
	return event{id: id, employeeID: employeeID, eventDate: d, nextDue: next, periodicity: periodicity, registeredAt: reg}, nil
}

// RecordTraining registra um treinamento e atualiza último/próximo treinamento do colaborador.
func (s *Scheduler) RecordTraining(ctx context.Context, actor access.Actor, in dto.TrainingRequest, ip string) (*dto.CreatedResponse, error) {
	if err := s.policy.Authorize(actor, access.ResourceTraining, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ev, err := parseEvent(in.ID, in.EmployeeID, in.EventDate, "dataTreinamento", in.NextDue, "proximoTreinamento", in.RegisteredAt, in.PeriodicityMonths)
	if err != nil {
		return nil, err
	}
	err = s.record(ctx, actor, ev, func(ctx context.Context, repos ports.TxRepos, upd entity.ScheduleUpdate) error {
		rec := &entity.TrainingRecord{
			ID:           ev.id,
			EmployeeID:   ev.employeeID,
			EventDate:    ev.eventDate,
			NextDue:      ev.nextDue,
			Type:         in.Type,
			Notes:        in.Notes,
			RegisteredAt: ev.registeredAt,
			CreatedBy:    actor.ID,
		}
		if err := repos.Trainings.Create(ctx, rec); err != nil {
			return err
		}
		return repos.Employees.UpdateTrainingSchedule(ctx, ev.employeeID, upd)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ComplianceRecorded(entity.ComplianceTraining)
	s.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityTraining,
		EntityID: ev.id,
		Action:   entity.AuditActionCreate,
		Actor:    actor,
		Details:  map[string]any{"colaboradorId": ev.employeeID},
		IP:       ip,
	})
	return &dto.CreatedResponse{ID: ev.id}, nil
}

// RecordExam registra um exame e atualiza último/próximo exame do colaborador.
func (s *Scheduler) RecordExam(ctx context.Context, actor access.Actor, in dto.ExamRequest, ip string) (*dto.CreatedResponse, error) {
	if err := s.policy.Authorize(actor, access.ResourceExam, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ev, err := parseEvent(in.ID, in.EmployeeID, in.EventDate, "dataExame", in.NextDue, "proximoExame", in.RegisteredAt, in.PeriodicityMonths)
	if err != nil {
		return nil, err
	}
	err = s.record(ctx, actor, ev, func(ctx context.Context, repos ports.TxRepos, upd entity.ScheduleUpdate) error {
		rec := &entity.ExamRecord{
			ID:           ev.id,
			EmployeeID:   ev.employeeID,
			EventDate:    ev.eventDate,
			NextDue:      ev.nextDue,
			Result:       in.Result,
			Notes:        in.Notes,
			RegisteredAt: ev.registeredAt,
			CreatedBy:    actor.ID,
		}
		if err := repos.Exams.Create(ctx, rec); err != nil {
			return err
		}
		return repos.Employees.UpdateExamSchedule(ctx, ev.employeeID, upd)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ComplianceRecorded(entity.ComplianceExam)
	var result any
	if in.Result != "" {
		result = in.Result
	}
	s.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityExam,
		EntityID: ev.id,
		Action:   entity.AuditActionCreate,
		Actor:    actor,
		Details:  map[string]any{"colaboradorId": ev.employeeID, "resultado": result},
		IP:       ip,
	})
	return &dto.CreatedResponse{ID: ev.id}, nil
}

// record checa o colaborador e executa write numa transação: ou o evento e a agenda
// ficam visíveis juntos, ou nenhum dos dois.
func (s *Scheduler) record(ctx context.Context, actor access.Actor, ev event, write func(context.Context, ports.TxRepos, entity.ScheduleUpdate) error) error {
	if err := s.checkEmployee(ctx, s.employees, ev.employeeID); err != nil {
		return err
	}
	err := s.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := s.checkEmployee(ctx, repos.Employees, ev.employeeID); err != nil {
			return err
		}
		return write(ctx, repos, entity.ScheduleUpdate{
			LastEventDate:     ev.eventDate,
			NextDue:           ev.nextDue,
			PeriodicityMonths: ev.periodicity,
			UpdatedAt:         time.Now().UTC(),
			UpdatedBy:         actor.ID,
		})
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return de
		}
		return domain.Internal("conformidade: transação", err)
	}
	return nil
}

func (s *Scheduler) checkEmployee(ctx context.Context, repo repository.EmployeeRepository, id string) error {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return domain.Internal("conformidade: buscar colaborador", err)
	}
	if emp == nil {
		return domain.ErrEmployeeNotFound
	}
	if !emp.Status.IsActive() {
		return domain.ErrEmployeeRetired
	}
	return nil
}

// ListTrainings lista os treinamentos de colaboradores ativos (filtro opcional por colaborador).
func (s *Scheduler) ListTrainings(ctx context.Context, actor access.Actor, employeeID string) ([]dto.ComplianceEventResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := s.trainings.List(ctx, employeeID)
	if err != nil {
		return nil, domain.Internal("conformidade: listar treinamentos", err)
	}
	out := make([]dto.ComplianceEventResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ComplianceEventResponse{
			ID:           t.ID,
			Kind:         entity.ComplianceTraining,
			EmployeeID:   t.EmployeeID,
			EmployeeName: t.EmployeeName,
			EventDate:    validation.FormatDate(&t.EventDate),
			NextDue:      validation.FormatDate(t.NextDue),
			DueStatus:    string(s.clock.Classify(t.NextDue)),
			Type:         t.Type,
			Notes:        t.Notes,
			RegisteredAt: t.RegisteredAt,
			CreatedBy:    t.CreatedBy,
		})
	}
	return out, nil
}

// ListExams lista os exames de colaboradores ativos (filtro opcional por colaborador).
func (s *Scheduler) ListExams(ctx context.Context, actor access.Actor, employeeID string) ([]dto.ComplianceEventResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := s.exams.List(ctx, employeeID)
	if err != nil {
		return nil, domain.Internal("conformidade: listar exames", err)
	}
	out := make([]dto.ComplianceEventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ComplianceEventResponse{
			ID:           e.ID,
			Kind:         entity.ComplianceExam,
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			EventDate:    validation.FormatDate(&e.EventDate),
			NextDue:      validation.FormatDate(e.NextDue),
			DueStatus:    string(s.clock.Classify(e.NextDue)),
			Result:       e.Result,
			Notes:        e.Notes,
			RegisteredAt: e.RegisteredAt,
			CreatedBy:    e.CreatedBy,
		})
	}
	return out, nil
}

// Summary conta, entre os colaboradores ativos, o status do próximo treinamento e do próximo exame.
func (s *Scheduler) Summary(ctx context.Context, actor access.Actor) (*dto.ComplianceSummary, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	emps, err := s.employees.ListActive(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, domain.Internal("conformidade: listar colaboradores", err)
	}
	var trainings, exams compliance.Summary
	for _, e := range emps {
		trainings.Add(s.clock.Classify(e.NextTrainingDate))
		exams.Add(s.clock.Classify(e.NextExamDate))
	}
	return &dto.ComplianceSummary{Trainings: toCounts(trainings), Exams: toCounts(exams)}, nil
}

func toCounts(s compliance.Summary) dto.StatusCounts {
	return dto.StatusCounts{OnTrack: s.OnTrack, Upcoming: s.Upcoming, Overdue: s.Overdue, NoRecord: s.NoRecord}
}
