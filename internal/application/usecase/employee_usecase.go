package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

// EmployeeUseCase cadastro de colaboradores. Remoção é lógica (status retired).
type EmployeeUseCase struct {
	repo   repository.EmployeeRepository
	policy *access.Policy
	trail  *audit.Trail
	clock  compliance.Clock
}

// NewEmployeeUseCase constrói o caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, policy *access.Policy, trail *audit.Trail, clock compliance.Clock) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, policy: policy, trail: trail, clock: clock}
}

// Create cadastra um colaborador ativo.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor access.Actor, in dto.EmployeeRequest, ip string) (*dto.CreatedResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEmployee, access.ActionCreate); err != nil {
		return nil, err
	}
	emp, err := employeeFromRequest(in)
	if err != nil {
		return nil, err
	}
	emp.Status = entity.StatusActive
	emp.CreatedBy = actor.ID
	if err := uc.repo.Create(ctx, emp); err != nil {
		return nil, storeError("colaborador: criar", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEmployee,
		EntityID: emp.ID,
		Action:   entity.AuditActionCreate,
		Actor:    actor,
		Details:  map[string]any{"nome": emp.Name},
		IP:       ip,
	})
	return &dto.CreatedResponse{ID: emp.ID}, nil
}

// Update substitui os dados cadastrais de um colaborador ativo.
// dataCadastro ausente mantém a data original.
func (uc *EmployeeUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.EmployeeRequest, ip string) (*dto.MutationResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEmployee, access.ActionUpdate); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("colaborador: buscar", err)
	}
	if current == nil || !current.Status.IsActive() {
		return nil, domain.NotFound("Colaborador não encontrado.")
	}
	in.ID = id
	if in.RegisteredAt == "" {
		in.RegisteredAt = current.RegisteredAt.Format(time.RFC3339)
	}
	emp, err := employeeFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	emp.UpdatedAt = &now
	emp.UpdatedBy = actor.ID
	if err := uc.repo.Update(ctx, emp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Colaborador não encontrado.")
		}
		return nil, storeError("colaborador: atualizar", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEmployee,
		EntityID: id,
		Action:   entity.AuditActionUpdate,
		Actor:    actor,
		Details:  map[string]any{"nome": emp.Name},
		IP:       ip,
	})
	return &dto.MutationResponse{ID: id, Updated: true}, nil
}

// Retire desativa o colaborador. O histórico de entregas permanece legível.
func (uc *EmployeeUseCase) Retire(ctx context.Context, actor access.Actor, id, ip string) (*dto.MutationResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEmployee, access.ActionDelete); err != nil {
		return nil, err
	}
	if err := uc.repo.Retire(ctx, id, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Colaborador não encontrado.")
		}
		return nil, storeError("colaborador: remover", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEmployee,
		EntityID: id,
		Action:   entity.AuditActionRetire,
		Actor:    actor,
		IP:       ip,
	})
	return &dto.MutationResponse{ID: id, Deleted: true}, nil
}

// GetByID devolve um colaborador ativo.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.EmployeeResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("colaborador: buscar", err)
	}
	if emp == nil || !emp.Status.IsActive() {
		return nil, domain.NotFound("Colaborador não encontrado.")
	}
	return uc.toResponse(emp), nil
}

// List lista colaboradores ativos por nome; search ignora acentos e caixa.
func (uc *EmployeeUseCase) List(ctx context.Context, actor access.Actor, search string) ([]dto.EmployeeResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListActive(ctx, repository.EmployeeFilter{Search: validation.FoldKey(search)})
	if err != nil {
		return nil, domain.Internal("colaborador: listar", err)
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *uc.toResponse(e))
	}
	return out, nil
}

func employeeFromRequest(in dto.EmployeeRequest) (*entity.Employee, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !validation.ValidCPF(in.CPF) {
		return nil, domain.Validation("CPF inválido.", "cpf")
	}
	var bad []string
	date := func(field, s string) *time.Time {
		t, err := validation.ParseOptionalDate(s)
		if err != nil {
			bad = append(bad, field)
		}
		return t
	}
	emp := &entity.Employee{
		ID:                        in.ID,
		Name:                      in.Name,
		CPF:                       in.CPF,
		RG:                        in.RG,
		BirthDate:                 date("dataNascimento", in.BirthDate),
		Function:                  in.Function,
		Sector:                    in.Sector,
		City:                      in.City,
		Phone:                     in.Phone,
		Email:                     in.Email,
		LastTrainingDate:          date("dataUltimoTreinamento", in.LastTrainingDate),
		NextTrainingDate:          date("proximoTreinamento", in.NextTrainingDate),
		TrainingPeriodicityMonths: in.TrainingPeriodicityMonths,
		LastExamDate:              date("dataUltimoExame", in.LastExamDate),
		NextExamDate:              date("proximoExame", in.NextExamDate),
		ExamPeriodicityMonths:     in.ExamPeriodicityMonths,
	}
	reg, err := validation.ParseTimestamp(in.RegisteredAt)
	if err != nil {
		bad = append(bad, "dataCadastro")
	}
	if len(bad) > 0 {
		return nil, domain.Validation("Datas inválidas.", bad...)
	}
	emp.RegisteredAt = reg
	return emp, nil
}

func (uc *EmployeeUseCase) toResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:                        e.ID,
		Name:                      e.Name,
		CPF:                       e.CPF,
		RG:                        e.RG,
		BirthDate:                 validation.FormatDate(e.BirthDate),
		Function:                  e.Function,
		Sector:                    e.Sector,
		City:                      e.City,
		Phone:                     e.Phone,
		Email:                     e.Email,
		LastTrainingDate:          validation.FormatDate(e.LastTrainingDate),
		NextTrainingDate:          validation.FormatDate(e.NextTrainingDate),
		TrainingPeriodicityMonths: e.TrainingPeriodicityMonths,
		TrainingStatus:            string(uc.clock.Classify(e.NextTrainingDate)),
		LastExamDate:              validation.FormatDate(e.LastExamDate),
		NextExamDate:              validation.FormatDate(e.NextExamDate),
		ExamPeriodicityMonths:     e.ExamPeriodicityMonths,
		ExamStatus:                string(uc.clock.Classify(e.NextExamDate)),
		Status:                    string(e.Status),
		RegisteredAt:              e.RegisteredAt.Format(time.RFC3339),
		UpdatedAt:                 e.UpdatedAt,
		CreatedBy:                 e.CreatedBy,
		UpdatedBy:                 e.UpdatedBy,
	}
}

// storeError preserva erros de domínio (ex.: duplicidade) e converte o resto em INTERNAL_ERROR.
func storeError(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.Internal(op, err)
}
