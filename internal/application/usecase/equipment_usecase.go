package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

// EquipmentUseCase cadastro de EPIs. A baixa de estoque por entrega passa pelo ledger;
// aqui o estoque só é definido no cadastro ou corrigido manualmente na atualização.
type EquipmentUseCase struct {
	repo   repository.EquipmentRepository
	policy *access.Policy
	trail  *audit.Trail
	clock  compliance.Clock
}

// NewEquipmentUseCase constrói o caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, policy *access.Policy, trail *audit.Trail, clock compliance.Clock) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, policy: policy, trail: trail, clock: clock}
}

// Create cadastra um EPI ativo.
func (uc *EquipmentUseCase) Create(ctx context.Context, actor access.Actor, in dto.EquipmentRequest, ip string) (*dto.CreatedResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEquipment, access.ActionCreate); err != nil {
		return nil, err
	}
	eq, err := equipmentFromRequest(in)
	if err != nil {
		return nil, err
	}
	eq.Status = entity.StatusActive
	eq.CreatedBy = actor.ID
	if err := uc.repo.Create(ctx, eq); err != nil {
		return nil, storeError("epi: criar", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEquipment,
		EntityID: eq.ID,
		Action:   entity.AuditActionCreate,
		Actor:    actor,
		Details:  map[string]any{"nome": eq.Name, "ca": eq.ApprovalCertificate},
		IP:       ip,
	})
	return &dto.CreatedResponse{ID: eq.ID}, nil
}

// Update substitui os dados do EPI, inclusive o estoque absoluto (correção manual).
func (uc *EquipmentUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.EquipmentRequest, ip string) (*dto.MutationResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEquipment, access.ActionUpdate); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("epi: buscar", err)
	}
	if current == nil || !current.Status.IsActive() {
		return nil, domain.NotFound("EPI não encontrado.")
	}
	in.ID = id
	if in.RegisteredAt == "" {
		in.RegisteredAt = current.RegisteredAt.Format(time.RFC3339)
	}
	if in.UnitCost == nil {
		in.UnitCost = &current.UnitCost
	}
	if in.Stock == nil {
		in.Stock = &current.Stock
	}
	if in.MinimumStock == nil {
		in.MinimumStock = &current.MinimumStock
	}
	eq, err := equipmentFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	eq.UpdatedAt = &now
	eq.UpdatedBy = actor.ID
	if err := uc.repo.Update(ctx, eq); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("EPI não encontrado.")
		}
		return nil, storeError("epi: atualizar", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEquipment,
		EntityID: id,
		Action:   entity.AuditActionUpdate,
		Actor:    actor,
		Details:  map[string]any{"nome": eq.Name, "ca": eq.ApprovalCertificate, "estoque": eq.Stock},
		IP:       ip,
	})
	return &dto.MutationResponse{ID: id, Updated: true}, nil
}

// Retire desativa o EPI.
func (uc *EquipmentUseCase) Retire(ctx context.Context, actor access.Actor, id, ip string) (*dto.MutationResponse, error) {
	if err := uc.policy.Authorize(actor, access.ResourceEquipment, access.ActionDelete); err != nil {
		return nil, err
	}
	if err := uc.repo.Retire(ctx, id, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("EPI não encontrado.")
		}
		return nil, storeError("epi: remover", err)
	}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityEquipment,
		EntityID: id,
		Action:   entity.AuditActionRetire,
		Actor:    actor,
		IP:       ip,
	})
	return &dto.MutationResponse{ID: id, Deleted: true}, nil
}

// GetByID devolve um EPI ativo.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.EquipmentResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	eq, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("epi: buscar", err)
	}
	if eq == nil || !eq.Status.IsActive() {
		return nil, domain.NotFound("EPI não encontrado.")
	}
	return uc.toResponse(eq), nil
}

// List lista EPIs ativos por nome.
func (uc *EquipmentUseCase) List(ctx context.Context, actor access.Actor, search string) ([]dto.EquipmentResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListActive(ctx, validation.FoldKey(search))
	if err != nil {
		return nil, domain.Internal("epi: listar", err)
	}
	return uc.toResponses(list), nil
}

// ListBelowMinimum lista EPIs ativos com estoque abaixo do mínimo.
func (uc *EquipmentUseCase) ListBelowMinimum(ctx context.Context, actor access.Actor) ([]dto.EquipmentResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, domain.Internal("epi: estoque baixo", err)
	}
	return uc.toResponses(list), nil
}

func equipmentFromRequest(in dto.EquipmentRequest) (*entity.Equipment, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	expiry, err := validation.ParseDate(in.CertificateExpiry)
	if err != nil {
		return nil, domain.Validation("Validade do CA inválida.", "validadeCA")
	}
	reg, err := validation.ParseTimestamp(in.RegisteredAt)
	if err != nil {
		return nil, domain.Validation("Data de cadastro inválida.", "dataCadastro")
	}
	cost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.Validation("Valor unitário não pode ser negativo.", "valorUnitario")
		}
		cost = *in.UnitCost
	}
	eq := &entity.Equipment{
		ID:                  in.ID,
		Name:                in.Name,
		ApprovalCertificate: in.ApprovalCertificate,
		Type:                in.Type,
		CertificateExpiry:   expiry,
		UnitCost:            cost,
		Description:         in.Description,
		RegisteredAt:        reg,
	}
	if in.Stock != nil {
		eq.Stock = *in.Stock
	}
	if in.MinimumStock != nil {
		eq.MinimumStock = *in.MinimumStock
	}
	return eq, nil
}

func (uc *EquipmentUseCase) toResponses(list []*entity.Equipment) []dto.EquipmentResponse {
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *uc.toResponse(e))
	}
	return out
}

func (uc *EquipmentUseCase) toResponse(e *entity.Equipment) *dto.EquipmentResponse {
	expiry := e.CertificateExpiry
	return &dto.EquipmentResponse{
		ID:                  e.ID,
		Name:                e.Name,
		ApprovalCertificate: e.ApprovalCertificate,
		Type:                e.Type,
		CertificateExpiry:   validation.FormatDate(&expiry),
		CertificateStatus:   string(uc.clock.Classify(&expiry)),
		Stock:               e.Stock,
		MinimumStock:        e.MinimumStock,
		BelowMinimum:        e.BelowMinimum(),
		UnitCost:            e.UnitCost,
		Description:         e.Description,
		Status:              string(e.Status),
		RegisteredAt:        e.RegisteredAt.Format(time.RFC3339),
		UpdatedAt:           e.UpdatedAt,
		CreatedBy:           e.CreatedBy,
		UpdatedBy:           e.UpdatedBy,
	}
}
