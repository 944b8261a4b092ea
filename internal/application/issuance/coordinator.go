// Package issuance coordena a entrega de EPI: validação, baixa de estoque, assinatura,
// gravação e auditoria como uma única unidade.
package issuance

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/inventory"
	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/signature"
	"github.com/jhoicas/epi-control/internal/domain/validation"
	"github.com/jhoicas/epi-control/pkg/logger"
)

const unknownOrigin = "unknown"

// RequestMeta metadados da requisição que entram na assinatura.
type RequestMeta struct {
	Device string // User-Agent
	IP     string
}

// Deps dependências do Coordinator. Receipts e Metrics são opcionais.
type Deps struct {
	Tx        ports.TxRunner
	Employees repository.EmployeeRepository
	Equipment repository.EquipmentRepository
	Issuances repository.IssuanceRepository
	Policy    *access.Policy
	Trail     *audit.Trail
	Receipts  ports.ReceiptGenerator
	Metrics   ports.Metrics
	Clock     compliance.Clock
	Log       *logger.Logger
}

// Coordinator orquestra a criação e a consulta de entregas.
type Coordinator struct {
	tx        ports.TxRunner
	employees repository.EmployeeRepository
	equipment repository.EquipmentRepository
	issuances repository.IssuanceRepository
	policy    *access.Policy
	trail     *audit.Trail
	receipts  ports.ReceiptGenerator
	metrics   ports.Metrics
	clock     compliance.Clock
	log       *logger.Logger
}

// NewCoordinator constrói o coordenador.
func NewCoordinator(d Deps) *Coordinator {
	c := &Coordinator{
		tx:        d.Tx,
		employees: d.Employees,
		equipment: d.Equipment,
		issuances: d.Issuances,
		policy:    d.Policy,
		trail:     d.Trail,
		receipts:  d.Receipts,
		metrics:   d.Metrics,
		clock:     d.Clock,
		log:       d.Log,
	}
	if c.metrics == nil {
		c.metrics = ports.NopMetrics{}
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.clock.Now == nil {
		c.clock = compliance.NewClock(time.UTC)
	}
	c.log = c.log.Component("issuance")
	return c
}

// validated entrada já normalizada, pronta para a transação.
type validated struct {
	id           string
	employeeID   string
	equipmentID  string
	issueDate    time.Time
	expiryDate   time.Time
	quantity     int
	notes        string
	registeredAt time.Time
}

// Issue registra uma entrega. Toda validação de entrada e de estado roda antes de abrir a
// transação; dentro dela, baixa de estoque, hash e gravação são atômicos. A auditoria é
// gravada depois do commit e sua falha não desfaz a entrega.
func (c *Coordinator) Issue(ctx context.Context, actor access.Actor, in dto.CreateIssuanceRequest, meta RequestMeta) (*dto.IssuanceReceipt, error) {
	start := time.Now()
	rec, err := c.issue(ctx, actor, in, meta)
	if err != nil {
		c.metrics.IssuanceRejected(string(domain.KindOf(err)))
		return nil, err
	}
	c.metrics.IssuanceCommitted(rec.Quantity, time.Since(start))

	c.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityIssuance,
		EntityID: rec.ID,
		Action:   entity.AuditActionCreate,
		Actor:    actor,
		Details: map[string]any{
			"colaboradorId":  rec.EmployeeID,
			"epiId":          rec.EquipmentID,
			"quantidade":     rec.Quantity,
			"assinaturaHash": rec.SignatureHash,
		},
		IP: meta.IP,
	})

	c.log.Info().
		Str("issuance_id", rec.ID).
		Str("employee_id", rec.EmployeeID).
		Str("equipment_id", rec.EquipmentID).
		Int("quantity", rec.Quantity).
		Str("actor_id", actor.ID).
		Msg("entrega registrada")

	return &dto.IssuanceReceipt{
		ID:                 rec.ID,
		SignatureHash:      rec.SignatureHash,
		SignatureTimestamp: signature.FormatTimestamp(rec.SignatureTimestamp),
	}, nil
}

func (c *Coordinator) issue(ctx context.Context, actor access.Actor, in dto.CreateIssuanceRequest, meta RequestMeta) (*entity.Issuance, error) {
	if err := c.policy.Authorize(actor, access.ResourceIssuance, access.ActionCreate); err != nil {
		return nil, err
	}
	v, err := validateRequest(in)
	if err != nil {
		return nil, err
	}

	// Checagem de estado antes da transação: falha cedo sem segurar locks.
	if _, err := c.activeEmployee(ctx, c.employees, v.employeeID); err != nil {
		return nil, err
	}
	eq, err := c.equipment.GetByID(ctx, v.equipmentID)
	if err != nil {
		return nil, domain.Internal("entrega: buscar EPI", err)
	}
	if eq == nil {
		return nil, domain.ErrEquipmentNotFound
	}
	if !eq.Status.IsActive() {
		return nil, domain.ErrEquipmentRetired
	}

	device := meta.Device
	if device == "" {
		device = unknownOrigin
	}
	ip := meta.IP
	if ip == "" {
		ip = unknownOrigin
	}

	var rec *entity.Issuance
	err = c.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		ts := signature.Now()
		locked, err := inventory.ReserveAndDecrement(ctx, repos.Equipment, v.equipmentID, v.quantity, ts)
		if err != nil {
			return err
		}
		// relido dentro da transação: o colaborador pode ter sido desativado entre a checagem e o lock
		emp, err := c.activeEmployee(ctx, repos.Employees, v.employeeID)
		if err != nil {
			return err
		}
		hash, err := signature.Compute(signature.Payload{
			EmployeeID:    emp.ID,
			EquipmentID:   locked.ID,
			IssueDate:     v.issueDate,
			Quantity:      v.quantity,
			ActorID:       actor.ID,
			Timestamp:     ts,
			Device:        device,
			SourceAddress: ip,
		})
		if err != nil {
			return err
		}
		rec = &entity.Issuance{
			ID:                 v.id,
			EmployeeID:         emp.ID,
			EmployeeName:       emp.Name,
			EquipmentID:        locked.ID,
			EquipmentName:      locked.Name,
			EquipmentCA:        locked.ApprovalCertificate,
			IssueDate:          v.issueDate,
			ExpiryDate:         v.expiryDate,
			Quantity:           v.quantity,
			Notes:              v.notes,
			SignatureHash:      hash,
			SignatureDevice:    device,
			SignatureIP:        ip,
			SignatureTimestamp: ts,
			RegisteredAt:       v.registeredAt,
			CreatedAt:          ts,
			CreatedBy:          actor.ID,
		}
		return repos.Issuances.Create(ctx, rec)
	})
	if err != nil {
		return nil, normalize("entrega: transação", err)
	}
	return rec, nil
}

func validateRequest(in dto.CreateIssuanceRequest) (validated, error) {
	if err := dto.Validate(in); err != nil {
		return validated{}, err
	}
	if *in.Quantity <= 0 {
		return validated{}, domain.Validation("Quantidade inválida.", "quantidade")
	}
	issueDate, errIssue := validation.ParseDate(in.IssueDate)
	expiryDate, errExpiry := validation.ParseDate(in.ExpiryDate)
	if errIssue != nil || errExpiry != nil {
		var fields []string
		if errIssue != nil {
			fields = append(fields, "dataEntrega")
		}
		if errExpiry != nil {
			fields = append(fields, "dataValidade")
		}
		return validated{}, domain.Validation("Datas inválidas.", fields...)
	}
	if expiryDate.Before(issueDate) {
		return validated{}, domain.ErrInvalidDateRange
	}
	if !*in.Signed {
		return validated{}, domain.ErrSignatureRequired
	}
	registeredAt, err := validation.ParseTimestamp(in.RegisteredAt)
	if err != nil {
		return validated{}, domain.Validation("Data de cadastro inválida.", "dataCadastro")
	}
	return validated{
		id:           in.ID,
		employeeID:   in.EmployeeID,
		equipmentID:  in.EquipmentID,
		issueDate:    issueDate,
		expiryDate:   expiryDate,
		quantity:     *in.Quantity,
		notes:        in.Notes,
		registeredAt: registeredAt,
	}, nil
}

func (c *Coordinator) activeEmployee(ctx context.Context, repo repository.EmployeeRepository, id string) (*entity.Employee, error) {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("entrega: buscar colaborador", err)
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if !emp.Status.IsActive() {
		return nil, domain.ErrEmployeeRetired
	}
	return emp, nil
}

// Delete remove a entrega permanentemente. O estoque baixado não é devolvido:
// correções de inventário são feitas manualmente pela atualização do EPI.
func (c *Coordinator) Delete(ctx context.Context, actor access.Actor, id string, meta RequestMeta) error {
	if err := c.policy.Authorize(actor, access.ResourceIssuance, access.ActionDelete); err != nil {
		return err
	}
	if id == "" {
		return domain.Validation("Campos obrigatórios ausentes.", "id")
	}
	if err := c.issuances.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Entrega não encontrada.")
		}
		return normalize("entrega: remover", err)
	}
	c.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityIssuance,
		EntityID: id,
		Action:   entity.AuditActionDelete,
		Actor:    actor,
		Details:  map[string]any{"estoqueRestaurado": false},
		IP:       meta.IP,
	})
	c.log.Warn().Str("issuance_id", id).Str("actor_id", actor.ID).Msg("entrega removida; estoque não restaurado")
	return nil
}

// Get devolve a entrega.
func (c *Coordinator) Get(ctx context.Context, actor access.Actor, id string) (*dto.IssuanceResponse, error) {
	rec, err := c.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return c.toResponse(rec), nil
}

// List devolve as entregas do período (datas inclusivas), mais recentes primeiro.
func (c *Coordinator) List(ctx context.Context, actor access.Actor, in dto.IssuanceListRequest) ([]dto.IssuanceResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	from, err := validation.ParseOptionalDate(in.From)
	if err != nil {
		return nil, domain.Validation("Datas inválidas.", "from")
	}
	to, err := validation.ParseOptionalDate(in.To)
	if err != nil {
		return nil, domain.Validation("Datas inválidas.", "to")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Validation("Período inválido.", "from", "to")
	}
	list, err := c.issuances.List(ctx, repository.IssuanceFilter{From: from, To: to, EmployeeID: in.EmployeeID})
	if err != nil {
		return nil, domain.Internal("entrega: listar", err)
	}
	out := make([]dto.IssuanceResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *c.toResponse(rec))
	}
	return out, nil
}

// Verify recalcula o hash a partir dos campos canônicos gravados.
func (c *Coordinator) Verify(ctx context.Context, actor access.Actor, id string) (*dto.IssuanceVerification, error) {
	rec, err := c.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	computed, err := signature.Compute(PayloadOf(rec))
	if err != nil {
		return nil, domain.Internal("entrega: recalcular assinatura", err)
	}
	return &dto.IssuanceVerification{
		ID:           rec.ID,
		Valid:        computed == rec.SignatureHash,
		StoredHash:   rec.SignatureHash,
		ComputedHash: computed,
	}, nil
}

// Receipt gera o comprovante em PDF da entrega.
func (c *Coordinator) Receipt(ctx context.Context, actor access.Actor, id string) ([]byte, error) {
	if c.receipts == nil {
		return nil, domain.Internal("entrega: comprovante", errors.New("gerador de PDF não configurado"))
	}
	rec, err := c.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	ok, err := signature.Verify(PayloadOf(rec), rec.SignatureHash)
	if err != nil {
		return nil, domain.Internal("entrega: recalcular assinatura", err)
	}
	pdf, err := c.receipts.GenerateReceiptPDF(ctx, rec, ok)
	if err != nil {
		return nil, domain.Internal("entrega: gerar comprovante", err)
	}
	return pdf, nil
}

func (c *Coordinator) load(ctx context.Context, actor access.Actor, id string) (*entity.Issuance, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	rec, err := c.issuances.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("entrega: buscar", err)
	}
	if rec == nil {
		return nil, domain.NotFound("Entrega não encontrada.")
	}
	return rec, nil
}

// PayloadOf reconstrói o payload assinado a partir da entrega gravada.
func PayloadOf(rec *entity.Issuance) signature.Payload {
	return signature.Payload{
		EmployeeID:    rec.EmployeeID,
		EquipmentID:   rec.EquipmentID,
		IssueDate:     rec.IssueDate,
		Quantity:      rec.Quantity,
		ActorID:       rec.CreatedBy,
		Timestamp:     rec.SignatureTimestamp,
		Device:        rec.SignatureDevice,
		SourceAddress: rec.SignatureIP,
	}
}

func (c *Coordinator) toResponse(rec *entity.Issuance) *dto.IssuanceResponse {
	expiry := rec.ExpiryDate
	return &dto.IssuanceResponse{
		ID:                 rec.ID,
		EmployeeID:         rec.EmployeeID,
		EmployeeName:       rec.EmployeeName,
		EquipmentID:        rec.EquipmentID,
		EquipmentName:      rec.EquipmentName,
		EquipmentCA:        rec.EquipmentCA,
		IssueDate:          validation.FormatDate(&rec.IssueDate),
		ExpiryDate:         validation.FormatDate(&expiry),
		ExpiryStatus:       string(c.clock.Classify(&expiry)),
		Quantity:           rec.Quantity,
		Notes:              rec.Notes,
		SignatureHash:      rec.SignatureHash,
		SignatureDevice:    rec.SignatureDevice,
		SignatureIP:        rec.SignatureIP,
		SignatureTimestamp: signature.FormatTimestamp(rec.SignatureTimestamp),
		RegisteredAt:       rec.RegisteredAt.Format(time.RFC3339),
		CreatedAt:          rec.CreatedAt,
		CreatedBy:          rec.CreatedBy,
	}
}

// normalize preserva erros de domínio e converte o resto em INTERNAL_ERROR.
func normalize(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.Internal(op, err)
}
