package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

// ReportUseCase relatórios somente leitura.
type ReportUseCase struct {
	reports   repository.ReportRepository
	employees repository.EmployeeRepository
	equipment repository.EquipmentRepository
	issuances repository.IssuanceRepository
	clock     compliance.Clock
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(
	reports repository.ReportRepository,
	employees repository.EmployeeRepository,
	equipment repository.EquipmentRepository,
	issuances repository.IssuanceRepository,
	clock compliance.Clock,
) *ReportUseCase {
	return &ReportUseCase{reports: reports, employees: employees, equipment: equipment, issuances: issuances, clock: clock}
}

// Dashboard totais do painel; as contagens rodam em paralelo.
func (uc *ReportUseCase) Dashboard(ctx context.Context, actor access.Actor) (*dto.DashboardStats, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	var out dto.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}
	count(&out.ActiveEmployees, uc.reports.CountActiveEmployees)
	count(&out.ActiveEquipment, uc.reports.CountActiveEquipment)
	count(&out.Issuances, uc.reports.CountIssuances)
	count(&out.LowStock, uc.reports.CountLowStock)
	if err := g.Wait(); err != nil {
		return nil, domain.Internal("relatório: painel", err)
	}
	return &out, nil
}

// Expirations entregas por validade crescente com o status de vencimento.
func (uc *ReportUseCase) Expirations(ctx context.Context, actor access.Actor) ([]dto.ExpirationRow, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := uc.issuances.ListByExpiry(ctx)
	if err != nil {
		return nil, domain.Internal("relatório: vencimentos", err)
	}
	out := make([]dto.ExpirationRow, 0, len(list))
	for _, i := range list {
		expiry := i.ExpiryDate
		out = append(out, dto.ExpirationRow{
			IssuanceID:    i.ID,
			EmployeeName:  i.EmployeeName,
			EquipmentName: i.EquipmentName,
			EquipmentCA:   i.EquipmentCA,
			ExpiryDate:    validation.FormatDate(&expiry),
			Quantity:      i.Quantity,
			Status:        string(uc.clock.Classify(&expiry)),
		})
	}
	return out, nil
}

// BySector entregas agrupadas pelo setor dos colaboradores ativos.
func (uc *ReportUseCase) BySector(ctx context.Context, actor access.Actor) ([]dto.SectorRow, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	rows, err := uc.reports.IssuancesBySector(ctx)
	if err != nil {
		return nil, domain.Internal("relatório: por setor", err)
	}
	out := make([]dto.SectorRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SectorRow{Sector: r.Sector, Issuances: r.Issuances})
	}
	return out, nil
}

// Compliance colaboradores ativos com treinamento ou exame vencido.
func (uc *ReportUseCase) Compliance(ctx context.Context, actor access.Actor) (*dto.ComplianceReport, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	emps, err := uc.employees.ListActive(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, domain.Internal("relatório: conformidade", err)
	}
	out := &dto.ComplianceReport{ActiveEmployees: len(emps)}
	for _, e := range emps {
		if uc.clock.Classify(e.NextTrainingDate) == compliance.StatusOverdue {
			out.OverdueTrainings++
		}
		if uc.clock.Classify(e.NextExamDate) == compliance.StatusOverdue {
			out.OverdueExams++
		}
	}
	return out, nil
}

// Valuation valor do estoque ativo (estoque × valor unitário).
func (uc *ReportUseCase) Valuation(ctx context.Context, actor access.Actor) (*dto.InventoryValuation, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	list, err := uc.equipment.ListActive(ctx, "")
	if err != nil {
		return nil, domain.Internal("relatório: valorização", err)
	}
	out := &dto.InventoryValuation{Items: make([]dto.ValuationRow, 0, len(list)), TotalValue: decimal.Zero}
	for _, e := range list {
		v := e.StockValue()
		out.Items = append(out.Items, dto.ValuationRow{
			EquipmentID: e.ID,
			Name:        e.Name,
			Stock:       e.Stock,
			UnitCost:    e.UnitCost,
			Value:       v,
		})
		out.TotalUnits += e.Stock
		out.TotalValue = out.TotalValue.Add(v)
	}
	return out, nil
}
