package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/usecase"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/infrastructure/memory"
)

var (
	admin      = access.Actor{ID: "u-admin", Role: access.RoleAdmin}
	technician = access.Actor{ID: "u-tec", Role: access.RoleTechnician}
	reader     = access.Actor{ID: "u-ler", Role: access.RoleReadOnly}
	today      = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	clock      = compliance.Clock{Now: func() time.Time { return today }, Location: time.UTC}
)

type env struct {
	store     *memory.Store
	employees *usecase.EmployeeUseCase
	equipment *usecase.EquipmentUseCase
	reports   *usecase.ReportUseCase
}

func newEnv() *env {
	store := memory.New()
	policy := access.NewPolicy()
	trail := audit.NewTrail(store.Audit(), policy, nil, nil)
	return &env{
		store:     store,
		employees: usecase.NewEmployeeUseCase(store.Employees(), policy, trail, clock),
		equipment: usecase.NewEquipmentUseCase(store.Equipment(), policy, trail, clock),
		reports:   usecase.NewReportUseCase(store.Reports(), store.Employees(), store.Equipment(), store.Issuances(), clock),
	}
}

func employeeRequest(id, name, cpf string) dto.EmployeeRequest {
	return dto.EmployeeRequest{
		ID: id, Name: name, CPF: cpf, Function: "Montador", Sector: "Obra",
		NextTrainingDate: "2026-05-01", RegisteredAt: "2026-01-10T08:00:00Z",
	}
}

func equipmentRequest(id string, stock, minimum int, cost string) dto.EquipmentRequest {
	c := decimal.RequireFromString(cost)
	return dto.EquipmentRequest{
		ID: id, Name: "Óculos " + id, ApprovalCertificate: "10346", Type: "Óculos",
		CertificateExpiry: "2027-01-01", Stock: &stock, MinimumStock: &minimum, UnitCost: &c,
		RegisteredAt: "2026-01-10T08:00:00Z",
	}
}

func TestEmployee_CriarConsultarEBuscar(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.employees.Create(ctx, technician, employeeRequest("col-1", "José Antônio", "529.982.247-25"), "")
	require.NoError(t, err)

	got, err := e.employees.GetByID(ctx, reader, "col-1")
	require.NoError(t, err)
	assert.Equal(t, "José Antônio", got.Name)
	assert.Equal(t, string(compliance.StatusOverdue), got.TrainingStatus)
	assert.Equal(t, string(compliance.StatusNoRecord), got.ExamStatus)
	assert.Equal(t, "active", got.Status)

	list, err := e.employees.List(ctx, reader, "JOSE antonio")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployee_Validacoes(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.employees.Create(ctx, technician, employeeRequest("col-1", "Ana", "111.111.111-11"), "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	in := employeeRequest("col-1", "Ana", "")
	in.BirthDate = "31/12/1990"
	_, err = e.employees.Create(ctx, technician, in, "")
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"dataNascimento"}, de.Details)

	in = employeeRequest("col-1", "Ana", "")
	zero := 0
	in.ExamPeriodicityMonths = &zero
	_, err = e.employees.Create(ctx, technician, in, "")
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.Equal(t, []string{"periodicidadeExame"}, de.Details)

	_, err = e.employees.Create(ctx, reader, employeeRequest("col-1", "Ana", ""), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.employees.Create(ctx, technician, employeeRequest("col-1", "Ana", "52998224725"), "")
	require.NoError(t, err)
	_, err = e.employees.Create(ctx, technician, employeeRequest("col-2", "Bia", "529.982.247-25"), "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmployee_AtualizarERemover(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.employees.Create(ctx, technician, employeeRequest("col-1", "Ana", ""), "")
	require.NoError(t, err)

	upd := employeeRequest("outro-id", "Ana Lima", "")
	upd.RegisteredAt = ""
	out, err := e.employees.Update(ctx, technician, "col-1", upd, "")
	require.NoError(t, err)
	assert.True(t, out.Updated)

	got, err := e.employees.GetByID(ctx, reader, "col-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", got.Name)
	assert.Equal(t, "2026-01-10T08:00:00Z", got.RegisteredAt)
	assert.Equal(t, "u-tec", got.UpdatedBy)

	_, err = e.employees.Retire(ctx, technician, "col-1", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	del, err := e.employees.Retire(ctx, admin, "col-1", "")
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	_, err = e.employees.GetByID(ctx, reader, "col-1")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	_, err = e.employees.Update(ctx, admin, "col-1", upd, "")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	entries, err := e.store.Audit().ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entity.AuditActionRetire, entries[0].Action)
}

func TestEquipment_AtualizacaoParcialMantemEstoque(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.equipment.Create(ctx, technician, equipmentRequest("epi-1", 8, 2, "12.50"), "")
	require.NoError(t, err)

	upd := equipmentRequest("epi-1", 0, 0, "0")
	upd.Stock, upd.MinimumStock, upd.UnitCost = nil, nil, nil
	upd.Name = "Óculos ampla visão"
	_, err = e.equipment.Update(ctx, technician, "epi-1", upd, "")
	require.NoError(t, err)

	got, err := e.equipment.GetByID(ctx, reader, "epi-1")
	require.NoError(t, err)
	assert.Equal(t, "Óculos ampla visão", got.Name)
	assert.Equal(t, 8, got.Stock)
	assert.Equal(t, 2, got.MinimumStock)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.UnitCost))
	assert.Equal(t, string(compliance.StatusOnTrack), got.CertificateStatus)
}

func TestEquipment_ValorNegativoEEstoqueBaixo(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.equipment.Create(ctx, technician, equipmentRequest("epi-1", 1, 0, "-1"), "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	neg := equipmentRequest("epi-1", -1, 0, "1")
	_, err = e.equipment.Create(ctx, technician, neg, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = e.equipment.Create(ctx, technician, equipmentRequest("epi-1", 1, 5, "3"), "")
	require.NoError(t, err)
	_, err = e.equipment.Create(ctx, technician, equipmentRequest("epi-2", 9, 5, "3"), "")
	require.NoError(t, err)

	low, err := e.equipment.ListBelowMinimum(ctx, reader)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "epi-1", low[0].ID)
	assert.True(t, low[0].BelowMinimum)
}

func TestReports_PainelEValorizacao(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.employees.Create(ctx, technician, employeeRequest("col-1", "Ana", ""), "")
	require.NoError(t, err)
	_, err = e.equipment.Create(ctx, technician, equipmentRequest("epi-1", 4, 5, "10.25"), "")
	require.NoError(t, err)
	_, err = e.equipment.Create(ctx, technician, equipmentRequest("epi-2", 2, 0, "1.50"), "")
	require.NoError(t, err)

	stats, err := e.reports.Dashboard(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStats{ActiveEmployees: 1, ActiveEquipment: 2, Issuances: 0, LowStock: 1}, *stats)

	val, err := e.reports.Valuation(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, 6, val.TotalUnits)
	assert.True(t, decimal.RequireFromString("44").Equal(val.TotalValue), val.TotalValue.String())

	comp, err := e.reports.Compliance(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, 1, comp.ActiveEmployees)
	assert.Equal(t, 1, comp.OverdueTrainings)
	assert.Equal(t, 0, comp.OverdueExams)

	sectors, err := e.reports.BySector(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, []dto.SectorRow{{Sector: "Obra", Issuances: 0}}, sectors)

	_, err = e.reports.Dashboard(ctx, access.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
