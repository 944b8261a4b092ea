package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

func seedEquipment(t *testing.T, s *Store, id string, stock int) {
	t.Helper()
	require.NoError(t, s.Equipment().Create(context.Background(), &entity.Equipment{
		ID: id, Name: "Luva " + id, ApprovalCertificate: "12345", Type: "Luva",
		Stock: stock, MinimumStock: 2, Status: entity.StatusActive, RegisteredAt: time.Now(),
	}))
}

func stockOf(t *testing.T, s *Store, id string) int {
	t.Helper()
	e, err := s.Equipment().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e.Stock
}

func TestRun_CommitAplicaEscritas(t *testing.T) {
	s := New()
	seedEquipment(t, s, "epi-1", 10)

	err := s.Run(context.Background(), func(ctx context.Context, repos ports.TxRepos) error {
		return repos.Equipment.UpdateStock(ctx, "epi-1", 7, time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, 7, stockOf(t, s, "epi-1"))
}

func TestRun_ErroDescartaTudo(t *testing.T) {
	s := New()
	seedEquipment(t, s, "epi-1", 10)
	boom := errors.New("boom")

	err := s.Run(context.Background(), func(ctx context.Context, repos ports.TxRepos) error {
		require.NoError(t, repos.Equipment.UpdateStock(ctx, "epi-1", 3, time.Now()))
		require.NoError(t, repos.Issuances.Create(ctx, &entity.Issuance{ID: "ent-1", EquipmentID: "epi-1", Quantity: 7}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, stockOf(t, s, "epi-1"))
	i, err := s.Issuances().GetByID(context.Background(), "ent-1")
	require.NoError(t, err)
	assert.Nil(t, i)
}

func TestRun_CtxCanceladoNaoFazCommit(t *testing.T) {
	s := New()
	seedEquipment(t, s, "epi-1", 10)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Equipment.UpdateStock(ctx, "epi-1", 0, time.Now()); err != nil {
			return err
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, stockOf(t, s, "epi-1"))
}

func TestEquipment_EstoqueNegativoRejeitado(t *testing.T) {
	s := New()
	seedEquipment(t, s, "epi-1", 1)
	err := s.Equipment().UpdateStock(context.Background(), "epi-1", -1, time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestLeitura_DevolveCopia(t *testing.T) {
	s := New()
	seedEquipment(t, s, "epi-1", 5)

	e, err := s.Equipment().GetByID(context.Background(), "epi-1")
	require.NoError(t, err)
	e.Stock = 999
	assert.Equal(t, 5, stockOf(t, s, "epi-1"))
}

func TestIssuances_IdDuplicado(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Issuances().Create(ctx, &entity.Issuance{ID: "ent-1"}))
	assert.ErrorIs(t, s.Issuances().Create(ctx, &entity.Issuance{ID: "ent-1"}), domain.ErrDuplicateIssuance)
}

func TestIssuances_ListFiltraPeriodo(t *testing.T) {
	s := New()
	ctx := context.Background()
	d := func(day int) time.Time { return time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC) }
	for i, day := range []int{1, 10, 20} {
		require.NoError(t, s.Issuances().Create(ctx, &entity.Issuance{
			ID: []string{"a", "b", "c"}[i], EmployeeID: "col-1", IssueDate: d(day), ExpiryDate: d(day).AddDate(0, 6, 0),
		}))
	}
	from, to := d(5), d(20)
	list, err := s.Issuances().List(ctx, repository.IssuanceFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestEmployees_CPFDuplicadoIgnoraMascara(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := entity.Employee{Name: "Ana", Function: "Eletricista", Status: entity.StatusActive, RegisteredAt: time.Now()}
	a, b := base, base
	a.ID, a.CPF = "col-1", "529.982.247-25"
	b.ID, b.CPF = "col-2", "52998224725"
	require.NoError(t, s.Employees().Create(ctx, &a))
	assert.ErrorIs(t, s.Employees().Create(ctx, &b), domain.ErrDuplicate)
}

func TestEmployees_BuscaSemAcento(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{
		ID: "col-1", Name: "João Araújo", Function: "Pedreiro", Status: entity.StatusActive, RegisteredAt: time.Now(),
	}))
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{
		ID: "col-2", Name: "Carla", Function: "Técnica", Status: entity.StatusActive, RegisteredAt: time.Now(),
	}))
	list, err := s.Employees().ListActive(ctx, repository.EmployeeFilter{Search: "joao"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "col-1", list[0].ID)

	require.NoError(t, s.Employees().Retire(ctx, "col-1", "u-1"))
	assert.ErrorIs(t, s.Employees().Retire(ctx, "col-1", "u-1"), domain.ErrNotFound)
	list, err = s.Employees().ListActive(ctx, repository.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "col-2", list[0].ID)
}

func TestAudit_FalhaInjetadaEOrdem(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Audit()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, &entity.AuditEntry{Entity: "epi", EntityID: id, Action: "create"}))
	}
	s.SetAuditFailure(errors.New("disco cheio"))
	assert.Error(t, repo.Append(ctx, &entity.AuditEntry{Entity: "epi", EntityID: "d"}))
	s.SetAuditFailure(nil)

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].EntityID)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, "b", list[1].EntityID)
}

func TestReports_EntregasPorSetor(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "col-1", Name: "A", Function: "x", Sector: "Obra", Status: entity.StatusActive}))
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "col-2", Name: "B", Function: "x", Status: entity.StatusActive}))
	require.NoError(t, s.Issuances().Create(ctx, &entity.Issuance{ID: "e1", EmployeeID: "col-1"}))
	require.NoError(t, s.Issuances().Create(ctx, &entity.Issuance{ID: "e2", EmployeeID: "col-1"}))

	rows, err := s.Reports().IssuancesBySector(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, repository.SectorCount{Sector: "Obra", Issuances: 2}, rows[0])
	assert.Equal(t, repository.SectorCount{Sector: SectorUnknown, Issuances: 0}, rows[1])
}
