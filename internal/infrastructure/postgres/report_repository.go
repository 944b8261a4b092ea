package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas do painel e relatórios. Somente leitura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) count(ctx context.Context, what, query string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

// CountActiveEmployees total de colaboradores ativos.
func (r *ReportRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	return r.count(ctx, "colaboradores", `SELECT COUNT(*) FROM colaboradores WHERE status = 'active'`)
}

// CountActiveEquipment total de EPIs ativos.
func (r *ReportRepo) CountActiveEquipment(ctx context.Context) (int, error) {
	return r.count(ctx, "epis", `SELECT COUNT(*) FROM epis WHERE status = 'active'`)
}

// CountIssuances total de entregas.
func (r *ReportRepo) CountIssuances(ctx context.Context) (int, error) {
	return r.count(ctx, "entregas", `SELECT COUNT(*) FROM entregas`)
}

// CountLowStock EPIs ativos abaixo do estoque mínimo.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, "estoque baixo", `SELECT COUNT(*) FROM epis WHERE status = 'active' AND estoque < estoque_minimo`)
}

// IssuancesBySector entregas agrupadas pelo setor dos colaboradores ativos.
func (r *ReportRepo) IssuancesBySector(ctx context.Context) ([]repository.SectorCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(NULLIF(c.setor, ''), 'Não informado') AS setor, COUNT(e.id)
		FROM colaboradores c
		LEFT JOIN entregas e ON e.colaborador_id = c.id
		WHERE c.status = 'active'
		GROUP BY 1
		ORDER BY 2 DESC, 1`)
	if err != nil {
		return nil, fmt.Errorf("entregas por setor: %w", err)
	}
	defer rows.Close()
	var list []repository.SectorCount
	for rows.Next() {
		var s repository.SectorCount
		if err := rows.Scan(&s.Sector, &s.Issuances); err != nil {
			return nil, fmt.Errorf("scan setor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
