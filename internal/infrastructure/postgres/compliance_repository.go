package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var (
	_ repository.TrainingRepository = (*TrainingRepo)(nil)
	_ repository.ExamRepository     = (*ExamRepo)(nil)
)

// TrainingRepo treinamentos sobre PostgreSQL.
type TrainingRepo struct {
	q Querier
}

// NewTrainingRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

// Create insere o registro de treinamento.
func (r *TrainingRepo) Create(ctx context.Context, t *entity.TrainingRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO treinamentos (id, colaborador_id, data_treinamento, proximo_treinamento, tipo, observacoes, data_cadastro, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.EmployeeID, t.EventDate, t.NextDue, nullIfEmpty(t.Type), nullIfEmpty(t.Notes), t.RegisteredAt, nullIfEmpty(t.CreatedBy),
	)
	return complianceInsertError("treinamento", err)
}

// List treinamentos de colaboradores ativos, mais recentes primeiro.
func (r *TrainingRepo) List(ctx context.Context, employeeID string) ([]*entity.TrainingRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.id, t.colaborador_id, c.nome, t.data_treinamento, t.proximo_treinamento,
			COALESCE(t.tipo, ''), COALESCE(t.observacoes, ''), t.data_cadastro, COALESCE(t.created_by, '')
		FROM treinamentos t
		JOIN colaboradores c ON c.id = t.colaborador_id AND c.status = 'active'
		WHERE ($1 = '' OR t.colaborador_id = $1)
		ORDER BY t.data_treinamento DESC, t.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list treinamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.TrainingRecord
	for rows.Next() {
		var t entity.TrainingRecord
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.EmployeeName, &t.EventDate, &t.NextDue,
			&t.Type, &t.Notes, &t.RegisteredAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan treinamento: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ExamRepo exames sobre PostgreSQL.
type ExamRepo struct {
	q Querier
}

// NewExamRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewExamRepository(q Querier) *ExamRepo {
	return &ExamRepo{q: q}
}

// Create insere o registro de exame.
func (r *ExamRepo) Create(ctx context.Context, e *entity.ExamRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO exames (id, colaborador_id, data_exame, proximo_exame, resultado, observacoes, data_cadastro, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.EmployeeID, e.EventDate, e.NextDue, nullIfEmpty(e.Result), nullIfEmpty(e.Notes), e.RegisteredAt, nullIfEmpty(e.CreatedBy),
	)
	return complianceInsertError("exame", err)
}

// List exames de colaboradores ativos, mais recentes primeiro.
func (r *ExamRepo) List(ctx context.Context, employeeID string) ([]*entity.ExamRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT e.id, e.colaborador_id, c.nome, e.data_exame, e.proximo_exame,
			COALESCE(e.resultado, ''), COALESCE(e.observacoes, ''), e.data_cadastro, COALESCE(e.created_by, '')
		FROM exames e
		JOIN colaboradores c ON c.id = e.colaborador_id AND c.status = 'active'
		WHERE ($1 = '' OR e.colaborador_id = $1)
		ORDER BY e.data_exame DESC, e.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list exames: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExamRecord
	for rows.Next() {
		var e entity.ExamRecord
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.EventDate, &e.NextDue,
			&e.Result, &e.Notes, &e.RegisteredAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan exame: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func complianceInsertError(what string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrEmployeeNotFound
	}
	return fmt.Errorf("insert %s: %w", what, err)
}
