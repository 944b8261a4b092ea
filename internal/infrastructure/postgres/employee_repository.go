package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementação de EmployeeRepository sobre PostgreSQL (pool ou tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `
	id, nome, COALESCE(cpf, ''), COALESCE(rg, ''), data_nascimento, funcao,
	COALESCE(setor, ''), COALESCE(cidade, ''), COALESCE(telefone, ''), COALESCE(email, ''),
	data_ultimo_treinamento, proximo_treinamento, periodicidade_treinamento,
	data_ultimo_exame, proximo_exame, periodicidade_exame,
	status, data_cadastro, data_atualizacao, COALESCE(created_by, ''), COALESCE(updated_by, '')`

func employeeSearchKey(e *entity.Employee) string {
	return validation.SearchKey(e.Name, e.Function, e.City)
}

// Create insere o colaborador. CPF repetido ou id repetido -> domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO colaboradores (
			id, nome, cpf, rg, data_nascimento, funcao, setor, cidade, telefone, email,
			data_ultimo_treinamento, proximo_treinamento, periodicidade_treinamento,
			data_ultimo_exame, proximo_exame, periodicidade_exame,
			status, search_key, data_cadastro, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, nullIfEmpty(e.CPF), nullIfEmpty(e.RG), e.BirthDate, e.Function,
		nullIfEmpty(e.Sector), nullIfEmpty(e.City), nullIfEmpty(e.Phone), nullIfEmpty(e.Email),
		e.LastTrainingDate, e.NextTrainingDate, e.TrainingPeriodicityMonths,
		e.LastExamDate, e.NextExamDate, e.ExamPeriodicityMonths,
		string(e.Status), employeeSearchKey(e), e.RegisteredAt, nullIfEmpty(e.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert colaborador: %w", err)
	}
	return nil
}

// GetByID devolve o colaborador (ativo ou não) ou nil se não existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM colaboradores WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get colaborador: %w", err)
	}
	return e, nil
}

// Update regrava os dados cadastrais de um colaborador ativo.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE colaboradores SET
			nome = $2, cpf = $3, rg = $4, data_nascimento = $5, funcao = $6, setor = $7, cidade = $8,
			telefone = $9, email = $10, data_ultimo_treinamento = $11, proximo_treinamento = $12,
			periodicidade_treinamento = $13, data_ultimo_exame = $14, proximo_exame = $15,
			periodicidade_exame = $16, search_key = $17, data_atualizacao = $18, updated_by = $19
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Name, nullIfEmpty(e.CPF), nullIfEmpty(e.RG), e.BirthDate, e.Function,
		nullIfEmpty(e.Sector), nullIfEmpty(e.City), nullIfEmpty(e.Phone), nullIfEmpty(e.Email),
		e.LastTrainingDate, e.NextTrainingDate, e.TrainingPeriodicityMonths,
		e.LastExamDate, e.NextExamDate, e.ExamPeriodicityMonths,
		employeeSearchKey(e), e.UpdatedAt, nullIfEmpty(e.UpdatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update colaborador: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTrainingSchedule grava último/próximo treinamento e periodicidade.
func (r *EmployeeRepo) UpdateTrainingSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error {
	return r.updateSchedule(ctx, `
		UPDATE colaboradores
		SET data_ultimo_treinamento = $2, proximo_treinamento = $3, periodicidade_treinamento = $4,
			data_atualizacao = $5, updated_by = $6
		WHERE id = $1`, id, s)
}

// UpdateExamSchedule grava último/próximo exame e periodicidade.
func (r *EmployeeRepo) UpdateExamSchedule(ctx context.Context, id string, s entity.ScheduleUpdate) error {
	return r.updateSchedule(ctx, `
		UPDATE colaboradores
		SET data_ultimo_exame = $2, proximo_exame = $3, periodicidade_exame = $4,
			data_atualizacao = $5, updated_by = $6
		WHERE id = $1`, id, s)
}

func (r *EmployeeRepo) updateSchedule(ctx context.Context, query, id string, s entity.ScheduleUpdate) error {
	tag, err := r.q.Exec(ctx, query, id, s.LastEventDate, s.NextDue, s.PeriodicityMonths, s.UpdatedAt, nullIfEmpty(s.UpdatedBy))
	if err != nil {
		if isCheckViolation(err) {
			return domain.Validation("Campos inválidos.", "periodicidade")
		}
		return fmt.Errorf("update agenda colaborador: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Retire marca o colaborador como retired. Já inativo ou inexistente -> domain.ErrNotFound.
func (r *EmployeeRepo) Retire(ctx context.Context, id, by string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET status = 'retired', data_atualizacao = now(), updated_by = $2
		WHERE id = $1 AND status = 'active'`, id, nullIfEmpty(by))
	if err != nil {
		return fmt.Errorf("retire colaborador: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista colaboradores ativos por nome. f.Search já vem normalizado.
func (r *EmployeeRepo) ListActive(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM colaboradores
		WHERE status = 'active' AND ($1 = '' OR search_key LIKE '%' || $1 || '%')
		ORDER BY nome`
	rows, err := r.q.Query(ctx, query, validation.SanitizeLike(f.Search))
	if err != nil {
		return nil, fmt.Errorf("list colaboradores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan colaborador: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var status string
	err := row.Scan(
		&e.ID, &e.Name, &e.CPF, &e.RG, &e.BirthDate, &e.Function,
		&e.Sector, &e.City, &e.Phone, &e.Email,
		&e.LastTrainingDate, &e.NextTrainingDate, &e.TrainingPeriodicityMonths,
		&e.LastExamDate, &e.NextExamDate, &e.ExamPeriodicityMonths,
		&status, &e.RegisteredAt, &e.UpdatedAt, &e.CreatedBy, &e.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.Status = entity.EntityStatus(status)
	return &e, nil
}
