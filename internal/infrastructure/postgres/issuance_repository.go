package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.IssuanceRepository = (*IssuanceRepo)(nil)

// IssuanceRepo implementação de IssuanceRepository sobre PostgreSQL (pool ou tx).
type IssuanceRepo struct {
	q Querier
}

// NewIssuanceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewIssuanceRepository(q Querier) *IssuanceRepo {
	return &IssuanceRepo{q: q}
}

const issuanceColumns = `
	id, colaborador_id, colaborador_nome, epi_id, epi_nome, epi_ca,
	data_entrega, data_validade, quantidade, COALESCE(observacoes, ''),
	assinatura_hash, assinatura_dispositivo, assinatura_ip, assinatura_timestamp,
	data_cadastro, created_at, COALESCE(created_by, '')`

// Create insere a entrega. Id repetido -> domain.ErrDuplicateIssuance.
func (r *IssuanceRepo) Create(ctx context.Context, i *entity.Issuance) error {
	query := `
		INSERT INTO entregas (
			id, colaborador_id, colaborador_nome, epi_id, epi_nome, epi_ca,
			data_entrega, data_validade, quantidade, observacoes,
			assinatura_hash, assinatura_dispositivo, assinatura_ip, assinatura_timestamp,
			data_cadastro, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.EmployeeID, i.EmployeeName, i.EquipmentID, i.EquipmentName, i.EquipmentCA,
		i.IssueDate, i.ExpiryDate, i.Quantity, nullIfEmpty(i.Notes),
		i.SignatureHash, i.SignatureDevice, i.SignatureIP, i.SignatureTimestamp,
		i.RegisteredAt, i.CreatedAt, nullIfEmpty(i.CreatedBy),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateIssuance
		case isCheckViolation(err):
			return domain.Validation("Dados de entrega inválidos.", "quantidade", "dataValidade")
		}
		return fmt.Errorf("insert entrega: %w", err)
	}
	return nil
}

// GetByID devolve a entrega ou nil se não existe.
func (r *IssuanceRepo) GetByID(ctx context.Context, id string) (*entity.Issuance, error) {
	i, err := scanIssuance(r.q.QueryRow(ctx, `SELECT `+issuanceColumns+` FROM entregas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrega: %w", err)
	}
	return i, nil
}

// Delete remove a entrega. Não devolve estoque.
func (r *IssuanceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM entregas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrega: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List entregas do período (inclusivo), mais recentes primeiro.
func (r *IssuanceRepo) List(ctx context.Context, f repository.IssuanceFilter) ([]*entity.Issuance, error) {
	query := `SELECT ` + issuanceColumns + ` FROM entregas
		WHERE ($1::date IS NULL OR data_entrega >= $1::date)
		  AND ($2::date IS NULL OR data_entrega <= $2::date)
		  AND ($3 = '' OR colaborador_id = $3)
		ORDER BY data_entrega DESC, created_at DESC`
	return r.list(ctx, query, f.From, f.To, f.EmployeeID)
}

// ListByExpiry todas as entregas pela data de validade, mais próxima primeiro.
func (r *IssuanceRepo) ListByExpiry(ctx context.Context) ([]*entity.Issuance, error) {
	return r.list(ctx, `SELECT `+issuanceColumns+` FROM entregas ORDER BY data_validade, id`)
}

func (r *IssuanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Issuance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Issuance
	for rows.Next() {
		i, err := scanIssuance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entrega: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

func scanIssuance(row pgx.Row) (*entity.Issuance, error) {
	var i entity.Issuance
	err := row.Scan(
		&i.ID, &i.EmployeeID, &i.EmployeeName, &i.EquipmentID, &i.EquipmentName, &i.EquipmentCA,
		&i.IssueDate, &i.ExpiryDate, &i.Quantity, &i.Notes,
		&i.SignatureHash, &i.SignatureDevice, &i.SignatureIP, &i.SignatureTimestamp,
		&i.RegisteredAt, &i.CreatedAt, &i.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
