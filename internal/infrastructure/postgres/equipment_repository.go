package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/domain/validation"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementação de EquipmentRepository sobre PostgreSQL (pool ou tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `
	id, nome, ca, tipo, validade_ca, estoque, estoque_minimo, valor_unitario,
	COALESCE(descricao, ''), status, data_cadastro, data_atualizacao,
	COALESCE(created_by, ''), COALESCE(updated_by, '')`

func equipmentSearchKey(e *entity.Equipment) string {
	return validation.SearchKey(e.Name, e.ApprovalCertificate, e.Type)
}

// Create insere o EPI.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `
		INSERT INTO epis (
			id, nome, ca, tipo, validade_ca, estoque, estoque_minimo, valor_unitario,
			descricao, status, search_key, data_cadastro, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.ApprovalCertificate, e.Type, e.CertificateExpiry, e.Stock, e.MinimumStock, e.UnitCost,
		nullIfEmpty(e.Description), string(e.Status), equipmentSearchKey(e), e.RegisteredAt, nullIfEmpty(e.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert epi: %w", err)
	}
	return nil
}

// GetByID devolve o EPI ou nil se não existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM epis WHERE id = $1`, id)
}

// GetForUpdate lê o EPI e bloqueia a linha até o fim da transação (SELECT FOR UPDATE).
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM epis WHERE id = $1 FOR UPDATE`, id)
}

func (r *EquipmentRepo) get(ctx context.Context, query, id string) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get epi: %w", err)
	}
	return e, nil
}

// UpdateStock grava o saldo. O CHECK (estoque >= 0) da tabela é a última barreira contra saldo negativo.
func (r *EquipmentRepo) UpdateStock(ctx context.Context, id string, stock int, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE epis SET estoque = $2, data_atualizacao = $3 WHERE id = $1`, id, stock, at)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update regrava os dados de um EPI ativo, inclusive o estoque absoluto.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE epis SET
			nome = $2, ca = $3, tipo = $4, validade_ca = $5, estoque = $6, estoque_minimo = $7,
			valor_unitario = $8, descricao = $9, search_key = $10, data_atualizacao = $11, updated_by = $12
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.ApprovalCertificate, e.Type, e.CertificateExpiry, e.Stock, e.MinimumStock,
		e.UnitCost, nullIfEmpty(e.Description), equipmentSearchKey(e), e.UpdatedAt, nullIfEmpty(e.UpdatedBy),
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Validation("Estoque não pode ser negativo.", "estoque")
		}
		return fmt.Errorf("update epi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Retire marca o EPI como retired.
func (r *EquipmentRepo) Retire(ctx context.Context, id, by string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE epis SET status = 'retired', data_atualizacao = now(), updated_by = $2
		WHERE id = $1 AND status = 'active'`, id, nullIfEmpty(by))
	if err != nil {
		return fmt.Errorf("retire epi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista EPIs ativos por nome; search já vem normalizado.
func (r *EquipmentRepo) ListActive(ctx context.Context, search string) ([]*entity.Equipment, error) {
	return r.list(ctx, `SELECT `+equipmentColumns+` FROM epis
		WHERE status = 'active' AND ($1 = '' OR search_key LIKE '%' || $1 || '%')
		ORDER BY nome`, validation.SanitizeLike(search))
}

// ListBelowMinimum EPIs ativos com estoque abaixo do mínimo, maior déficit primeiro.
func (r *EquipmentRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Equipment, error) {
	return r.list(ctx, `SELECT `+equipmentColumns+` FROM epis
		WHERE status = 'active' AND estoque < estoque_minimo
		ORDER BY estoque_minimo - estoque DESC, nome`)
}

func (r *EquipmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Equipment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list epis: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan epi: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	var status string
	err := row.Scan(
		&e.ID, &e.Name, &e.ApprovalCertificate, &e.Type, &e.CertificateExpiry,
		&e.Stock, &e.MinimumStock, &e.UnitCost, &e.Description, &status,
		&e.RegisteredAt, &e.UpdatedAt, &e.CreatedBy, &e.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.Status = entity.EntityStatus(status)
	return &e, nil
}
