// Package inventory controla o saldo de estoque dos EPIs dentro da transação do chamador.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

// ReserveAndDecrement baixa quantity do estoque do EPI. Deve ser chamado com o repositório
// de uma transação aberta: a leitura usa SELECT FOR UPDATE, de modo que duas baixas
// concorrentes sobre o mesmo EPI nunca enxergam o mesmo saldo anterior.
// Devolve o EPI com o saldo já atualizado.
func ReserveAndDecrement(ctx context.Context, repo repository.EquipmentRepository, equipmentID string, quantity int, now time.Time) (*entity.Equipment, error) {
	if quantity <= 0 {
		return nil, domain.Validation("quantidade deve ser um inteiro positivo", "quantidade")
	}
	eq, err := repo.GetForUpdate(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("ledger: bloquear EPI: %w", err)
	}
	if eq == nil {
		return nil, domain.ErrEquipmentNotFound
	}
	if !eq.Status.IsActive() {
		return nil, domain.ErrEquipmentRetired
	}
	if eq.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	eq.Stock -= quantity
	eq.UpdatedAt = &now
	if err := repo.UpdateStock(ctx, eq.ID, eq.Stock, now); err != nil {
		return nil, fmt.Errorf("ledger: atualizar estoque: %w", err)
	}
	return eq, nil
}
