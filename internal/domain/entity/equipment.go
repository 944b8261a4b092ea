package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment representa um EPI do inventário. Stock nunca é negativo.
type Equipment struct {
	ID                  string
	Name                string
	ApprovalCertificate string // número do CA
	Type                string
	CertificateExpiry   time.Time
	Stock               int
	MinimumStock        int
	UnitCost            decimal.Decimal
	Description         string
	Status              EntityStatus
	RegisteredAt        time.Time
	UpdatedAt           *time.Time
	CreatedBy           string
	UpdatedBy           string
}

// BelowMinimum indica se o estoque atual está abaixo do mínimo configurado.
func (e *Equipment) BelowMinimum() bool {
	return e.Stock < e.MinimumStock
}

// StockValue valor do estoque atual (estoque × custo unitário).
func (e *Equipment) StockValue() decimal.Decimal {
	return e.UnitCost.Mul(decimal.NewFromInt(int64(e.Stock)))
}
