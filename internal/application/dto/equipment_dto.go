package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquipmentRequest corpo de criação/atualização de EPI.
type EquipmentRequest struct {
	ID                  string           `json:"id" validate:"required,max=64"`
	Name                string           `json:"nome" validate:"required,max=200"`
	ApprovalCertificate string           `json:"ca" validate:"required,max=40"`
	Type                string           `json:"tipo" validate:"required,max=120"`
	CertificateExpiry   string           `json:"validadeCA" validate:"required"`
	Stock               *int             `json:"estoque" validate:"omitempty,min=0"`
	MinimumStock        *int             `json:"estoqueMinimo" validate:"omitempty,min=0"`
	UnitCost            *decimal.Decimal `json:"valorUnitario"`
	Description         string           `json:"descricao" validate:"max=2000"`
	RegisteredAt        string           `json:"dataCadastro" validate:"required"`
}

// EquipmentResponse EPI com o status de validade do CA.
type EquipmentResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"nome"`
	ApprovalCertificate string          `json:"ca"`
	Type                string          `json:"tipo"`
	CertificateExpiry   string          `json:"validadeCA"`
	CertificateStatus   string          `json:"statusCA"`
	Stock               int             `json:"estoque"`
	MinimumStock        int             `json:"estoqueMinimo"`
	BelowMinimum        bool            `json:"estoqueBaixo"`
	UnitCost            decimal.Decimal `json:"valorUnitario"`
	Description         string          `json:"descricao,omitempty"`
	Status              string          `json:"status"`
	RegisteredAt        string          `json:"dataCadastro"`
	UpdatedAt           *time.Time      `json:"dataAtualizacao,omitempty"`
	CreatedBy           string          `json:"createdBy,omitempty"`
	UpdatedBy           string          `json:"updatedBy,omitempty"`
}
