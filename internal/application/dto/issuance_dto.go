package dto

import "time"

// CreateIssuanceRequest corpo de POST /api/entregas.
// Quantidade e assinatura são ponteiros para distinguir ausente de zero/false.
type CreateIssuanceRequest struct {
	ID           string `json:"id" validate:"required,max=64"`
	EmployeeID   string `json:"colaboradorId" validate:"required"`
	EquipmentID  string `json:"epiId" validate:"required"`
	IssueDate    string `json:"dataEntrega" validate:"required"`
	ExpiryDate   string `json:"dataValidade" validate:"required"`
	Quantity     *int   `json:"quantidade" validate:"required"`
	Signed       *bool  `json:"assinaturaDigital" validate:"required"`
	Notes        string `json:"observacoes" validate:"max=2000"`
	RegisteredAt string `json:"dataCadastro" validate:"required"`
}

// IssuanceReceipt resposta da criação: o que o cliente exibe como confirmação.
type IssuanceReceipt struct {
	ID                 string `json:"id"`
	SignatureHash      string `json:"assinaturaHash"`
	SignatureTimestamp string `json:"assinaturaTimestamp"`
}

// IssuanceListRequest filtros de GET /api/entregas.
type IssuanceListRequest struct {
	From       string `query:"from"`
	To         string `query:"to"`
	EmployeeID string `query:"colaboradorId"`
}

// IssuanceResponse entrega com os campos desnormalizados gravados na criação.
type IssuanceResponse struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"colaboradorId"`
	EmployeeName       string    `json:"colaboradorNome"`
	EquipmentID        string    `json:"epiId"`
	EquipmentName      string    `json:"epiNome"`
	EquipmentCA        string    `json:"epiCA"`
	IssueDate          string    `json:"dataEntrega"`
	ExpiryDate         string    `json:"dataValidade"`
	ExpiryStatus       string    `json:"statusValidade"`
	Quantity           int       `json:"quantidade"`
	Notes              string    `json:"observacoes,omitempty"`
	SignatureHash      string    `json:"assinaturaHash"`
	SignatureDevice    string    `json:"assinaturaDevice"`
	SignatureIP        string    `json:"assinaturaIp"`
	SignatureTimestamp string    `json:"assinaturaTimestamp"`
	RegisteredAt       string    `json:"dataCadastro"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
}

// IssuanceVerification resultado de GET /api/entregas/:id/verificacao.
type IssuanceVerification struct {
	ID           string `json:"id"`
	Valid        bool   `json:"valido"`
	StoredHash   string `json:"assinaturaHash"`
	ComputedHash string `json:"hashRecalculado"`
}
