package entity

import "time"

// Issuance registro imutável de entrega de EPI a um colaborador.
// Nome do colaborador e nome/CA do EPI são copiados no momento da gravação
// para que o histórico não mude se o cadastro for editado ou desativado depois.
type Issuance struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	EquipmentID   string
	EquipmentName string
	EquipmentCA   string
	IssueDate     time.Time
	ExpiryDate    time.Time
	Quantity      int
	Notes         string

	SignatureHash      string
	SignatureDevice    string
	SignatureIP        string
	SignatureTimestamp time.Time

	RegisteredAt time.Time
	CreatedAt    time.Time
	CreatedBy    string
}
