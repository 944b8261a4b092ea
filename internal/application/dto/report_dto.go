package dto

import "github.com/shopspring/decimal"

// DashboardStats totais do painel.
type DashboardStats struct {
	ActiveEmployees int `json:"totalColaboradores"`
	ActiveEquipment int `json:"totalEpis"`
	Issuances       int `json:"totalEntregas"`
	LowStock        int `json:"episEstoqueBaixo"`
}

// ExpirationRow linha do relatório de vencimentos.
type ExpirationRow struct {
	IssuanceID    string `json:"entregaId"`
	EmployeeName  string `json:"colaboradorNome"`
	EquipmentName string `json:"epiNome"`
	EquipmentCA   string `json:"epiCA"`
	ExpiryDate    string `json:"dataValidade"`
	Quantity      int    `json:"quantidade"`
	Status        string `json:"status"`
}

// SectorRow entregas por setor.
type SectorRow struct {
	Sector    string `json:"setor"`
	Issuances int    `json:"totalEntregas"`
}

// ComplianceReport pendências de conformidade dos colaboradores ativos.
type ComplianceReport struct {
	ActiveEmployees  int `json:"totalColaboradores"`
	OverdueTrainings int `json:"pendentesTreinamento"`
	OverdueExams     int `json:"pendentesExame"`
}

// ComplianceSummary contagem por status de treinamentos e exames.
type ComplianceSummary struct {
	Trainings StatusCounts `json:"treinamentos"`
	Exams     StatusCounts `json:"exames"`
}

// StatusCounts contagem por status de vencimento.
type StatusCounts struct {
	OnTrack  int `json:"emDia"`
	Upcoming int `json:"proximos"`
	Overdue  int `json:"vencidos"`
	NoRecord int `json:"semRegistro"`
}

// InventoryValuation valor total do estoque ativo.
type InventoryValuation struct {
	Items      []ValuationRow  `json:"itens"`
	TotalUnits int             `json:"totalUnidades"`
	TotalValue decimal.Decimal `json:"valorTotal"`
}

// ValuationRow valor do estoque de um EPI.
type ValuationRow struct {
	EquipmentID string          `json:"epiId"`
	Name        string          `json:"nome"`
	Stock       int             `json:"estoque"`
	UnitCost    decimal.Decimal `json:"valorUnitario"`
	Value       decimal.Decimal `json:"valor"`
}
