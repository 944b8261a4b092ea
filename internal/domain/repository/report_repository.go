package repository

import "context"

// DashboardCounts totais do painel.
type DashboardCounts struct {
	ActiveEmployees int
	ActiveEquipment int
	Issuances       int
	LowStock        int
}

// SectorCount entregas por setor de colaboradores ativos.
type SectorCount struct {
	Sector    string
	Issuances int
}

// ReportRepository consultas agregadas somente leitura.
type ReportRepository interface {
	CountActiveEmployees(ctx context.Context) (int, error)
	CountActiveEquipment(ctx context.Context) (int, error)
	CountIssuances(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	IssuancesBySector(ctx context.Context) ([]SectorCount, error)
}
