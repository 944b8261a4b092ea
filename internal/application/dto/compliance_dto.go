package dto

import "time"

// TrainingRequest corpo de POST /api/treinamentos.
type TrainingRequest struct {
	ID                string `json:"id" validate:"required,max=64"`
	EmployeeID        string `json:"colaboradorId" validate:"required"`
	EventDate         string `json:"dataTreinamento" validate:"required"`
	NextDue           string `json:"proximoTreinamento"`
	PeriodicityMonths *int   `json:"periodicidadeTreinamento" validate:"omitempty,min=1"`
	Type              string `json:"tipo" validate:"max=120"`
	Notes             string `json:"observacoes" validate:"max=2000"`
	RegisteredAt      string `json:"dataCadastro" validate:"required"`
}

// ExamRequest corpo de POST /api/exames.
type ExamRequest struct {
	ID                string `json:"id" validate:"required,max=64"`
	EmployeeID        string `json:"colaboradorId" validate:"required"`
	EventDate         string `json:"dataExame" validate:"required"`
	NextDue           string `json:"proximoExame"`
	PeriodicityMonths *int   `json:"periodicidadeExame" validate:"omitempty,min=1"`
	Result            string `json:"resultado" validate:"max=120"`
	Notes             string `json:"observacoes" validate:"max=2000"`
	RegisteredAt      string `json:"dataCadastro" validate:"required"`
}

// ComplianceEventResponse treinamento ou exame listado.
type ComplianceEventResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"categoria"`
	EmployeeID   string    `json:"colaboradorId"`
	EmployeeName string    `json:"colaboradorNome"`
	EventDate    string    `json:"data"`
	NextDue      string    `json:"proximo,omitempty"`
	DueStatus    string    `json:"status"`
	Type         string    `json:"tipo,omitempty"`
	Result       string    `json:"resultado,omitempty"`
	Notes        string    `json:"observacoes,omitempty"`
	RegisteredAt time.Time `json:"dataCadastro"`
	CreatedBy    string    `json:"createdBy"`
}

// CreatedResponse resposta padrão de criação.
type CreatedResponse struct {
	ID string `json:"id"`
}

// MutationResponse resposta de atualização/remoção.
type MutationResponse struct {
	ID      string `json:"id"`
	Updated bool   `json:"updated,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}
