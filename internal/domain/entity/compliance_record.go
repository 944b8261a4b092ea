package entity

import "time"

// Tipos de evento de conformidade.
const (
	ComplianceTraining = "treinamento"
	ComplianceExam     = "exame"
)

// TrainingRecord registro de treinamento realizado.
type TrainingRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string // preenchido apenas em listagens
	EventDate    time.Time
	NextDue      *time.Time
	Type         string
	Notes        string
	RegisteredAt time.Time
	CreatedBy    string
}

// ExamRecord registro de exame (ASO) realizado.
type ExamRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	EventDate    time.Time
	NextDue      *time.Time
	Result       string
	Notes        string
	RegisteredAt time.Time
	CreatedBy    string
}
