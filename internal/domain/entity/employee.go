package entity

import "time"

// Employee colaborador: dados cadastrais e agenda de treinamento/exame.
// Só um colaborador ativo recebe EPIs ou tem treinamento/exame registrado.
type Employee struct {
	ID        string
	Name      string
	CPF       string // opcional, validado por dígitos verificadores
	RG        string
	BirthDate *time.Time
	Function  string // função / cargo
	Sector    string
	City      string
	Phone     string
	Email     string

	LastTrainingDate          *time.Time
	NextTrainingDate          *time.Time
	TrainingPeriodicityMonths *int
	LastExamDate              *time.Time
	NextExamDate              *time.Time
	ExamPeriodicityMonths     *int

	Status       EntityStatus
	RegisteredAt time.Time // dataCadastro informado pelo cliente
	UpdatedAt    *time.Time
	CreatedBy    string
	UpdatedBy    string
}

// ScheduleUpdate campos de agenda que um registro de treinamento/exame grava no colaborador.
// NextDue e PeriodicityMonths são persistidos como recebidos.
type ScheduleUpdate struct {
	LastEventDate     time.Time
	NextDue           *time.Time
	PeriodicityMonths *int
	UpdatedAt         time.Time
	UpdatedBy         string
}
