package dto

import "time"

// EmployeeRequest corpo de criação/atualização de colaborador. Datas em YYYY-MM-DD.
type EmployeeRequest struct {
	ID                        string `json:"id" validate:"required,max=64"`
	Name                      string `json:"nome" validate:"required,max=200"`
	CPF                       string `json:"cpf" validate:"max=20"`
	RG                        string `json:"rg" validate:"max=30"`
	BirthDate                 string `json:"dataNascimento"`
	Function                  string `json:"funcao" validate:"required,max=120"`
	Sector                    string `json:"setor" validate:"max=120"`
	City                      string `json:"cidade" validate:"max=120"`
	Phone                     string `json:"telefone" validate:"max=30"`
	Email                     string `json:"email" validate:"omitempty,email"`
	LastTrainingDate          string `json:"dataUltimoTreinamento"`
	NextTrainingDate          string `json:"proximoTreinamento"`
	TrainingPeriodicityMonths *int   `json:"periodicidadeTreinamento" validate:"omitempty,min=1"`
	LastExamDate              string `json:"dataUltimoExame"`
	NextExamDate              string `json:"proximoExame"`
	ExamPeriodicityMonths     *int   `json:"periodicidadeExame" validate:"omitempty,min=1"`
	RegisteredAt              string `json:"dataCadastro" validate:"required"`
}

// EmployeeResponse colaborador com status de treinamento e exame já classificados.
type EmployeeResponse struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"nome"`
	CPF                       string     `json:"cpf,omitempty"`
	RG                        string     `json:"rg,omitempty"`
	BirthDate                 string     `json:"dataNascimento,omitempty"`
	Function                  string     `json:"funcao"`
	Sector                    string     `json:"setor,omitempty"`
	City                      string     `json:"cidade,omitempty"`
	Phone                     string     `json:"telefone,omitempty"`
	Email                     string     `json:"email,omitempty"`
	LastTrainingDate          string     `json:"dataUltimoTreinamento,omitempty"`
	NextTrainingDate          string     `json:"proximoTreinamento,omitempty"`
	TrainingPeriodicityMonths *int       `json:"periodicidadeTreinamento,omitempty"`
	TrainingStatus            string     `json:"statusTreinamento"`
	LastExamDate              string     `json:"dataUltimoExame,omitempty"`
	NextExamDate              string     `json:"proximoExame,omitempty"`
	ExamPeriodicityMonths     *int       `json:"periodicidadeExame,omitempty"`
	ExamStatus                string     `json:"statusExame"`
	Status                    string     `json:"status"`
	RegisteredAt              string     `json:"dataCadastro"`
	UpdatedAt                 *time.Time `json:"dataAtualizacao,omitempty"`
	CreatedBy                 string     `json:"createdBy,omitempty"`
	UpdatedBy                 string     `json:"updatedBy,omitempty"`
}

// SearchRequest filtro textual das listagens.
type SearchRequest struct {
	Search string `query:"search"`
}
