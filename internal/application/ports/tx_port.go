package ports

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/repository"
)

// TxRepos repositórios atados a uma mesma transação.
type TxRepos struct {
	Employees repository.EmployeeRepository
	Equipment repository.EquipmentRepository
	Issuances repository.IssuanceRepository
	Trainings repository.TrainingRepository
	Exams     repository.ExamRepository
}

// TxRunner executa fn dentro de uma transação do store. Commit se fn devolve nil;
// rollback em qualquer erro, panic ou cancelamento do ctx antes do commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
