package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL com o isolamento configurado.
type TxRunner struct {
	db  TxBeginner
	iso pgx.TxIsoLevel
}

// NewTxRunner constrói o runner. isolation: serializable (padrão), repeatable_read ou read_committed.
func NewTxRunner(db TxBeginner, isolation string) *TxRunner {
	return &TxRunner{db: db, iso: IsoLevel(isolation)}
}

// IsoLevel converte o nome configurado no nível do pgx.
func IsoLevel(name string) pgx.TxIsoLevel {
	switch name {
	case "read_committed":
		return pgx.ReadCommitted
	case "repeatable_read":
		return pgx.RepeatableRead
	}
	return pgx.Serializable
}

// Run inicia a transação, executa fn com repositórios atados a ela e faz Commit ou Rollback.
// O rollback também acontece em panic e com o ctx cancelado.
// Conflitos de serialização viram domain.ErrConcurrentUpdate; não há retry.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.iso})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	repos := ports.TxRepos{
		Employees: NewEmployeeRepository(tx),
		Equipment: NewEquipmentRepository(tx),
		Issuances: NewIssuanceRepository(tx),
		Trainings: NewTrainingRepository(tx),
		Exams:     NewExamRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		if isConcurrencyConflict(err) {
			return domain.ErrConcurrentUpdate
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyConflict(err) {
			return domain.ErrConcurrentUpdate
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
