// Package memory implementa o store em memória (desenvolvimento e testes).
//
// Transações são serializadas por um mutex e trabalham sobre uma cópia do estado;
// o commit troca o estado inteiro, o rollback apenas descarta a cópia.
// Escritas fora de transação também tomam o mutex de transação para não serem
// sobrescritas por um commit concorrente.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	employees map[string]entity.Employee
	equipment map[string]entity.Equipment
	issuances map[string]entity.Issuance
	trainings []entity.TrainingRecord
	exams     []entity.ExamRecord
}

func newState() *state {
	return &state{
		employees: make(map[string]entity.Employee),
		equipment: make(map[string]entity.Equipment),
		issuances: make(map[string]entity.Issuance),
	}
}

func (s *state) clone() *state {
	c := &state{
		employees: make(map[string]entity.Employee, len(s.employees)),
		equipment: make(map[string]entity.Equipment, len(s.equipment)),
		issuances: make(map[string]entity.Issuance, len(s.issuances)),
		trainings: append([]entity.TrainingRecord(nil), s.trainings...),
		exams:     append([]entity.ExamRecord(nil), s.exams...),
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.equipment {
		c.equipment[k] = v
	}
	for k, v := range s.issuances {
		c.issuances[k] = v
	}
	return c
}

// Store backend em memória. O valor zero não é utilizável; use New.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	cur  *state

	auditMu     sync.Mutex
	audit       []entity.AuditEntry
	nextAuditID int64
	auditErr    error

	usersMu sync.RWMutex
	users   map[string]entity.User
}

// New cria um store vazio.
func New() *Store {
	return &Store{cur: newState(), users: make(map[string]entity.User)}
}

// Run executa fn numa transação serializável. Só faz commit se fn devolver nil
// e o ctx não tiver sido cancelado.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.cur.clone()
	s.mu.RUnlock()

	v := view{store: s, tx: work}
	if err := fn(ctx, ports.TxRepos{
		Employees: &employeeRepo{v: v},
		Equipment: &equipmentRepo{v: v},
		Issuances: &issuanceRepo{v: v},
		Trainings: &trainingRepo{v: v},
		Exams:     &examRepo{v: v},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = work
	s.mu.Unlock()
	return nil
}

// SetAuditFailure faz Append falhar com err (nil restaura). Usado para simular divergência.
func (s *Store) SetAuditFailure(err error) {
	s.auditMu.Lock()
	s.auditErr = err
	s.auditMu.Unlock()
}

func (s *Store) Employees() repository.EmployeeRepository  { return &employeeRepo{v: view{store: s}} }
func (s *Store) Equipment() repository.EquipmentRepository { return &equipmentRepo{v: view{store: s}} }
func (s *Store) Issuances() repository.IssuanceRepository  { return &issuanceRepo{v: view{store: s}} }
func (s *Store) Trainings() repository.TrainingRepository  { return &trainingRepo{v: view{store: s}} }
func (s *Store) Exams() repository.ExamRepository          { return &examRepo{v: view{store: s}} }
func (s *Store) Reports() repository.ReportRepository      { return &reportRepo{v: view{store: s}} }
func (s *Store) Audit() repository.AuditRepository         { return &auditRepo{s: s} }
func (s *Store) Users() repository.UserRepository          { return &userRepo{s: s} }

// view dá acesso ao estado: a cópia da transação, ou o estado corrente com locks.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.cur)
}

func (v view) write(ctx context.Context, fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.cur)
}
