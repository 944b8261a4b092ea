package memory

import (
	"context"
	"time"

	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.AuditRepository = (*auditRepo)(nil)

type auditRepo struct{ s *Store }

func (r *auditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.auditMu.Lock()
	defer r.s.auditMu.Unlock()
	if r.s.auditErr != nil {
		return r.s.auditErr
	}
	r.s.nextAuditID++
	e.ID = r.s.nextAuditID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r *auditRepo) ListRecent(_ context.Context, limit int) ([]*entity.AuditEntry, error) {
	r.s.auditMu.Lock()
	defer r.s.auditMu.Unlock()
	out := make([]*entity.AuditEntry, 0, min(limit, len(r.s.audit)))
	for i := len(r.s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.audit[i]
		out = append(out, &e)
	}
	return out, nil
}
