package audit_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/infrastructure/memory"
	"github.com/jhoicas/epi-control/pkg/logger"
)

var admin = access.Actor{ID: "u-admin", Role: access.RoleAdmin}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, audit.DefaultLimit, audit.ClampLimit(0))
	assert.Equal(t, audit.DefaultLimit, audit.ClampLimit(-3))
	assert.Equal(t, 10, audit.ClampLimit(10))
	assert.Equal(t, audit.MaxLimit, audit.ClampLimit(audit.MaxLimit+1))
}

func TestAppend_SerializaDetalhes(t *testing.T) {
	store := memory.New()
	trail := audit.NewTrail(store.Audit(), access.NewPolicy(), nil, nil)

	e, err := trail.Append(context.Background(), audit.Event{
		Entity: entity.AuditEntityEquipment, EntityID: "epi-1", Action: entity.AuditActionUpdate,
		Actor: admin, Details: map[string]any{"estoque": 10}, IP: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "admin", e.ActorRole)
	assert.JSONEq(t, `{"estoque":10}`, string(e.Details))
	assert.False(t, e.CreatedAt.IsZero())
}

func TestRecord_FalhaViraDivergenciaNoLog(t *testing.T) {
	store := memory.New()
	store.SetAuditFailure(errors.New("indisponível"))
	var buf bytes.Buffer
	trail := audit.NewTrail(store.Audit(), access.NewPolicy(), nil, logger.NewWriter(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	trail.Record(ctx, audit.Event{Entity: entity.AuditEntityIssuance, EntityID: "ent-1", Action: entity.AuditActionCreate, Actor: admin})

	assert.Contains(t, buf.String(), "divergência de auditoria")
	assert.Contains(t, buf.String(), `"entity_id":"ent-1"`)
}

func TestRecord_CtxCanceladoAindaGrava(t *testing.T) {
	store := memory.New()
	trail := audit.NewTrail(store.Audit(), access.NewPolicy(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trail.Record(ctx, audit.Event{Entity: entity.AuditEntityIssuance, EntityID: "ent-1", Action: entity.AuditActionCreate, Actor: admin})

	entries, err := store.Audit().ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestList_SomenteAdminEComLimite(t *testing.T) {
	store := memory.New()
	trail := audit.NewTrail(store.Audit(), access.NewPolicy(), nil, nil)
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		_, err := trail.Append(ctx, audit.Event{Entity: "epi", EntityID: fmt.Sprintf("epi-%d", i), Action: "create", Actor: admin})
		require.NoError(t, err)
	}

	_, err := trail.List(ctx, access.Actor{ID: "u-tec", Role: access.RoleTechnician}, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := trail.List(ctx, admin, 0)
	require.NoError(t, err)
	assert.Len(t, list, audit.DefaultLimit)
	assert.Equal(t, "epi-59", list[0].EntityID)
}
