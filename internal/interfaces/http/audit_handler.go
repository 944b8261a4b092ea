package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// AuditHandler leitura da trilha de auditoria (admin).
type AuditHandler struct {
	trail *audit.Trail
}

// NewAuditHandler constrói o handler.
func NewAuditHandler(trail *audit.Trail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// List godoc
// @Summary      Entradas mais recentes da auditoria
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Quantidade (padrão 50, máximo 500)"
// @Success      200  {array}  dto.AuditEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.trail.List(c.UserContext(), ActorFrom(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditResponse(e))
	}
	return writeList(c, out)
}

func toAuditResponse(e *entity.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:        e.ID,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Action:    e.Action,
		ActorID:   e.ActorID,
		ActorRole: e.ActorRole,
		Details:   e.Details,
		IP:        e.IP,
		CreatedAt: e.CreatedAt,
	}
}
