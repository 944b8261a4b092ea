package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/usecase"
)

// ReportHandler dashboard e relatórios gerenciais.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Indicadores do dashboard
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// Expirations godoc
// @Summary      Entregas por data de validade
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpirationRow
// @Router       /api/relatorios/vencimentos [get]
func (h *ReportHandler) Expirations(c *fiber.Ctx) error {
	out, err := h.uc.Expirations(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// BySector godoc
// @Summary      Colaboradores e entregas por setor
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SectorRow
// @Router       /api/relatorios/por-setor [get]
func (h *ReportHandler) BySector(c *fiber.Ctx) error {
	out, err := h.uc.BySector(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// Compliance godoc
// @Summary      Treinamentos e exames vencidos
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplianceReport
// @Router       /api/relatorios/conformidade [get]
func (h *ReportHandler) Compliance(c *fiber.Ctx) error {
	out, err := h.uc.Compliance(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// Valuation godoc
// @Summary      Valorização do estoque
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValuation
// @Router       /api/relatorios/valorizacao [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}
