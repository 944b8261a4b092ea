package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/usecase"
)

// EquipmentHandler trata as requisições de EPIs (protegido).
type EquipmentHandler struct {
	uc *usecase.EquipmentUseCase
}

// NewEquipmentHandler constrói o handler.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar EPI
// @Tags         epis
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquipmentRequest  true  "Dados do EPI"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/epis [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obter EPI
// @Tags         epis
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do EPI"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/epis/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar EPIs ativos
// @Tags         epis
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca por nome, CA ou tipo"
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/epis [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var q dto.SearchRequest
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, parseQueryError(err))
	}
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), q.Search)
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// LowStock godoc
// @Summary      EPIs com estoque abaixo do mínimo
// @Tags         epis
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/epis/estoque-baixo [get]
func (h *EquipmentHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListBelowMinimum(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// Update godoc
// @Summary      Atualizar EPI (correção manual de estoque incluída)
// @Tags         epis
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do EPI"
// @Param        body  body  dto.EquipmentRequest  true  "Dados do EPI"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/epis/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), ActorFrom(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// Retire godoc
// @Summary      Inativar EPI (admin)
// @Tags         epis
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do EPI"
// @Success      200  {object}  dto.MutationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/epis/{id} [delete]
func (h *EquipmentHandler) Retire(c *fiber.Ctx) error {
	out, err := h.uc.Retire(c.UserContext(), ActorFrom(c), c.Params("id"), c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}
