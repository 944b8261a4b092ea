package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/usecase"
)

// EmployeeHandler trata as requisições de colaboradores (protegido).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler constrói o handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar colaborador
// @Tags         colaboradores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Dados do colaborador"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/colaboradores [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
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
// @Summary      Obter colaborador
// @Tags         colaboradores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do colaborador"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/colaboradores/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar colaboradores ativos
// @Tags         colaboradores
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca por nome, função ou cidade"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/colaboradores [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Atualizar colaborador
// @Tags         colaboradores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do colaborador"
// @Param        body  body  dto.EmployeeRequest  true  "Dados do colaborador"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/colaboradores/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
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
// @Summary      Inativar colaborador (admin)
// @Tags         colaboradores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do colaborador"
// @Success      200  {object}  dto.MutationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/colaboradores/{id} [delete]
func (h *EmployeeHandler) Retire(c *fiber.Ctx) error {
	out, err := h.uc.Retire(c.UserContext(), ActorFrom(c), c.Params("id"), c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}
