package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/issuance"
	"github.com/jhoicas/epi-control/internal/domain"
)

// IssuanceHandler entregas de EPI: criação atômica, consulta, verificação e comprovante.
type IssuanceHandler struct {
	coord *issuance.Coordinator
}

// NewIssuanceHandler constrói o handler.
func NewIssuanceHandler(coord *issuance.Coordinator) *IssuanceHandler {
	return &IssuanceHandler{coord: coord}
}

func requestMeta(c *fiber.Ctx) issuance.RequestMeta {
	return issuance.RequestMeta{Device: requestDevice(c), IP: c.IP()}
}

// Create godoc
// @Summary      Registrar entrega (baixa de estoque + assinatura)
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssuanceRequest  true  "Dados da entrega"
// @Success      201   {object}  dto.IssuanceReceipt
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/entregas [post]
func (h *IssuanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssuanceRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.coord.Issue(c.UserContext(), ActorFrom(c), in, requestMeta(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obter entrega
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da entrega"
// @Success      200  {object}  dto.IssuanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entregas/{id} [get]
func (h *IssuanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.coord.Get(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar entregas por período
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to             query  string  false  "Data final (YYYY-MM-DD)"
// @Param        colaboradorId  query  string  false  "Filtra por colaborador"
// @Success      200  {array}  dto.IssuanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/entregas [get]
func (h *IssuanceHandler) List(c *fiber.Ctx) error {
	var q dto.IssuanceListRequest
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, parseQueryError(err))
	}
	out, err := h.coord.List(c.UserContext(), ActorFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// Verify godoc
// @Summary      Recalcular e conferir o hash de assinatura
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da entrega"
// @Success      200  {object}  dto.IssuanceVerification
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entregas/{id}/verificacao [get]
func (h *IssuanceHandler) Verify(c *fiber.Ctx) error {
	out, err := h.coord.Verify(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// Receipt godoc
// @Summary      Comprovante da entrega em PDF
// @Tags         entregas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da entrega"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entregas/{id}/comprovante [get]
func (h *IssuanceHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.coord.Receipt(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="entrega-`+id+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

// Delete godoc
// @Summary      Excluir entrega (admin; não devolve estoque)
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da entrega"
// @Success      200  {object}  dto.MutationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entregas/{id} [delete]
func (h *IssuanceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return writeError(c, domain.Validation("id é obrigatório", "id"))
	}
	if err := h.coord.Delete(c.UserContext(), ActorFrom(c), id, requestMeta(c)); err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, dto.MutationResponse{ID: id, Deleted: true})
}
