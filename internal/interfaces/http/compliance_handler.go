package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/compliance"
	"github.com/jhoicas/epi-control/internal/application/dto"
)

// ComplianceHandler treinamentos, exames e o resumo de conformidade.
type ComplianceHandler struct {
	scheduler *compliance.Scheduler
}

// NewComplianceHandler constrói o handler.
func NewComplianceHandler(s *compliance.Scheduler) *ComplianceHandler {
	return &ComplianceHandler{scheduler: s}
}

// RecordTraining godoc
// @Summary      Registrar treinamento
// @Tags         conformidade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrainingRequest  true  "Dados do treinamento"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/treinamentos [post]
func (h *ComplianceHandler) RecordTraining(c *fiber.Ctx) error {
	var in dto.TrainingRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.scheduler.RecordTraining(c.UserContext(), ActorFrom(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusCreated, out)
}

// ListTrainings godoc
// @Summary      Listar treinamentos
// @Tags         conformidade
// @Security     Bearer
// @Produce      json
// @Param        colaboradorId  query  string  false  "Filtra por colaborador"
// @Success      200  {array}  dto.ComplianceEventResponse
// @Router       /api/treinamentos [get]
func (h *ComplianceHandler) ListTrainings(c *fiber.Ctx) error {
	out, err := h.scheduler.ListTrainings(c.UserContext(), ActorFrom(c), c.Query("colaboradorId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// RecordExam godoc
// @Summary      Registrar exame ocupacional
// @Tags         conformidade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExamRequest  true  "Dados do exame"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/exames [post]
func (h *ComplianceHandler) RecordExam(c *fiber.Ctx) error {
	var in dto.ExamRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.scheduler.RecordExam(c.UserContext(), ActorFrom(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusCreated, out)
}

// ListExams godoc
// @Summary      Listar exames
// @Tags         conformidade
// @Security     Bearer
// @Produce      json
// @Param        colaboradorId  query  string  false  "Filtra por colaborador"
// @Success      200  {array}  dto.ComplianceEventResponse
// @Router       /api/exames [get]
func (h *ComplianceHandler) ListExams(c *fiber.Ctx) error {
	out, err := h.scheduler.ListExams(c.UserContext(), ActorFrom(c), c.Query("colaboradorId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeList(c, out)
}

// Summary godoc
// @Summary      Contagem em-dia / próximo / vencido / sem-registro por tipo
// @Tags         conformidade
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplianceSummary
// @Router       /api/conformidade/resumo [get]
func (h *ComplianceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.scheduler.Summary(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}
