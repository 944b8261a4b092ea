package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain"
)

const internalMessage = "erro interno, tente novamente"

// statusFor traduz o Kind do erro de domínio para o status HTTP.
func statusFor(de *domain.Error) int {
	switch de.Kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindBusinessRule:
		return fiber.StatusUnprocessableEntity
	case domain.KindAuth:
		if de.Code == domain.ErrForbidden.Code {
			return fiber.StatusForbidden
		}
		return fiber.StatusUnauthorized
	case domain.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError escreve o envelope de erro. Falhas internas nunca expõem a causa ao cliente.
func writeError(c *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	status := statusFor(de)
	body := &dto.ErrorResponse{Kind: string(de.Kind), Code: de.Code, Message: de.Message, Details: de.Details}
	if status == fiber.StatusInternalServerError {
		body.Kind = string(domain.KindInternal)
		body.Code = domain.ErrInternal.Code
		body.Message = internalMessage
		body.Details = nil
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(dto.Envelope{Error: body})
}

// writeData escreve o envelope de sucesso.
func writeData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Data: data})
}

// writeList inclui a contagem em meta.
func writeList[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.Envelope{Data: items, Meta: map[string]any{"total": len(items)}})
}

// parseBody decodifica o JSON da requisição; corpo malformado é erro de validação.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("corpo da requisição inválido", err.Error())
	}
	return nil
}

// queryInt lê um inteiro opcional da query string.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("parâmetro inválido", key)
	}
	return n, nil
}

// ErrorHandler trata os erros que escapam dos handlers (rota inexistente, corpo grande demais, pânico recuperado).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind, code := domain.KindValidation, "HTTP_"+strconv.Itoa(fe.Code)
		switch {
		case fe.Code == fiber.StatusNotFound:
			kind, code = domain.KindNotFound, domain.ErrNotFound.Code
		case fe.Code >= fiber.StatusInternalServerError:
			kind, code = domain.KindInternal, domain.ErrInternal.Code
		}
		return c.Status(fe.Code).JSON(dto.Envelope{Error: &dto.ErrorResponse{Kind: string(kind), Code: code, Message: fe.Message}})
	}
	return writeError(c, err)
}

func parseQueryError(err error) error {
	return domain.Validation("parâmetros de consulta inválidos", err.Error())
}
