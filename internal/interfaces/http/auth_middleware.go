package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/pkg/jwt"
)

// Locals keys preenchidas pelo AuthMiddleware.
const (
	LocalActor = "actor"
	localError = "handler_error"
)

// AuthMiddleware valida o Bearer Token JWT e guarda o access.Actor em c.Locals.
// Token sem papel conhecido é tratado como inválido.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, authError("MISSING_TOKEN", "header Authorization obrigatório"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, authError("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeError(c, authError("MISSING_TOKEN", "token vazio"))
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeError(c, authError("INVALID_TOKEN", "token inválido ou expirado"))
		}
		if id.Role == "" {
			return writeError(c, authError("MISSING_ROLE", "token sem papel"))
		}
		role, err := access.ParseRole(id.Role)
		if err != nil {
			return writeError(c, authError("INVALID_ROLE", "papel do token desconhecido"))
		}
		c.Locals(LocalActor, access.Actor{ID: id.UserID, Username: id.Username, Role: role})
		return c.Next()
	}
}

// RequireRole restringe a rota aos papéis informados. Usar DEPOIS do AuthMiddleware.
// A política de capacidades continua sendo aplicada no núcleo; isto só corta cedo.
func RequireRole(roles ...access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		if actor.ID == "" {
			return writeError(c, domain.ErrUnauthorized)
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return writeError(c, domain.ErrForbidden)
	}
}

// ActorFrom devolve o ator autenticado; zero value quando a rota não passou pelo AuthMiddleware.
func ActorFrom(c *fiber.Ctx) access.Actor {
	actor, _ := c.Locals(LocalActor).(access.Actor)
	return actor
}

// GetUserID devolve o id do usuário autenticado.
func GetUserID(c *fiber.Ctx) string { return ActorFrom(c).ID }

// GetRole devolve o papel do usuário autenticado.
func GetRole(c *fiber.Ctx) string { return string(ActorFrom(c).Role) }

func authError(code, message string) *domain.Error {
	return &domain.Error{Kind: domain.KindAuth, Code: code, Message: message, Err: domain.ErrUnauthorized}
}
