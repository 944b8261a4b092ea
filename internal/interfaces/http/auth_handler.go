package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/internal/application/auth"
	"github.com/jhoicas/epi-control/internal/application/dto"
)

// AuthHandler login, identidade e cadastro de usuários.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Autenticar usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// Me godoc
// @Summary      Identidade do token e capacidades do papel
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, out)
}

// CreateUser godoc
// @Summary      Criar usuário (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateUser(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusCreated, out)
}
