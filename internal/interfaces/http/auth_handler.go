package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
)

// AuthHandler maneja registro e inicio de sesión.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler crea el handler de autenticación.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register registra un usuario nuevo.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	user, err := h.authUC.RegisterUser(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login autentica y devuelve el token JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	resp, err := h.authUC.Login(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
