package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/pkg/jwt"
)

// Claves en el contexto de Fiber.
const (
	localUserID  = "user_id"
	localRole    = "role"
	localStoreID = "store_id"
)

// AuthMiddleware valida el token Bearer y deja user_id, role y store_id en
// el contexto.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_TOKEN",
				Message: "token de autenticación requerido",
			})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, role, storeID, err := jwt.Parse(secret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "token inválido o expirado",
			})
		}

		c.Locals(localUserID, userID)
		c.Locals(localRole, role)
		c.Locals(localStoreID, storeID)
		return c.Next()
	}
}

// RequireRole exige uno de los roles dados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol no presente en el token",
			})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para esta operación",
		})
	}
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(localRole).(string); ok {
		return v
	}
	return ""
}

// GetStoreID devuelve la tienda asignada del usuario (vacío para admins sin
// tienda).
func GetStoreID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localStoreID).(string); ok {
		return v
	}
	return ""
}

// ActorFrom arma el descriptor del actor para los motores del ledger.
func ActorFrom(c *fiber.Ctx) entity.Actor {
	return entity.Actor{
		ID:      GetUserID(c),
		Role:    GetRole(c),
		StoreID: GetStoreID(c),
	}
}
