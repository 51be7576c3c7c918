package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/access"
)

// RequireModule corta con 403 si el rol del token no tiene acceso al módulo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Solo se monta en grupos donde toda ruta es una acción; los listados de los demás
// módulos devuelven vacío y lo decide el caso de uso.
func RequireModule(m access.Module) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no encontrado en el token",
			})
		}
		if !access.Can(role, m) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene acceso al módulo '" + string(m) + "'",
			})
		}
		return c.Next()
	}
}
