package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
)

// tenantChecker contrato mínimo para verificar si la tienda del token puede operar.
// Lo implementa *usecase.TenantStatusService.
type tenantChecker interface {
	IsActive(ctx context.Context, tenantID string) (bool, error)
}

// RequirePermission exige que el rol del token tenga la acción sobre el módulo.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermission(resolver *access.Resolver, module access.Module, action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := access.ParseRole(GetRole(c))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol ausente o desconocido"})
		}
		if !resolver.HasPermission(role, module, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + string(role) + "' no puede " + string(action) + " en '" + string(module) + "'",
			})
		}
		return c.Next()
	}
}

// RequireLevel exige un nivel de rol mínimo.
func RequireLevel(resolver *access.Resolver, level int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := access.ParseRole(GetRole(c))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol ausente o desconocido"})
		}
		if !resolver.MeetsLevel(role, level) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "nivel de rol insuficiente"})
		}
		return c.Next()
	}
}

// RequireActiveTenant bloquea las tiendas suspendidas. El administrador de plataforma pasa siempre.
//
//   - 403 TENANT_SUSPENDED → tienda suspendida o inexistente.
//   - 503 → fallo de infraestructura al consultar la DB.
func RequireActiveTenant(checker tenantChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == string(access.RoleAdmin) {
			return c.Next()
		}
		tenantID := GetTenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id no encontrado en el token"})
		}
		active, err := checker.IsActive(c.UserContext(), tenantID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TENANT_CHECK_FAILED",
				Message: "no se pudo verificar la tienda, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "TENANT_SUSPENDED", Message: "la tienda está suspendida"})
		}
		return c.Next()
	}
}
