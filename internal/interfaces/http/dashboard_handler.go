package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/fertipos-api/internal/application/analytics"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (ventas y margen de hoy y del mes, top 5 productos,
// productos con stock bajo, clientes activos y los módulos visibles para el rol).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetTenantID(c), access.Role(GetRole(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
