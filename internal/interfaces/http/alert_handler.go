package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Existencias-api/internal/application/alerts"
	"github.com/jhoicas/Existencias-api/internal/application/dto"
)

// AlertService puerto del motor de alertas de stock bajo.
type AlertService interface {
	GetLowStockAlerts(ctx context.Context, companyID string, opts alerts.Options) (*dto.LowStockReport, error)
}

// AlertHandler maneja las peticiones HTTP del motor de alertas.
type AlertHandler struct {
	svc AlertService
}

// NewAlertHandler construye el handler.
func NewAlertHandler(svc AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Productos bajo su umbral efectivo con actividad de venta
//
//	reciente, ordenados por días proyectados hasta el quiebre.
//
// @Tags         alerts
// @Produce      json
// @Param        companyID    path   string  true   "ID de la empresa (UUID)"
// @Param        window_days  query  int     false  "Ventana de velocidad en días (default 30)"
// @Param        as_of        query  string  false  "Instante de referencia RFC3339 (default ahora)"
// @Success      200  {object}  dto.LowStockReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	var opts alerts.Options

	if windowDays := c.QueryInt("window_days"); windowDays != 0 {
		if windowDays < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "window_days debe ser positivo",
				Fields: []dto.FieldErrorDTO{{Field: "window_days", Rule: "min", Message: "debe ser al menos 1"}},
			})
		}
		opts.Window = time.Duration(windowDays) * 24 * time.Hour
	}
	if asOf := c.Query("as_of"); asOf != "" {
		t, err := time.Parse(time.RFC3339, asOf)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "as_of inválido",
				Fields: []dto.FieldErrorDTO{{Field: "as_of", Rule: "rfc3339", Message: "formato RFC3339 requerido"}},
			})
		}
		opts.AsOf = t
	}

	report, err := h.svc.GetLowStockAlerts(c.Context(), c.Params("companyID"), opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
