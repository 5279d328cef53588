package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Existencias-api/internal/application/dto"
	"github.com/jhoicas/Existencias-api/internal/domain"
)

// writeError mapea el taxónomo de errores del dominio a estados HTTP.
// El core nunca conoce códigos de transporte; la traducción vive solo aquí.
func writeError(c *fiber.Ctx, err error) error {
	if verr, ok := domain.AsValidation(err); ok {
		fields := make([]dto.FieldErrorDTO, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldErrorDTO{Field: f.Field, Rule: f.Rule, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrIntegrity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INTEGRITY", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvariant):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVARIANT", Message: err.Error(),
		})
	default:
		// Fallos de infraestructura (incluye timeout/cancelación): 500, sin
		// tragar el error ni reintentar a ciegas una mutación no idempotente.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
}
