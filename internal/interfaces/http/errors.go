package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
)

// writeError traduce un error de aplicación a status + dto.ErrorResponse.
// Los errores no clasificados se registran y se responden como 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("tenant_id", GetTenantID(c)).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var tender *pos.TenderError
	switch {
	case errors.As(err, &tender):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "INSUFFICIENT_TENDER",
			Message: err.Error(),
			Details: []dto.FieldErrorDetail{{Field: "amount_tendered", Message: "faltan " + tender.Shortfall().StringFixed(2)}},
		}
	case errors.Is(err, domain.ErrValidation):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
		if fields := validation.Fields(err); len(fields) > 0 {
			resp.Message = "datos inválidos"
			for _, f := range fields {
				resp.Details = append(resp.Details, dto.FieldErrorDetail{Field: f.Field, Message: f.Message})
			}
		}
		return fiber.StatusBadRequest, resp
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrPreconditionFailed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "PRECONDITION_FAILED", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrTenantSuspended):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "TENANT_SUSPENDED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler para fiber.Config: errores de Fiber (404 de ruta, body demasiado grande) y los no manejados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
