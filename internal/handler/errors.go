package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/service"
)

// Machine-readable error codes returned alongside the message, grouped
// by taxonomy: bad input, missing reference, state conflict, and
// unmet precondition.
const (
	codeValidation   = "validation_error"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codePrecondition = "precondition_failed"
	codeInternal     = "internal"
)

// errorBody is the uniform error response shape.
func errorBody(code, msg string) fiber.Map {
	return fiber.Map{"error": msg, "code": code}
}

// respondServiceError maps service sentinels to HTTP responses. Every
// client-caused failure gets a stable code; anything unrecognized is
// logged and surfaced as a generic internal error.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidQty):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, err.Error()))
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrCouponNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody(codeNotFound, err.Error()))
	case errors.Is(err, service.ErrCouponAlreadyUsed), errors.Is(err, service.ErrUnusedCouponExists):
		return c.Status(fiber.StatusConflict).JSON(errorBody(codeConflict, err.Error()))
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidCartTotal),
		errors.Is(err, service.ErrNoOrdersYet),
		errors.Is(err, service.ErrNotNthOrder):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorBody(codePrecondition, err.Error()))
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unexpected service error")
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody(codeInternal, "internal server error"))
}
