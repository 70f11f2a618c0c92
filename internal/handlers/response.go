package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"muattrans/internal/apperrors"
	"muattrans/internal/validation"
)

// Message is the status descriptor of the response envelope.
type Message struct {
	Code int    `json:"Code"`
	Text string `json:"Text"`
}

// Envelope is the fixed three-field wrapper every endpoint responds with,
// success or failure.
type Envelope struct {
	Message Message `json:"Message"`
	Data    any     `json:"Data"`
	Type    string  `json:"Type"`
}

func respond(c *fiber.Ctx, code int, text string, data any, opType string) error {
	return c.Status(code).JSON(Envelope{
		Message: Message{Code: code, Text: text},
		Data:    data,
		Type:    opType,
	})
}

func respondOK(c *fiber.Ctx, data any, opType string) error {
	return respond(c, http.StatusOK, "success", data, opType)
}

func respondCreated(c *fiber.Ctx, data any, opType string) error {
	return respond(c, http.StatusCreated, "created", data, opType)
}

// respondError maps a typed failure to the envelope. Anything that is not an
// *apperrors.AppError renders as a generic 500 with a null payload.
func respondError(c *fiber.Ctx, err error, opType string) error {
	if appErr, ok := apperrors.As(err); ok {
		return respond(c, appErr.StatusCode, appErr.Message, nil, opType)
	}
	return respond(c, http.StatusInternalServerError, "internal server error", nil, opType)
}

// respondValidation renders the ordered field-violation list as the payload
// of a 400 envelope.
func respondValidation(c *fiber.Ctx, errs []validation.FieldError, opType string) error {
	return respond(c, http.StatusBadRequest, "validation failed", errs, opType)
}

func respondBadRequest(c *fiber.Ctx, text string, opType string) error {
	return respond(c, http.StatusBadRequest, text, nil, opType)
}

func respondNotFound(c *fiber.Ctx, text string, opType string) error {
	return respond(c, http.StatusNotFound, text, nil, opType)
}
