package handler

import (
	"errors"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var formErr *util.FormError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &formErr),
		errors.Is(err, analyzer.ErrInvalidArgument),
		errors.Is(err, usecase.ErrMissingContact),
		errors.Is(err, usecase.ErrInvalidFeedback):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, usecase.ErrUnsupportedFile), errors.Is(err, util.ErrNotPDF):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, util.ErrEmptyPDF), errors.Is(err, util.ErrCorruptPDF):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, message string, err error) error {
	code := statusFor(err)
	if code < fiber.StatusInternalServerError {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			message = formErr.Message
		} else {
			message = err.Error()
		}
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}
