package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotArchived      = "BOOKMARK_NOT_ARCHIVED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInternalError    = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func handleServiceError(c *fiber.Ctx, l *zap.SugaredLogger, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.As(err, &verr):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeValidationFailed, Message: service.ErrValidation.Error(), Details: verr.Details})
	case errors.Is(err, service.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeValidationFailed, Message: err.Error()})
	case errors.Is(err, service.ErrNotArchived):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeNotArchived, Message: err.Error()})
	default:
		l.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "an unexpected error occurred"})
	}
}

// handleBodyError answers a body that could not be decoded. A well-formed body
// with a field of the wrong type is a validation failure.
func handleBodyError(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeValidationFailed,
			Message: service.ErrValidation.Error(),
			Details: []string{typeErr.Field + " has the wrong type"},
		})
	}
	return handleInvalidRequest(c, "request body is not valid JSON")
}

func handleInvalidRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: message})
}

// newErrorHandler covers errors that escape the handlers: unknown routes,
// recovered panics.
func newErrorHandler(l *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInvalidRequest
			switch {
			case fe.Code == http.StatusNotFound:
				code = CodeNotFound
			case fe.Code >= http.StatusInternalServerError:
				code = CodeInternalError
			}
			return c.Status(fe.Code).JSON(ErrorResponse{Code: code, Message: fe.Message})
		}
		l.Errorw("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "an unexpected error occurred"})
	}
}
