// Package response renders the unified API envelope.
package response

import (
	"net/http"

	deliverycontext "gachigage/internal/delivery/context"
	domainerrors "gachigage/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Success writes {data, meta} with the request id echoed in meta.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Data: data,
		Meta: &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// Failure writes {error, meta} for an AppError.
func Failure(c echo.Context, appErr domainerrors.AppError) error {
	return c.JSON(appErr.HTTPCode(), domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: appErr.Details(),
		},
		Meta: &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// Error writes {error, meta} from loose parts, for failures that never became
// an AppError.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// BindingError is the response for malformed request payloads.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", message, "")
}

// NoContent writes an empty 204.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
