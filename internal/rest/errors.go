package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/domain"
	"agrilink/pkg/logger"
	jsonres "agrilink/pkg/response"
)

// writeError maps a service error onto an HTTP status and the standard
// envelope. Unknown errors stay generic and are logged server-side.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, jsonres.Error("NOT_FOUND", "Resource not found", nil))
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, jsonres.Error("FORBIDDEN", "You do not have access to this resource", nil))
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", "Authentication required", nil))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", domain.ErrInvalidCredentials.Error(), nil))
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, jsonres.Error("CONFLICT", "Resource already exists", nil))
	case errors.Is(err, domain.ErrOtpNotFound):
		return c.JSON(http.StatusBadRequest, jsonres.Error("OTP_NOT_FOUND", "No OTP found for this phone number", nil))
	case errors.Is(err, domain.ErrOtpExpired):
		return c.JSON(http.StatusBadRequest, jsonres.Error("OTP_EXPIRED", "OTP has expired", nil))
	case errors.Is(err, domain.ErrOtpMismatch):
		return c.JSON(http.StatusBadRequest, jsonres.Error("OTP_INVALID", "Invalid OTP", nil))
	case errors.Is(err, domain.ErrOtpExhausted):
		return c.JSON(http.StatusBadRequest, jsonres.Error("OTP_EXHAUSTED", "Too many wrong attempts, request a new OTP", nil))
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	case errors.Is(err, domain.ErrSMSDelivery):
		logger.Error("SMS delivery failure", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "Failed to send SMS", nil))
	case errors.Is(err, domain.ErrUpstream):
		logger.Error("Upstream service failure", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "Upstream service unavailable", nil))
	default:
		logger.Error("Unhandled service error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "Something went wrong", nil))
	}
}

// writeValidationError reports which fields failed and why.
func writeValidationError(c echo.Context, err error) error {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return c.JSON(http.StatusBadRequest, jsonres.Error("VALIDATION_FAILED", "Validation failed", fields))
}

// writeBindError covers malformed request bodies.
func writeBindError(c echo.Context, err error) error {
	logger.Warn("Failed to bind request", "error", err)
	return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Malformed request body", nil))
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrInvalidArgument, name)
	}
	return uint(id), nil
}
