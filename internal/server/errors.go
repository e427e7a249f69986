package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	snapshotdomain "github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   "request",
				Code:    "invalid_request",
				Message: "invalid request",
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	var validation *ValidationErrors
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  validation.Errors,
		}
	}

	switch {
	case isPricingValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, snapshotdomain.ErrSnapshotMissing),
		errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal error",
		}
	}
}

func isPricingValidationError(err error) bool {
	switch {
	case errors.Is(err, pricingdomain.ErrNegativeRate),
		errors.Is(err, pricingdomain.ErrNegativeUnits),
		errors.Is(err, pricingdomain.ErrNegativeFee),
		errors.Is(err, pricingdomain.ErrInvalidDateRange),
		errors.Is(err, pricingdomain.ErrIncompletePolicy),
		errors.Is(err, pricingdomain.ErrInvalidPolicyThreshold),
		errors.Is(err, pricingdomain.ErrInvalidPolicyPercentage),
		errors.Is(err, pricingdomain.ErrInvalidStatus),
		errors.Is(err, pricingdomain.ErrUnknownCategory),
		errors.Is(err, snapshotdomain.ErrInvalidBooking),
		errors.Is(err, snapshotdomain.ErrMissingDates):
		return true
	default:
		return false
	}
}
