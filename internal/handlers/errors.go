package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

const internalErrorMessage = "internal server error"

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-safe message of a classified error.
func errorMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		return appErr.Message
	}
	return internalErrorMessage
}

func fieldErrors(err error) []validation.FieldError {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return fields
	}
	return nil
}

// respondError maps a service error onto the JSON error body. Unclassified
// errors are attached to the context for the request logger and hidden from clients.
func respondError(c *gin.Context, err error) {
	status := statusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.ErrorResponse{
		Error:   errorMessage(err),
		Details: fieldErrors(err),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		badRequest(c, "invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, target any) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		badRequest(c, "invalid query parameters")
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id < 1 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
