package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is a domain failure with a fixed HTTP status. Anything else that
// escapes a service is treated as an internal error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func ErrBadRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

func ErrUnauthorized(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: msg}
}

func ErrNotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

func ErrConflict(msg string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: msg}
}

func AbortWithError(ctx *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		ctx.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
