package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps an application error to the operator envelope and the
// HTTP status its kind calls for: 400 business rule / configuration /
// validation, 404 not found, 409 conflict, 500 invariant and everything else.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrBusinessRule),
		errors.Is(err, apperrors.ErrConfiguration),
		errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	}

	c.JSON(status, dto.ErrorResponse{
		Success:   false,
		Message:   err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondBindingError renders request validation failures as the structured
// {error, field, constraint} shape.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:      "request validation failed",
			Field:      first.Field(),
			Constraint: first.Tag(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
		Error: "invalid request format",
	})
}
