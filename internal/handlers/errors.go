package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/services"
)

// respondError maps the typed service errors to HTTP responses. Validation,
// reference, capacity and uniqueness failures are client errors; NotFound is
// 404; anything else is a store failure and stays opaque to the caller.
func respondError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError
	var referenceErr *services.ReferenceNotFoundError
	var capacityErr *services.CapacityExceededError
	var uniqueErr *services.UniqueConstraintError
	var notFoundErr *services.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		payload := gin.H{"error": validationErr.Error()}
		if len(validationErr.Fields) > 0 {
			payload["missing_fields"] = validationErr.Fields
		}
		ctx.JSON(http.StatusBadRequest, payload)
	case errors.As(err, &referenceErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": referenceErr.Error(), "missing_ids": referenceErr.IDs})
	case errors.As(err, &capacityErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": capacityErr.Error(), "user_id": capacityErr.UserID})
	case errors.As(err, &uniqueErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": uniqueErr.Error()})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		log.Printf("Unexpected error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
