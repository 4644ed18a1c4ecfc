package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aura/client"
	"aura/lifecycle"
	"aura/models"
)

// writeAPIError maps a backend or lifecycle failure onto the browser
// response. Backend messages pass through verbatim so the UI can show them.
func writeAPIError(c *gin.Context, log *zap.Logger, err error) {
	var npe *lifecycle.NotPermittedError
	if errors.As(err, &npe) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "action not permitted",
			"message": npe.Error(),
		})
		return
	}

	status := http.StatusBadGateway
	switch {
	case client.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case client.IsForbidden(err):
		status = http.StatusForbidden
	case client.IsNotFound(err):
		status = http.StatusNotFound
	case client.IsConflict(err):
		status = http.StatusConflict
	default:
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			status = apiErr.Status
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error("upstream call failed", zap.Error(err))
	}
	c.JSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": client.Message(err),
	})
}
