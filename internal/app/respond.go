package app

import (
	"errors"
	"net/http"

	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/metrics"
	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/Spok95/sales-training-backend/internal/observability"
	"github.com/gin-gonic/gin"
)

const msgInvalidCredentials = "Invalid email or password"

// fail переводит ошибку слоя сервисов в HTTP-ответ {"error": "..."}.
func fail(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
	case errors.Is(err, models.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		metrics.HandlerErrors.Inc()
		rid, _ := ctxutil.RequestID(c.Request.Context())
		observability.CaptureRequestErr(err, c.FullPath(), rid)
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
