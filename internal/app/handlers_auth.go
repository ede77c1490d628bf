package app

import (
	"fmt"
	"net/http"

	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()

	u, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	view, err := h.Progress.GetProgress(ctx, u.Email)
	if err != nil {
		fail(c, err)
		return
	}
	h.Log.FromContext(ctx).Info("login", zap.String("user", logging.MaskEmail(u.Email)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":               fmt.Sprintf("user_%d", u.ID),
			"email":            u.Email,
			"name":             u.Name,
			"role":             u.Role,
			"currentModule":    view.CurrentModule,
			"completedModules": view.CompletedModules,
			"activityData":     view.Sessions,
		},
		"stats": gin.H{
			"total_calls":     u.TotalCalls,
			"total_meetings":  u.TotalMeetings,
			"closed_deals":    u.ClosedDeals,
			"total_revenue":   u.TotalRevenue,
			"revenue_month":   u.RevenueMonth,
			"revenue_quarter": u.RevenueQuarter,
			"revenue_ytd":     u.RevenueYTD,
		},
	})
}

// Сессии не хранятся на сервере: эндпоинты сохранены для совместимости с фронтендом.
func (h *handlers) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *handlers) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
