package app

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/Spok95/sales-training-backend/internal/progress"
	"github.com/gin-gonic/gin"
)

func (h *handlers) getProgress(c *gin.Context) {
	v, err := h.Progress.GetProgress(c.Request.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type moduleUpdateRequest struct {
	Status models.ModuleStatus      `json:"status"`
	Stats  *models.ModuleStatsPatch `json:"stats"`
}

func (h *handlers) updateModule(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		fail(c, models.Invalid("module_number", "must be an integer"))
		return
	}
	var req moduleUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	p, err := h.Progress.UpdateModule(c.Request.Context(), c.Param("email"), n, req.Status, req.Stats)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) updateStats(c *gin.Context) {
	var patch models.StatsPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	st, err := h.Progress.UpdateStats(c.Request.Context(), c.Param("email"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *handlers) recordSession(c *gin.Context) {
	var in progress.SessionInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	s, err := h.Progress.RecordSession(c.Request.Context(), c.Param("email"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *handlers) teamStats(c *gin.Context) {
	out, err := h.Progress.TeamStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *handlers) teamExport(c *gin.Context) {
	data, name, err := h.Progress.TeamWorkbook(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
