package app

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listMaterials(c *gin.Context) {
	var f models.MaterialFilter
	if v := c.Query("module"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, models.Invalid("module", "must be an integer"))
			return
		}
		f.Module = &n
	}
	if v := c.Query("type"); v != "" {
		t := models.MaterialType(v)
		if !t.Valid() {
			fail(c, models.Invalid("type", "must be one of summary, worksheet, guide"))
			return
		}
		f.Type = &t
	}
	out, err := h.Materials.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		out = []models.TrainingMaterial{}
	}
	c.JSON(http.StatusOK, out)
}

// materialID: нечисловой id означает, что такого материала нет.
func materialID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, models.ErrNotFound)
		return 0, false
	}
	return id, true
}

func (h *handlers) materialPage(c *gin.Context) {
	id, ok := materialID(c)
	if !ok {
		return
	}
	page, err := h.Materials.Page(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *handlers) materialPDF(c *gin.Context) {
	id, ok := materialID(c)
	if !ok {
		return
	}
	pdf, err := h.Materials.PDF(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename))
	c.Header("X-PDF-Source", pdf.Source)
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}
