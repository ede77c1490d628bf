package app

import (
	"fmt"
	"net/http"

	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *handlers) initCEO(c *gin.Context) {
	defer h.seeding.lock("roster")()
	rep, err := h.Seeder.SeedCEO(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if len(rep.Members) == 0 {
		fail(c, fmt.Errorf("roster has no CEO entry: %w", models.ErrNotFound))
		return
	}
	ceo := rep.Members[0]
	if !ceo.Created {
		c.JSON(http.StatusOK, gin.H{
			"status":  "already_exists",
			"message": "User already exists: " + ceo.Name,
			"email":   ceo.Email,
			"results": rep.Members,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":              "success",
		"message":             "CEO user created successfully!",
		"name":                ceo.Name,
		"email":               ceo.Email,
		"modules_initialized": models.ModuleCount,
		"results":             rep.Members,
	})
}

func (h *handlers) initAllTeam(c *gin.Context) {
	defer h.seeding.lock("roster")()
	rep, err := h.Seeder.SeedAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "All team members initialized successfully!",
		"results": rep.Members,
		"team":    teamSummary(h.Seeder, rep),
	})
}

// teamSummary: имя и закреплённые модули каждого засеянного участника.
func teamSummary(s Seeder, rep *db.SeedReport) []gin.H {
	assigned := map[string]any{}
	if r := s.Roster(); r != nil {
		for _, m := range r.Members {
			assigned[m.Email] = m.AssignedLabel()
		}
	}
	out := make([]gin.H, 0, len(rep.Members))
	for _, res := range rep.Members {
		out = append(out, gin.H{"name": res.Name, "modules": assigned[res.Email]})
	}
	return out
}

func (h *handlers) initMaterials(c *gin.Context) {
	defer h.seeding.lock("materials")()
	res, err := h.Materials.Init(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
