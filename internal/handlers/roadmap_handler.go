package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

type RoadmapHandler struct {
	BaseHandler
	service services.RoadmapService
}

func NewRoadmapHandler(service services.RoadmapService, logger utils.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetRoles handles GET /roadmaps/roles.
func (h *RoadmapHandler) GetRoles(c *gin.Context) {
	roles, err := h.service.GetRoles(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, gin.H{"roles": roles})
}

// GetByID handles GET /roadmaps/id/:id.
func (h *RoadmapHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	roadmap, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, roadmap)
}

// GetByRoleAndLevel handles GET /roadmaps/:role/:level.
func (h *RoadmapHandler) GetByRoleAndLevel(c *gin.Context) {
	roleName := c.Param("role")
	level := models.ExperienceLevel(c.Param("level"))

	switch level {
	case models.LevelJunior, models.LevelMid, models.LevelSenior:
	default:
		h.respondError(c, http.StatusBadRequest, "INVALID_LEVEL", "level must be one of: junior, mid, senior", nil)
		return
	}

	roadmap, err := h.service.GetByRoleAndLevel(c.Request.Context(), roleName, level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, roadmap)
}

// ClearCache handles DELETE /roadmaps/cache (admin only).
func (h *RoadmapHandler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, gin.H{"cleared": true})
}
