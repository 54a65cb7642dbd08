package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	service services.QuestionService
}

func NewQuestionHandler(service services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List handles GET /questions with filter, sort and pagination query
// parameters.
func (h *QuestionHandler) List(c *gin.Context) {
	filters := parseQuestionFilters(c)

	resp, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, resp)
}

// GetByID handles GET /questions/:id.
func (h *QuestionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	question, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, question)
}

// ClearCache handles DELETE /questions/cache (admin only).
func (h *QuestionHandler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *BaseHandler) parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "INVALID_ID", name+" must be a positive integer", nil)
		return 0, false
	}
	return uint(id), true
}

func parseQuestionFilters(c *gin.Context) repositories.QuestionFilters {
	filters := repositories.QuestionFilters{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if v := c.Query("type"); v != "" {
		t := models.QuestionType(v)
		filters.Type = &t
	}
	if v := c.Query("difficulty"); v != "" {
		d := models.DifficultyLevel(v)
		filters.Difficulty = &d
	}
	if v := c.Query("technology"); v != "" {
		filters.Technology = &v
	}
	if v := c.Query("company"); v != "" {
		filters.Company = &v
	}
	if v := c.Query("role"); v != "" {
		filters.Role = &v
	}
	if v := c.Query("search"); v != "" {
		filters.Search = &v
	}

	return filters
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
