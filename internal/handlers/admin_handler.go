package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	service services.AdminService
}

func NewAdminHandler(service services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetContent handles GET /admin/content.
func (h *AdminHandler) GetContent(c *gin.Context) {
	content, err := h.service.GetContent(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, content)
}

// GetAnalytics handles GET /admin/analytics.
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.GetAnalytics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, analytics)
}

// ApproveQuestion handles POST /admin/approve.
func (h *AdminHandler) ApproveQuestion(c *gin.Context) {
	var req services.ApproveQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.QuestionID == 0 {
		h.respondError(c, http.StatusBadRequest, "INVALID_ID", "question_id must be a positive integer", nil)
		return
	}

	question, err := h.service.ApproveQuestion(c.Request.Context(), req.QuestionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, question)
}

// UpdateQuestion handles PUT /admin/questions/:id.
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.QuestionUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	question, err := h.service.UpdateQuestion(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, question)
}

// DeleteContent handles DELETE /admin/:type/:id.
func (h *AdminHandler) DeleteContent(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteContent(c.Request.Context(), c.Param("type"), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// ExportContent handles GET /admin/export, streaming an XLSX workbook.
func (h *AdminHandler) ExportContent(c *gin.Context) {
	data, err := h.service.ExportContent(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("content-export-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
