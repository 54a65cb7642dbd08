package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

type InterviewHandler struct {
	BaseHandler
	service services.MockInterviewService
}

func NewInterviewHandler(service services.MockInterviewService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Start handles POST /mock-interviews/start.
func (h *InterviewHandler) Start(c *gin.Context) {
	var req services.StartInterviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	interview, err := h.service.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, interview)
}

// GetByID handles GET /mock-interviews/:id.
func (h *InterviewHandler) GetByID(c *gin.Context) {
	interview, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, interview)
}

// SubmitAnswer handles POST /mock-interviews/:id/submit.
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.SubmitAnswer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, resp)
}

// GetFeedback handles GET /mock-interviews/:id/feedback.
func (h *InterviewHandler) GetFeedback(c *gin.Context) {
	feedback, err := h.service.GetFeedback(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, feedback)
}

// End handles POST /mock-interviews/:id/end.
func (h *InterviewHandler) End(c *gin.Context) {
	interview, err := h.service.End(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, interview)
}

// Cleanup handles POST /mock-interviews/cleanup, sweeping stale active
// sessions on demand. The background ticker runs the same sweep.
func (h *InterviewHandler) Cleanup(c *gin.Context) {
	swept, err := h.service.CleanupStale(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, gin.H{"abandoned": swept})
}
