package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// BaseHandler carries the envelope and error-mapping helpers every
// handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, models.NewSuccessResponse(data))
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, models.NewErrorResponse(code, message, details))
}

// handleServiceError maps service-layer errors onto HTTP responses.
// All routes funnel through here so the status taxonomy lives in one place.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", validationErrs)
		return
	}

	switch {
	case services.IsNotFound(err):
		h.respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case services.IsConflict(err):
		h.respondError(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, services.ErrInterviewExpired):
		h.respondError(c, http.StatusConflict, "SESSION_EXPIRED", err.Error(), nil)
	case errors.Is(err, services.ErrFeedbackNotReady),
		errors.Is(err, services.ErrNotEnoughQuestions),
		errors.Is(err, services.ErrInvalidContentType):
		h.respondError(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
	default:
		logger := utils.LoggerFromContext(c, h.logger)
		logger.Error("internal error", "error", err, "path", c.Request.URL.Path)
		h.respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
	}
}

// bindJSON decodes the request body, answering 400 itself on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.respondError(c, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", err.Error())
		return false
	}
	return true
}
