package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/config"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// AuthHandler issues the admin JWT for the demo credentials.
type AuthHandler struct {
	BaseHandler
	cfg       *config.Config
	validator *validator.Validator
}

func NewAuthHandler(cfg *config.Config, v *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		cfg:         cfg,
		validator:   v,
	}
}

// Login checks the configured admin credentials and returns a signed
// token. Comparison is constant-time; an unset password disables login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if h.cfg.AdminPassword == "" || !credentialsMatch(req.Username, req.Password, h.cfg.AdminUsername, h.cfg.AdminPassword) {
		h.handleServiceError(c, services.ErrInvalidCredentials)
		return
	}

	token, err := GenerateAdminToken(h.cfg.JWTSecret, req.Username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, services.LoginResponse{
		Token:     token,
		ExpiresIn: int(adminTokenTTL.Seconds()),
	})
}

func credentialsMatch(username, password, wantUsername, wantPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword)) == 1
	return userOK && passOK
}
