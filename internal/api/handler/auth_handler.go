package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// AuthHandler serves the admin API session and the calendar session.
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, pair)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, pair)
}

// Logout handles POST /auth/logout, blacklisting the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Unauthorized(c, 40100, "missing bearer token")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// CalendarAuthURL handles GET /auth/calendar/url.
func (h *AuthHandler) CalendarAuthURL(c *gin.Context) {
	response.OK(c, h.svc.CalendarAuthURL())
}

// CalendarLogin handles POST /auth/calendar/login.
func (h *AuthHandler) CalendarLogin(c *gin.Context) {
	var req dto.CalendarLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	if err := h.svc.CalendarLogin(c.Request.Context(), &req); err != nil {
		h.logger.Warn("calendar login failed", zap.Error(err))
		response.BadGateway(c, 50201, "calendar login failed")
		return
	}
	response.OK(c, nil)
}

// CalendarLogout handles POST /auth/calendar/logout.
func (h *AuthHandler) CalendarLogout(c *gin.Context) {
	if err := h.svc.CalendarLogout(); err != nil {
		h.logger.Error("calendar logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// CalendarStatus handles GET /auth/calendar/status.
func (h *AuthHandler) CalendarStatus(c *gin.Context) {
	response.OK(c, gin.H{"authorized": h.svc.CalendarAuthorized()})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
