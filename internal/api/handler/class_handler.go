package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// ClassHandler serves class scheduling.
type ClassHandler struct {
	svc    service.ClassService
	logger *zap.Logger
}

// Create handles POST /classes.
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		response.BadRequest(c, 40001, "ends_at must be after starts_at")
		return
	}

	class, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, class)
}

// Get handles GET /classes/:id.
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, class)
}

// List handles GET /classes.
func (h *ClassHandler) List(c *gin.Context) {
	var req dto.ListClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	classes, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, classes, total, req.GetPage(), req.GetPageSize())
}

// Update handles PATCH /classes/:id.
func (h *ClassHandler) Update(c *gin.Context) {
	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	class, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, class)
}

// Delete handles DELETE /classes/:id.
func (h *ClassHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// Feed handles GET /feed.ics, the subscribable schedule feed.
func (h *ClassHandler) Feed(c *gin.Context) {
	feed, err := h.svc.ExportFeed(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
