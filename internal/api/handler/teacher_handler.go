package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// TeacherHandler serves teacher CRUD.
type TeacherHandler struct {
	svc    service.TeacherService
	logger *zap.Logger
}

// Create handles POST /teachers.
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	teacher, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, teacher)
}

// Get handles GET /teachers/:id.
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, teacher)
}

// List handles GET /teachers.
func (h *TeacherHandler) List(c *gin.Context) {
	var req dto.ListTeachersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	teachers, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, teachers, total, req.GetPage(), req.GetPageSize())
}

// Update handles PATCH /teachers/:id.
func (h *TeacherHandler) Update(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	teacher, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, teacher)
}

// Delete handles DELETE /teachers/:id.
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// Classes handles GET /teachers/:id/classes.
func (h *TeacherHandler) Classes(c *gin.Context) {
	classes, err := h.svc.Classes(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, classes)
}
