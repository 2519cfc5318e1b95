package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// StudentHandler serves student CRUD.
type StudentHandler struct {
	svc    service.StudentService
	logger *zap.Logger
}

// Create handles POST /students.
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	student, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, student)
}

// Get handles GET /students/:id.
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, student)
}

// List handles GET /students.
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.ListStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	students, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// Update handles PATCH /students/:id.
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	student, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, student)
}

// Delete handles DELETE /students/:id.
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}
