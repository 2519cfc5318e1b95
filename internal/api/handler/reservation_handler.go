package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// ReservationHandler serves seat booking and cancellation.
type ReservationHandler struct {
	svc    service.ReservationService
	logger *zap.Logger
}

// Reserve handles POST /reservations. The class and its updated roster
// are returned; the issued invoice is reachable via GET /invoices.
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	roster, err := h.svc.Reserve(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, roster)
}

// Cancel handles POST /reservations/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	var req dto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), &req); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// Roster handles GET /classes/:id/students.
func (h *ReservationHandler) Roster(c *gin.Context) {
	roster, err := h.svc.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, roster)
}

// StudentClasses handles GET /students/:id/classes.
func (h *ReservationHandler) StudentClasses(c *gin.Context) {
	classes, err := h.svc.StudentClasses(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, classes)
}
