// Package handler adapts HTTP requests to the service layer. Handlers
// bind and validate input, call exactly one service operation and write
// the unified response envelope; no business logic lives here.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// Handler aggregates all route handlers.
type Handler struct {
	Auth        *AuthHandler
	Student     *StudentHandler
	Teacher     *TeacherHandler
	Class       *ClassHandler
	Reservation *ReservationHandler
	Billing     *BillingHandler
	Export      *ExportHandler
}

// NewHandler wires handlers to their services.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:        &AuthHandler{svc: svc.Auth, logger: logger},
		Student:     &StudentHandler{svc: svc.Student, logger: logger},
		Teacher:     &TeacherHandler{svc: svc.Teacher, logger: logger},
		Class:       &ClassHandler{svc: svc.Class, logger: logger},
		Reservation: &ReservationHandler{svc: svc.Reservation, logger: logger},
		Billing:     &BillingHandler{svc: svc.Billing, logger: logger},
		Export:      &ExportHandler{svc: svc.Export, logger: logger},
	}
}

// writeServiceError maps service sentinel errors onto the response
// envelope. Unknown errors become an opaque 500; calendar failures are
// surfaced as 502 because the upstream, not this service, failed.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrClassTeacherMissing),
		errors.Is(err, service.ErrPaycheckNotFound),
		errors.Is(err, service.ErrInvoiceNotFound),
		errors.Is(err, service.ErrNoWorkHours):
		response.NotFound(c, 40400, err.Error())

	case errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrTeacherExists),
		errors.Is(err, service.ErrClassExists),
		errors.Is(err, service.ErrClassFull),
		errors.Is(err, service.ErrAlreadyReserved),
		errors.Is(err, service.ErrNotReserved),
		errors.Is(err, service.ErrWorkHoursLogged),
		errors.Is(err, service.ErrPaycheckExists):
		response.Conflict(c, 40900, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, 40100, err.Error())

	case errors.Is(err, calendar.ErrLoginRequired):
		response.Unauthorized(c, 40102, "calendar login required")

	default:
		var calErr *calendar.Error
		if errors.As(err, &calErr) {
			response.BadGateway(c, 50201, "calendar operation failed")
			return
		}
		logger.Error("unhandled service error", zap.Error(err))
		response.InternalError(c)
	}
}
