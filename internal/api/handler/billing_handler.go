package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// BillingHandler serves work hours, paychecks and invoices.
type BillingHandler struct {
	svc    service.BillingService
	logger *zap.Logger
}

// LogWorkHours handles POST /work-hours.
func (h *BillingHandler) LogWorkHours(c *gin.Context) {
	var req dto.LogWorkHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	log, err := h.svc.LogWorkHours(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, log)
}

// ListWorkHours handles GET /work-hours.
func (h *BillingHandler) ListWorkHours(c *gin.Context) {
	var req dto.ListWorkHoursRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	logs, total, err := h.svc.ListWorkHours(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

// GeneratePaycheck handles POST /paychecks.
func (h *BillingHandler) GeneratePaycheck(c *gin.Context) {
	var req dto.GeneratePaycheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	paycheck, err := h.svc.GeneratePaycheck(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.Created(c, paycheck)
}

// PayrollPreview handles POST /paychecks/preview. Nothing persists.
func (h *BillingHandler) PayrollPreview(c *gin.Context) {
	var req dto.GeneratePaycheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	preview, err := h.svc.PayrollPreview(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, preview)
}

// ListPaychecks handles GET /paychecks.
func (h *BillingHandler) ListPaychecks(c *gin.Context) {
	var req dto.ListPaychecksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	paychecks, total, err := h.svc.ListPaychecks(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, paychecks, total, req.GetPage(), req.GetPageSize())
}

// PayPaycheck handles POST /paychecks/:id/pay.
func (h *BillingHandler) PayPaycheck(c *gin.Context) {
	paycheck, err := h.svc.PayPaycheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, paycheck)
}

// ListInvoices handles GET /invoices.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	var req dto.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, err.Error())
		return
	}

	invoices, total, err := h.svc.ListInvoices(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OKPage(c, invoices, total, req.GetPage(), req.GetPageSize())
}

// PayInvoice handles POST /invoices/:id/pay.
func (h *BillingHandler) PayInvoice(c *gin.Context) {
	invoice, err := h.svc.PayInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, invoice)
}

// InvoiceStudent handles GET /invoices/:id/student.
func (h *BillingHandler) InvoiceStudent(c *gin.Context) {
	student, err := h.svc.InvoiceStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	response.OK(c, student)
}
