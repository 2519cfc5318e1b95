package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/response"
)

// ExportHandler serves downloadable billing reports.
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillingReport handles GET /exports/billing?start_date=...&end_date=...
func (h *ExportHandler) BillingReport(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		response.BadRequest(c, 40000, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		response.BadRequest(c, 40000, "end_date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		response.BadRequest(c, 40001, "end_date must not precede start_date")
		return
	}

	report, err := h.svc.BillingReport(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("billing_%s_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, report)
}
