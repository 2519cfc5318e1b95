package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schoolsync/backend/internal/repository"
)

// ExportService renders billing reports as spreadsheet workbooks.
type ExportService interface {
	// BillingReport returns an xlsx workbook with every paycheck and
	// invoice issued inside the inclusive [start, end] period.
	BillingReport(ctx context.Context, start, end time.Time) ([]byte, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const (
	paychecksSheet = "Paychecks"
	invoicesSheet  = "Invoices"
	reportDate     = "2006-01-02"
)

func (s *exportService) BillingReport(ctx context.Context, start, end time.Time) ([]byte, error) {
	paychecks, err := s.repo.Paycheck.ListByPeriod(ctx, start, end)
	if err != nil {
		s.logger.Error("paycheck report query failed", zap.Error(err))
		return nil, err
	}
	invoices, err := s.repo.Invoice.ListByPeriod(ctx, start, end)
	if err != nil {
		s.logger.Error("invoice report query failed", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(paychecksSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(invoicesSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "Teacher", "Period start", "Period end", "Work hours", "School hours", "Hourly", "Amount", "Issued on", "Paid"}
	if err := writeRow(f, paychecksSheet, 1, header); err != nil {
		return nil, err
	}
	for i := range paychecks {
		p := &paychecks[i]
		row := []interface{}{
			p.PaycheckID,
			p.TeacherID,
			p.PeriodStart.Format(reportDate),
			p.PeriodEnd.Format(reportDate),
			p.WorkHours,
			p.SchoolHours,
			p.Hourly,
			p.Amount,
			p.IssuedOn.Format(reportDate),
			p.Paid,
		}
		if err := writeRow(f, paychecksSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	header = []interface{}{"ID", "Student", "Class", "Issued on", "Description", "Amount", "Paid"}
	if err := writeRow(f, invoicesSheet, 1, header); err != nil {
		return nil, err
	}
	for i := range invoices {
		inv := &invoices[i]
		classID := ""
		if inv.ClassID != nil {
			classID = *inv.ClassID
		}
		row := []interface{}{
			inv.InvoiceID,
			inv.StudentID,
			classID,
			inv.IssuedOn.Format(reportDate),
			inv.Description,
			inv.Amount,
			inv.Paid,
		}
		if err := writeRow(f, invoicesSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("report workbook write failed", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report cell %s!%d: %w", sheet, row, err)
	}
	return f.SetSheetRow(sheet, cell, &values)
}
