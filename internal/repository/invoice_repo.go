package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// InvoiceFilter narrows invoice listings. Nil fields are ignored.
type InvoiceFilter struct {
	Paid     *bool
	IssuedOn *time.Time
}

// InvoiceRepository is the invoice data-access interface.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	GetWithStudent(ctx context.Context, id string) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]model.Invoice, int64, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id string) (int64, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

// NewInvoiceRepo creates the GORM-backed InvoiceRepository.
func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepo) GetWithStudent(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("invoice_id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]model.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Paid != nil {
		q = q.Where("paid = ?", *filter.Paid)
	}
	if filter.IssuedOn != nil {
		q = q.Where("issued_on = ?", filter.IssuedOn.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []model.Invoice
	err := q.Offset(offset).Limit(limit).Order("issued_on DESC").Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("issued_on BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("issued_on").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Delete(&model.Invoice{})
	return result.RowsAffected, result.Error
}
