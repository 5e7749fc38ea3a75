package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/stretchr/testify/mock"
)

type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvoiceRepository) GetByID(ctx context.Context, companyID, id string) (invoice.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	inv, _ := args.Get(0).(invoice.Invoice)
	return inv, args.Error(1)
}

func (m *InvoiceRepository) List(ctx context.Context, companyID string, filter invoice.ListFilter) ([]invoice.Invoice, error) {
	args := m.Called(ctx, companyID, filter)
	invs, _ := args.Get(0).([]invoice.Invoice)
	return invs, args.Error(1)
}

func (m *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

type InvoiceService struct {
	mock.Mock
}

func (m *InvoiceService) Preview(ctx context.Context, req invoice.PreviewRequest) (invoice.PreviewResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(invoice.PreviewResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) Create(ctx context.Context, companyID, createdBy string, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, createdBy, req)
	res, _ := args.Get(0).(invoice.InvoiceResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) Get(ctx context.Context, companyID, id string) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, id)
	res, _ := args.Get(0).(invoice.InvoiceResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) List(ctx context.Context, companyID string, req invoice.ListInvoicesRequest) ([]invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, req)
	res, _ := args.Get(0).([]invoice.InvoiceResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) RecordPayment(ctx context.Context, companyID, id string, req invoice.RecordPaymentRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, id, req)
	res, _ := args.Get(0).(invoice.InvoiceResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) Issue(ctx context.Context, companyID, issuedBy, id string) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, issuedBy, id)
	res, _ := args.Get(0).(invoice.InvoiceResponse)
	return res, args.Error(1)
}

func (m *InvoiceService) Cancel(ctx context.Context, companyID, id string) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, companyID, id)
	res, _ := args.Get(0).(invoice.InvoiceResponse)
	return res, args.Error(1)
}
