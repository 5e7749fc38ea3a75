package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

const (
	// numberAttempts bounds retries when a generated number collides.
	numberAttempts    = 3
	documentURLExpiry = 15 * time.Minute
)

type InvoiceServiceImpl struct {
	tx             database.Transactor
	invoiceRepo    invoice.InvoiceRepository
	fileStorage    storage.FileStorage
	notifier       notification.Service
	defaultGSTRate decimal.Decimal
	now            func() time.Time
	newNumber      func(issue time.Time) string
}

func NewInvoiceService(
	tx database.Transactor,
	invoiceRepo invoice.InvoiceRepository,
	fileStorage storage.FileStorage,
	notifier notification.Service,
	defaultGSTRate decimal.Decimal,
) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		tx:             tx,
		invoiceRepo:    invoiceRepo,
		fileStorage:    fileStorage,
		notifier:       notifier,
		defaultGSTRate: defaultGSTRate,
		now:            time.Now,
		newNumber:      invoiceNumber,
	}
}

// invoiceNumber formats INV-YYYYMM-XXXXXXXX with a random suffix.
func invoiceNumber(issue time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV-" + issue.Format("200601") + "-" + suffix
}

// Preview implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Preview(ctx context.Context, req invoice.PreviewRequest) (invoice.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.PreviewResponse{}, err
	}

	totals, items := invoice.ComputeTotals(req.LineItems(s.defaultGSTRate), req.FromStateCode, req.ToStateCode, req.Discount, req.TDSRate, decimal.Zero)
	return invoice.PreviewResponse{Items: items, Totals: totals}, nil
}

// Create implements invoice.InvoiceService. Header and items are written in
// one transaction; a colliding number is regenerated.
func (s *InvoiceServiceImpl) Create(ctx context.Context, companyID, createdBy string, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv := req.ToEntity(companyID, createdBy, s.defaultGSTRate)
	inv.Recompute()

	var err error
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		inv.InvoiceNumber = s.newNumber(inv.IssueDate.Time())
		err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			return s.invoiceRepo.Create(txCtx, &inv)
		})
		if !errors.Is(err, invoice.ErrInvoiceNumberExists) {
			break
		}
		slog.Warn("invoice number collision, regenerating", "number", inv.InvoiceNumber, "attempt", attempt)
	}
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNumberExists) {
			return invoice.InvoiceResponse{}, err
		}
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	slog.Info("invoice created", "company_id", companyID, "invoice_id", inv.ID, "number", inv.InvoiceNumber)
	return invoice.ToInvoiceResponse(inv), nil
}

// Get implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Get(ctx context.Context, companyID, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.get(ctx, companyID, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return s.toResponse(ctx, inv), nil
}

// List implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) List(ctx context.Context, companyID string, req invoice.ListInvoicesRequest) ([]invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.List(ctx, companyID, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, invoice.ToInvoiceResponse(inv))
	}
	return resp, nil
}

// RecordPayment implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) RecordPayment(ctx context.Context, companyID, id string, req invoice.RecordPaymentRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv, err := s.get(ctx, companyID, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	switch inv.Status {
	case invoice.StatusCancelled:
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceCancelled
	case invoice.StatusDraft:
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceNotIssued
	}
	if req.Amount.GreaterThan(inv.Totals.BalanceDue) {
		return invoice.InvoiceResponse{}, invoice.ErrPaymentExceedsBalance
	}

	inv.Totals.AmountPaid = inv.Totals.AmountPaid.Add(req.Amount)
	inv.Recompute()

	if err := s.invoiceRepo.Update(ctx, &inv); err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to record payment: %w", err)
	}
	return s.toResponse(ctx, inv), nil
}

// Issue implements invoice.InvoiceService. The priced invoice is archived
// for the document renderer before it is marked issued.
func (s *InvoiceServiceImpl) Issue(ctx context.Context, companyID, issuedBy, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.get(ctx, companyID, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	switch inv.Status {
	case invoice.StatusCancelled:
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceCancelled
	case invoice.StatusIssued:
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceAlreadyIssued
	}

	issuedAt := s.now()
	inv.Status = invoice.StatusIssued
	inv.IssuedAt = &issuedAt

	key := storage.Key("invoices", companyID, strconv.Itoa(inv.IssueDate.Year), inv.InvoiceNumber+".json")
	key, err = storage.PutJSON(ctx, s.fileStorage, key, invoice.ToInvoiceResponse(inv))
	if err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to archive invoice: %w", err)
	}
	inv.DocumentKey = &key

	if err := s.invoiceRepo.Update(ctx, &inv); err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to issue invoice: %w", err)
	}

	s.notifyIssued(ctx, inv, issuedBy)

	return s.toResponse(ctx, inv), nil
}

// Cancel implements invoice.InvoiceService. Invoices with any payment stay
// as they are.
func (s *InvoiceServiceImpl) Cancel(ctx context.Context, companyID, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.get(ctx, companyID, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if inv.Status == invoice.StatusCancelled {
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceCancelled
	}
	if inv.Totals.AmountPaid.IsPositive() {
		return invoice.InvoiceResponse{}, invoice.ErrInvoicePaid
	}

	cancelledAt := s.now()
	inv.Status = invoice.StatusCancelled
	inv.CancelledAt = &cancelledAt

	if err := s.invoiceRepo.Update(ctx, &inv); err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to cancel invoice: %w", err)
	}
	return s.toResponse(ctx, inv), nil
}

func (s *InvoiceServiceImpl) get(ctx context.Context, companyID, id string) (invoice.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.Invoice{}, err
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

func (s *InvoiceServiceImpl) toResponse(ctx context.Context, inv invoice.Invoice) invoice.InvoiceResponse {
	resp := invoice.ToInvoiceResponse(inv)
	if inv.DocumentKey == nil || s.fileStorage == nil {
		return resp
	}
	url, err := s.fileStorage.GetURL(ctx, *inv.DocumentKey, documentURLExpiry)
	if err != nil {
		slog.Warn("failed to sign invoice document url", "invoice_id", inv.ID, "error", err)
		return resp
	}
	resp.DocumentURL = &url
	return resp
}

// notifyIssued tells the author of the draft that someone else issued it.
func (s *InvoiceServiceImpl) notifyIssued(ctx context.Context, inv invoice.Invoice, issuedBy string) {
	if s.notifier == nil || inv.CreatedBy == "" || inv.CreatedBy == issuedBy {
		return
	}
	req := notification.CreateNotificationRequest{
		CompanyID:   inv.CompanyID,
		RecipientID: inv.CreatedBy,
		SenderID:    &issuedBy,
		Type:        notification.TypeInvoiceIssued,
		Title:       "Invoice " + inv.InvoiceNumber + " issued",
		Message:     "Invoice for " + inv.CustomerName + " was issued. Total: " + inv.Totals.TotalAmount.StringFixed(2),
		Data:        map[string]interface{}{"invoice_id": inv.ID, "invoice_number": inv.InvoiceNumber},
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("failed to queue notification", "type", string(req.Type), "error", err)
	}
}
