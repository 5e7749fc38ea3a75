package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type InvoiceHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	RecordPayment(w http.ResponseWriter, r *http.Request)
	Issue(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &invoiceHandlerImpl{
		invoiceService: invoiceService,
	}
}

// Preview handles POST /invoices/preview
func (h *invoiceHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req invoice.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Preview invoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	preview, err := h.invoiceService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// Create handles POST /invoices
func (h *invoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req invoice.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create invoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inv, err := h.invoiceService.Create(r.Context(), p.CompanyID, p.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", inv)
}

// List handles GET /invoices
func (h *invoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := invoice.ListInvoicesRequest{
		Status:        q.Get("status"),
		PaymentStatus: q.Get("payment_status"),
		InstitutionID: q.Get("institution_id"),
		StartDate:     q.Get("start_date"),
		EndDate:       q.Get("end_date"),
	}

	invoices, err := h.invoiceService.List(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Get handles GET /invoices/{id}
func (h *invoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Get(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inv)
}

// RecordPayment handles POST /invoices/{id}/payments
func (h *invoiceHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req invoice.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inv, err := h.invoiceService.RecordPayment(r.Context(), p.CompanyID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded", inv)
}

// Issue handles POST /invoices/{id}/issue
func (h *invoiceHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Issue(r.Context(), p.CompanyID, p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice issued", inv)
}

// Cancel handles POST /invoices/{id}/cancel
func (h *invoiceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Cancel(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice cancelled", inv)
}
