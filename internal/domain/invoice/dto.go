package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const maxLineItems = 200

type LineItemInput struct {
	Description string           `json:"description"`
	HSNSAC      *string          `json:"hsn_sac,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	GSTRate     *decimal.Decimal `json:"gst_rate,omitempty"`
}

// PreviewRequest carries everything the totals depend on.
type PreviewRequest struct {
	FromStateCode string          `json:"from_state_code"`
	ToStateCode   string          `json:"to_state_code"`
	Items         []LineItemInput `json:"items"`
	Discount      Discount        `json:"discount"`
	TDSRate       decimal.Decimal `json:"tds_rate"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors
	r.validateInto(&errs)
	return errs.Err()
}

func (r *PreviewRequest) validateInto(errs *validator.ValidationErrors) {
	if !validator.IsValidStateCode(r.FromStateCode) {
		errs.Add("from_state_code", "from_state_code must be a valid two digit state code")
	}
	if !validator.IsValidStateCode(r.ToStateCode) {
		errs.Add("to_state_code", "to_state_code must be a valid two digit state code")
	}

	if len(r.Items) == 0 {
		errs.Add("items", "at least one line item is required")
	}
	if len(r.Items) > maxLineItems {
		errs.Add("items", "an invoice must not exceed "+strconv.Itoa(maxLineItems)+" line items")
	}
	for i, it := range r.Items {
		key := "items[" + strconv.Itoa(i) + "]"
		if validator.IsEmpty(it.Description) {
			errs.Add(key+".description", "description is required")
		}
		if !it.Quantity.IsPositive() {
			errs.Add(key+".quantity", "quantity must be greater than zero")
		}
		if it.Rate.IsNegative() {
			errs.Add(key+".rate", "rate must be non-negative")
		}
		if it.GSTRate != nil && (it.GSTRate.IsNegative() || it.GSTRate.GreaterThan(hundred)) {
			errs.Add(key+".gst_rate", "gst_rate must be between 0 and 100")
		}
	}

	if r.Discount.Amount.IsNegative() {
		errs.Add("discount.amount", "must be non-negative")
	}
	if r.Discount.Percent.IsNegative() || r.Discount.Percent.GreaterThan(hundred) {
		errs.Add("discount.percent", "must be between 0 and 100")
	}
	if r.TDSRate.IsNegative() || r.TDSRate.GreaterThan(hundred) {
		errs.Add("tds_rate", "tds_rate must be between 0 and 100")
	}
}

// LineItems converts the inputs, filling in defaultGSTRate where a line has none.
func (r *PreviewRequest) LineItems(defaultGSTRate decimal.Decimal) []LineItem {
	items := make([]LineItem, len(r.Items))
	for i, in := range r.Items {
		rate := defaultGSTRate
		if in.GSTRate != nil {
			rate = *in.GSTRate
		}
		items[i] = LineItem{
			Position:    i + 1,
			Description: strings.TrimSpace(in.Description),
			HSNSAC:      in.HSNSAC,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			GSTRate:     rate,
		}
	}
	return items
}

type PreviewResponse struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

type CreateInvoiceRequest struct {
	PreviewRequest
	InstitutionID *string `json:"institution_id,omitempty"`
	CustomerName  string  `json:"customer_name"`
	CustomerGSTIN *string `json:"customer_gstin,omitempty"`
	IssueDate     string  `json:"issue_date"`
	DueDate       *string `json:"due_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	issueDate dateutil.Date
	dueDate   *dateutil.Date
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors
	r.PreviewRequest.validateInto(&errs)

	if r.InstitutionID != nil && !validator.IsValidUUID(*r.InstitutionID) {
		errs.Add("institution_id", "institution_id must be a valid UUID")
	}

	r.CustomerName = strings.TrimSpace(r.CustomerName)
	if r.CustomerName == "" {
		errs.Add("customer_name", "customer_name is required")
	}
	if len(r.CustomerName) > 255 {
		errs.Add("customer_name", "customer_name must not exceed 255 characters")
	}

	if r.CustomerGSTIN != nil {
		gstin := strings.ToUpper(strings.TrimSpace(*r.CustomerGSTIN))
		r.CustomerGSTIN = &gstin
		switch {
		case !validator.IsValidGSTIN(gstin):
			errs.Add("customer_gstin", "customer_gstin is not a valid GSTIN")
		case validator.GSTINStateCode(gstin) != r.ToStateCode:
			errs.Add("customer_gstin", "customer_gstin state does not match to_state_code")
		}
	}

	issue, ok := validator.IsValidDate(r.IssueDate)
	if !ok {
		errs.Add("issue_date", "issue_date must be in YYYY-MM-DD format")
	}
	r.issueDate = issue

	if r.DueDate != nil {
		due, okDue := validator.IsValidDate(*r.DueDate)
		switch {
		case !okDue:
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		case ok && due.Before(issue):
			errs.Add("due_date", "due_date must not be before issue_date")
		default:
			r.dueDate = &due
		}
	}

	if r.Notes != nil && len(*r.Notes) > 2000 {
		errs.Add("notes", "notes must not exceed 2000 characters")
	}

	return errs.Err()
}

// ToEntity builds an unpriced draft; call Recompute before persisting.
func (r *CreateInvoiceRequest) ToEntity(companyID, createdBy string, defaultGSTRate decimal.Decimal) Invoice {
	return Invoice{
		CompanyID:     companyID,
		InstitutionID: r.InstitutionID,
		CustomerName:  r.CustomerName,
		CustomerGSTIN: r.CustomerGSTIN,
		FromStateCode: r.FromStateCode,
		ToStateCode:   r.ToStateCode,
		IssueDate:     r.issueDate,
		DueDate:       r.dueDate,
		Items:         r.LineItems(defaultGSTRate),
		Discount:      r.Discount,
		Totals:        Totals{TDSRate: r.TDSRate, AmountPaid: decimal.Zero},
		Status:        StatusDraft,
		Notes:         r.Notes,
		CreatedBy:     createdBy,
	}
}

type ListInvoicesRequest struct {
	Status        string
	PaymentStatus string
	InstitutionID string
	StartDate     string
	EndDate       string

	rng *dateutil.Range
}

func (r *ListInvoicesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != "" && !validator.IsInSlice(r.Status, []string{string(StatusDraft), string(StatusIssued), string(StatusCancelled)}) {
		errs.Add("status", "status must be one of: draft, issued, cancelled")
	}
	if r.PaymentStatus != "" && !validator.IsInSlice(r.PaymentStatus, []string{string(PaymentUnpaid), string(PaymentPartiallyPaid), string(PaymentPaid)}) {
		errs.Add("payment_status", "payment_status must be one of: unpaid, partially_paid, paid")
	}
	if r.InstitutionID != "" && !validator.IsValidUUID(r.InstitutionID) {
		errs.Add("institution_id", "institution_id must be a valid UUID")
	}
	if (r.StartDate == "") != (r.EndDate == "") {
		errs.Add("start_date", "start_date and end_date must be given together")
	} else if r.StartDate != "" {
		start, ok1 := validator.IsValidDate(r.StartDate)
		end, ok2 := validator.IsValidDate(r.EndDate)
		if !ok1 || !ok2 {
			errs.Add("start_date", "dates must be in YYYY-MM-DD format")
		} else if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else {
			r.rng = &dateutil.Range{Start: start, End: end}
		}
	}

	return errs.Err()
}

func (r *ListInvoicesRequest) ToFilter() ListFilter {
	var f ListFilter
	if r.Status != "" {
		s := Status(r.Status)
		f.Status = &s
	}
	if r.PaymentStatus != "" {
		ps := PaymentStatus(r.PaymentStatus)
		f.PaymentStatus = &ps
	}
	if r.InstitutionID != "" {
		f.InstitutionID = &r.InstitutionID
	}
	f.Range = r.rng
	return f
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Amount.IsPositive() {
		errs.Add("amount", "amount must be greater than zero")
	}
	return errs.Err()
}

type InvoiceResponse struct {
	ID            string         `json:"id"`
	InvoiceNumber string         `json:"invoice_number"`
	InstitutionID *string        `json:"institution_id,omitempty"`
	CustomerName  string         `json:"customer_name"`
	CustomerGSTIN *string        `json:"customer_gstin,omitempty"`
	FromStateCode string         `json:"from_state_code"`
	ToStateCode   string         `json:"to_state_code"`
	IssueDate     dateutil.Date  `json:"issue_date"`
	DueDate       *dateutil.Date `json:"due_date,omitempty"`
	Items         []LineItem     `json:"items"`
	Discount      Discount       `json:"discount"`
	Totals        Totals         `json:"totals"`
	Status        Status         `json:"status"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	Notes         *string        `json:"notes,omitempty"`
	DocumentURL   *string        `json:"document_url,omitempty"`
	IssuedAt      *time.Time     `json:"issued_at,omitempty"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func ToInvoiceResponse(inv Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InstitutionID: inv.InstitutionID,
		CustomerName:  inv.CustomerName,
		CustomerGSTIN: inv.CustomerGSTIN,
		FromStateCode: inv.FromStateCode,
		ToStateCode:   inv.ToStateCode,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Items:         inv.Items,
		Discount:      inv.Discount,
		Totals:        inv.Totals,
		Status:        inv.Status,
		PaymentStatus: inv.PaymentStatus,
		Notes:         inv.Notes,
		IssuedAt:      inv.IssuedAt,
		CancelledAt:   inv.CancelledAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
