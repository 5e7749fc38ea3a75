package invoice

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
)

// LineItem - one billed row. Amount is quantity * rate, tax exclusive.
type LineItem struct {
	ID          string          `json:"id,omitempty"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	HSNSAC      *string         `json:"hsn_sac,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	CGSTAmount  decimal.Decimal `json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `json:"sgst_amount"`
	IGSTAmount  decimal.Decimal `json:"igst_amount"`
}

// Discount is either a flat Amount or, when Amount is zero, a Percent of the
// subtotal.
type Discount struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// Totals - invoice level figures. Only one of the CGST/SGST and IGST groups is
// non-zero.
type Totals struct {
	IsInterState   bool            `json:"is_inter_state"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `json:"igst_amount"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TDSRate        decimal.Decimal `json:"tds_rate"`
	TDSAmount      decimal.Decimal `json:"tds_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
}

// PaymentStatus derives the collection state from the paid amount.
func (t Totals) PaymentStatus() PaymentStatus {
	switch {
	case !t.AmountPaid.IsPositive():
		return PaymentUnpaid
	case t.BalanceDue.IsPositive():
		return PaymentPartiallyPaid
	default:
		return PaymentPaid
	}
}

type Invoice struct {
	ID            string
	CompanyID     string
	InvoiceNumber string
	InstitutionID *string
	CustomerName  string
	CustomerGSTIN *string
	FromStateCode string
	ToStateCode   string
	IssueDate     dateutil.Date
	DueDate       *dateutil.Date
	Items         []LineItem
	Discount      Discount
	Totals        Totals
	Status        Status
	PaymentStatus PaymentStatus
	Notes         *string
	DocumentKey   *string
	CreatedBy     string
	IssuedAt      *time.Time
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recompute refreshes line taxes, totals and payment status from the items,
// discount and the amount already paid.
func (inv *Invoice) Recompute() {
	totals, items := ComputeTotals(inv.Items, inv.FromStateCode, inv.ToStateCode, inv.Discount, inv.Totals.TDSRate, inv.Totals.AmountPaid)
	inv.Items = items
	inv.Totals = totals
	inv.PaymentStatus = totals.PaymentStatus()
}
