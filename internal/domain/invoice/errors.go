package invoice

import "errors"

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceNumberExists   = errors.New("invoice number already exists")
	ErrInvoiceCancelled      = errors.New("invoice is cancelled")
	ErrInvoiceAlreadyIssued  = errors.New("invoice is already issued")
	ErrInvoiceNotIssued      = errors.New("payments can only be recorded on an issued invoice")
	ErrPaymentExceedsBalance = errors.New("payment exceeds balance due")
	ErrInvoicePaid           = errors.New("a paid invoice cannot be cancelled")
)
