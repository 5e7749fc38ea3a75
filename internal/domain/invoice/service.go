package invoice

import "context"

type InvoiceService interface {
	// Preview prices a draft without persisting it.
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	Create(ctx context.Context, companyID, createdBy string, req CreateInvoiceRequest) (InvoiceResponse, error)
	Get(ctx context.Context, companyID, id string) (InvoiceResponse, error)
	List(ctx context.Context, companyID string, req ListInvoicesRequest) ([]InvoiceResponse, error)
	RecordPayment(ctx context.Context, companyID, id string, req RecordPaymentRequest) (InvoiceResponse, error)
	Issue(ctx context.Context, companyID, issuedBy, id string) (InvoiceResponse, error)
	Cancel(ctx context.Context, companyID, id string) (InvoiceResponse, error)
}
