package invoice

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

// InvoiceRepository defines data access methods for invoices.
// All methods include companyID parameter to prevent cross-company data access attacks.
type InvoiceRepository interface {
	// Create inserts the header and its line items.
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, companyID, id string) (Invoice, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]Invoice, error)
	// Update persists header fields: totals, statuses, document key and timestamps.
	Update(ctx context.Context, inv *Invoice) error
}

type ListFilter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	InstitutionID *string
	Range         *dateutil.Range
}
