package postgresql

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

var invoiceColumns = []string{
	"id", "company_id", "invoice_number", "institution_id", "customer_name", "customer_gstin",
	"from_state_code", "to_state_code", "issue_date", "due_date",
	"discount_percent", "discount_flat",
	"is_inter_state", "sub_total", "discount_amount", "cgst_amount", "sgst_amount", "igst_amount",
	"total_tax", "tds_rate", "tds_amount", "total_amount", "amount_paid", "balance_due",
	"status", "payment_status", "notes", "document_key", "created_by",
	"issued_at", "cancelled_at", "created_at", "updated_at",
}

var invoiceItemColumns = []string{
	"id", "invoice_id", "position", "description", "hsn_sac", "quantity", "rate", "amount",
	"gst_rate", "cgst_amount", "sgst_amount", "igst_amount",
}

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var (
		inv     invoice.Invoice
		dueDate *time.Time
	)
	t := &inv.Totals
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.InvoiceNumber, &inv.InstitutionID, &inv.CustomerName, &inv.CustomerGSTIN,
		&inv.FromStateCode, &inv.ToStateCode, scanDate(&inv.IssueDate), &dueDate,
		&inv.Discount.Percent, &inv.Discount.Amount,
		&t.IsInterState, &t.SubTotal, &t.DiscountAmount, &t.CGSTAmount, &t.SGSTAmount, &t.IGSTAmount,
		&t.TotalTax, &t.TDSRate, &t.TDSAmount, &t.TotalAmount, &t.AmountPaid, &t.BalanceDue,
		&inv.Status, &inv.PaymentStatus, &inv.Notes, &inv.DocumentKey, &inv.CreatedBy,
		&inv.IssuedAt, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if dueDate != nil {
		d := dateutil.FromTime(*dueDate)
		inv.DueDate = &d
	}
	return inv, err
}

type invoiceItemRow struct {
	invoiceID string
	item      invoice.LineItem
}

func scanInvoiceItem(row pgx.Row) (invoiceItemRow, error) {
	var r invoiceItemRow
	it := &r.item
	err := row.Scan(
		&it.ID, &r.invoiceID, &it.Position, &it.Description, &it.HSNSAC, &it.Quantity, &it.Rate, &it.Amount,
		&it.GSTRate, &it.CGSTAmount, &it.SGSTAmount, &it.IGSTAmount,
	)
	return r, err
}

// Create implements invoice.InvoiceRepository. Call it inside a transaction
// so the header and its items are stored together.
func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	var dueDate *time.Time
	if inv.DueDate != nil {
		t := inv.DueDate.Time()
		dueDate = &t
	}
	t := inv.Totals

	header := psql.Insert("invoices").
		Columns(invoiceColumns[1:29]...).
		Values(
			inv.CompanyID, inv.InvoiceNumber, inv.InstitutionID, inv.CustomerName, inv.CustomerGSTIN,
			inv.FromStateCode, inv.ToStateCode, inv.IssueDate.Time(), dueDate,
			inv.Discount.Percent, inv.Discount.Amount,
			t.IsInterState, t.SubTotal, t.DiscountAmount, t.CGSTAmount, t.SGSTAmount, t.IGSTAmount,
			t.TotalTax, t.TDSRate, t.TDSAmount, t.TotalAmount, t.AmountPaid, t.BalanceDue,
			string(inv.Status), string(inv.PaymentStatus), inv.Notes, inv.DocumentKey, inv.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at")

	query, args, err := header.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return invoice.ErrInvoiceNumberExists
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if len(inv.Items) == 0 {
		return nil
	}

	items := psql.Insert("invoice_items").Columns(invoiceItemColumns[1:]...)
	for _, it := range inv.Items {
		items = items.Values(
			inv.ID, it.Position, it.Description, it.HSNSAC, it.Quantity, it.Rate, it.Amount,
			it.GSTRate, it.CGSTAmount, it.SGSTAmount, it.IGSTAmount,
		)
	}
	items = items.Suffix("RETURNING " + joinColumns(invoiceItemColumns))

	saved, err := queryRows(ctx, q, items, scanInvoiceItem)
	if err != nil {
		return fmt.Errorf("failed to create invoice items: %w", err)
	}
	inv.Items = make([]invoice.LineItem, len(saved))
	for i, row := range saved {
		inv.Items[i] = row.item
	}
	return nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepository) GetByID(ctx context.Context, companyID, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(invoiceColumns...).
		From("invoices").
		Where(sq.Eq{"id": id, "company_id": companyID})

	inv, err := queryOne(ctx, q, b, scanInvoice, invoice.ErrInvoiceNotFound)
	if err != nil {
		return invoice.Invoice{}, err
	}

	invoices := []invoice.Invoice{inv}
	if err := r.attachItems(ctx, q, invoices); err != nil {
		return invoice.Invoice{}, err
	}
	return invoices[0], nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepository) List(ctx context.Context, companyID string, filter invoice.ListFilter) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	eq := sq.Eq{"company_id": companyID}
	if filter.Status != nil {
		eq["status"] = string(*filter.Status)
	}
	if filter.PaymentStatus != nil {
		eq["payment_status"] = string(*filter.PaymentStatus)
	}
	if filter.InstitutionID != nil {
		eq["institution_id"] = *filter.InstitutionID
	}

	b := psql.Select(invoiceColumns...).
		From("invoices").
		Where(eq).
		OrderBy("issue_date DESC", "invoice_number DESC")
	if filter.Range != nil {
		b = b.Where(within("issue_date", *filter.Range))
	}

	invoices, err := queryRows(ctx, q, b, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if err := r.attachItems(ctx, q, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Update implements invoice.InvoiceRepository.
func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	t := inv.Totals
	patch := map[string]interface{}{
		"discount_amount": t.DiscountAmount,
		"total_tax":       t.TotalTax,
		"tds_amount":      t.TDSAmount,
		"total_amount":    t.TotalAmount,
		"amount_paid":     t.AmountPaid,
		"balance_due":     t.BalanceDue,
		"status":          string(inv.Status),
		"payment_status":  string(inv.PaymentStatus),
		"document_key":    inv.DocumentKey,
		"issued_at":       inv.IssuedAt,
		"cancelled_at":    inv.CancelledAt,
	}
	if err := updateByID(ctx, q, "invoices", inv.CompanyID, inv.ID, patch, invoice.ErrInvoiceNotFound); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) attachItems(ctx context.Context, q database.Querier, invoices []invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]string, len(invoices))
	index := make(map[string]int, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
		index[inv.ID] = i
		invoices[i].Items = make([]invoice.LineItem, 0)
	}

	b := psql.Select(invoiceItemColumns...).
		From("invoice_items").
		Where(sq.Eq{"invoice_id": ids}).
		OrderBy("invoice_id", "position")

	rows, err := queryRows(ctx, q, b, scanInvoiceItem)
	if err != nil {
		return fmt.Errorf("failed to load invoice items: %w", err)
	}
	for _, row := range rows {
		if i, ok := index[row.invoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, row.item)
		}
	}
	return nil
}
