package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeOvertimeRequested NotificationType = "overtime_requested"
	TypeOvertimeReviewed  NotificationType = "overtime_reviewed"
	TypeLeaveRecorded     NotificationType = "leave_recorded"
	TypePayslipFinalized  NotificationType = "payslip_finalized"
	TypeInvoiceIssued     NotificationType = "invoice_issued"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
