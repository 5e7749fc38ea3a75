package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// AttendanceRegister renders the month's attendance of every active
	// employee as an .xlsx workbook.
	AttendanceRegister(ctx context.Context, companyID string, req AttendanceRegisterRequest) (File, error)
}
