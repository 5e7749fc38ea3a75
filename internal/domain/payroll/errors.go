package payroll

import "errors"

var (
	ErrSalaryStructureNotFound = errors.New("salary structure not found")
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipAlreadyFinalized = errors.New("payslip already finalized, cannot modify")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrFuturePeriod            = errors.New("cannot generate payslip for a month that has not started")
	ErrAttendanceIncomplete    = errors.New("attendance for the month could not be fully loaded, retry later")
)
