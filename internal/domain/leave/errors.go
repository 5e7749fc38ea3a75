package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveNotFound            = errors.New("leave application not found")
	ErrLeaveQuotaNotFound       = errors.New("leave quota not found")
	ErrInvalidDaySplit          = errors.New("paid_days + lop_days must equal the leave span")
	ErrOverlappingLeave         = errors.New("employee already has approved leave in this period")
	ErrInconsistentLeaveOverlap = errors.New("approved leave applications overlap")
	ErrQuotaBelowUsage          = errors.New("total quota cannot be lower than used quota")
)

// OverlapError carries the dates on which approved applications collided.
type OverlapError struct {
	Overlaps []Overlap
}

func (e *OverlapError) Error() string {
	if len(e.Overlaps) == 0 {
		return ErrInconsistentLeaveOverlap.Error()
	}
	first := e.Overlaps[0]
	return fmt.Sprintf("%s: %d day(s), first on %s (application %s overrides %s)",
		ErrInconsistentLeaveOverlap, len(e.Overlaps), first.Date,
		first.KeptApplicationID, first.OverwrittenApplicationID)
}

func (e *OverlapError) Unwrap() error {
	return ErrInconsistentLeaveOverlap
}
