package leave

import (
	"context"
)

type LeaveService interface {
	// CreateApproved records an approved leave, splitting its span into paid
	// and LOP days against the employee's remaining quota.
	CreateApproved(ctx context.Context, companyID, approverID string, req CreateLeaveRequest) (ApplicationResponse, error)
	// Correct replaces an application: the old one is deleted and its quota
	// restored before the new one is split and stored.
	Correct(ctx context.Context, companyID, approverID, id string, req CreateLeaveRequest) (ApplicationResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Get(ctx context.Context, companyID, id string) (ApplicationResponse, error)
	List(ctx context.Context, companyID string, req ListLeaveRequest) ([]ApplicationResponse, error)

	// Quota
	GetQuotas(ctx context.Context, companyID, employeeID string, year int) ([]LeaveQuotaResponse, error)
	UpsertQuota(ctx context.Context, companyID string, req UpsertQuotaRequest) (LeaveQuotaResponse, error)
}
