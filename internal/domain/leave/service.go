package leave

import "context"

type LeaveService interface {
	// Request files a new leave request for the calling user; days is
	// derived from the inclusive date span.
	Request(ctx context.Context, req RequestLeaveRequest) (LeaveResponse, error)

	// UpdateStatus approves or rejects a leave request and records the
	// approver. Transitions are not guarded: a terminal request may be
	// re-decided, matching the behavior this system replaces.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveResponse, error)

	ListMy(ctx context.Context, filter Filter) (ListLeaveResponse, error)
	List(ctx context.Context, filter Filter) (ListLeaveResponse, error)
}
