package leave

import "context"

// LeaveService manages leave credit balances: accrual, manual adjustment,
// cash conversion, and the audit trail behind them.
type LeaveService interface {
	GetBalance(ctx context.Context, organizationID, employeeID string, leaveType LeaveType) (BalanceResponse, error)
	Accrue(ctx context.Context, organizationID string, req AccrueRequest) (BalanceResponse, error)
	AdjustBalance(ctx context.Context, organizationID string, req AdjustBalanceRequest) (BalanceResponse, error)
	ConvertToCash(ctx context.Context, organizationID string, req ConvertLeaveRequest) (BalanceResponse, error)
	ListAdjustments(ctx context.Context, organizationID, employeeID string, leaveType LeaveType) ([]AdjustmentResponse, error)
}
