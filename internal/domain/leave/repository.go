package leave

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// LeaveRepository is the leave source consumed by the payroll engine and the
// leave credit service. Mutations run inside a caller-owned transaction so the
// balance re-check and the write are atomic.
type LeaveRepository interface {
	GetBalance(ctx context.Context, organizationID, employeeID string, leaveType LeaveType) (CreditBalance, error)
	GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, organizationID, employeeID string, leaveType LeaveType) (CreditBalance, error)
	UpsertBalance(ctx context.Context, balance CreditBalance) (CreditBalance, error)
	UpdateBalanceTx(ctx context.Context, tx pgx.Tx, balance CreditBalance) error
	InsertAdjustmentTx(ctx context.Context, tx pgx.Tx, adjustment Adjustment) (Adjustment, error)
	ListAdjustments(ctx context.Context, organizationID, employeeID string, leaveType LeaveType) ([]Adjustment, error)
}
