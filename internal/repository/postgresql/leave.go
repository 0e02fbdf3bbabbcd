package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const balanceColumns = `
	id, organization_id, employee_id, leave_type, total, used, created_at, updated_at
`

func (r *leaveRepository) GetBalance(ctx context.Context, organizationID, employeeID string, leaveType leave.LeaveType) (leave.CreditBalance, error) {
	q := GetQuerier(ctx, r.db)

	balance, err := scanBalance(q.QueryRow(ctx, `
		SELECT `+balanceColumns+`
		FROM leave_balances
		WHERE organization_id = $1 AND employee_id = $2 AND leave_type = $3
	`, organizationID, employeeID, leaveType))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.CreditBalance{}, leave.ErrBalanceNotFound
		}
		return leave.CreditBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return balance, nil
}

func (r *leaveRepository) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, organizationID, employeeID string, leaveType leave.LeaveType) (leave.CreditBalance, error) {
	balance, err := scanBalance(tx.QueryRow(ctx, `
		SELECT `+balanceColumns+`
		FROM leave_balances
		WHERE organization_id = $1 AND employee_id = $2 AND leave_type = $3
		FOR UPDATE
	`, organizationID, employeeID, leaveType))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.CreditBalance{}, leave.ErrBalanceNotFound
		}
		return leave.CreditBalance{}, fmt.Errorf("failed to lock leave balance: %w", err)
	}
	return balance, nil
}

func (r *leaveRepository) UpsertBalance(ctx context.Context, balance leave.CreditBalance) (leave.CreditBalance, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanBalance(q.QueryRow(ctx, `
		INSERT INTO leave_balances (id, organization_id, employee_id, leave_type, total, used)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (organization_id, employee_id, leave_type) DO UPDATE SET
			total = EXCLUDED.total,
			used = EXCLUDED.used,
			updated_at = NOW()
		RETURNING `+balanceColumns,
		balance.ID, balance.OrganizationID, balance.EmployeeID, balance.LeaveType,
		balance.Total, balance.Used,
	))
	if err != nil {
		return leave.CreditBalance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return saved, nil
}

func (r *leaveRepository) UpdateBalanceTx(ctx context.Context, tx pgx.Tx, balance leave.CreditBalance) error {
	tag, err := tx.Exec(ctx, `
		UPDATE leave_balances SET total = $1, used = $2, updated_at = NOW()
		WHERE organization_id = $3 AND employee_id = $4 AND leave_type = $5
	`, balance.Total, balance.Used, balance.OrganizationID, balance.EmployeeID, balance.LeaveType)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

func (r *leaveRepository) InsertAdjustmentTx(ctx context.Context, tx pgx.Tx, adjustment leave.Adjustment) (leave.Adjustment, error) {
	var a leave.Adjustment
	err := tx.QueryRow(ctx, `
		INSERT INTO leave_adjustments (id, organization_id, employee_id, leave_type, kind, delta, reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, organization_id, employee_id, leave_type, kind, delta, reason, created_by, created_at
	`,
		adjustment.ID, adjustment.OrganizationID, adjustment.EmployeeID, adjustment.LeaveType,
		adjustment.Kind, adjustment.Delta, adjustment.Reason, adjustment.CreatedBy,
	).Scan(
		&a.ID, &a.OrganizationID, &a.EmployeeID, &a.LeaveType,
		&a.Kind, &a.Delta, &a.Reason, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		return leave.Adjustment{}, fmt.Errorf("failed to insert leave adjustment: %w", err)
	}
	return a, nil
}

func (r *leaveRepository) ListAdjustments(ctx context.Context, organizationID, employeeID string, leaveType leave.LeaveType) ([]leave.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, organization_id, employee_id, leave_type, kind, delta, reason, created_by, created_at
		FROM leave_adjustments
		WHERE organization_id = $1 AND employee_id = $2 AND leave_type = $3
		ORDER BY created_at DESC
	`, organizationID, employeeID, leaveType)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []leave.Adjustment
	for rows.Next() {
		var a leave.Adjustment
		err := rows.Scan(
			&a.ID, &a.OrganizationID, &a.EmployeeID, &a.LeaveType,
			&a.Kind, &a.Delta, &a.Reason, &a.CreatedBy, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

func scanBalance(row pgx.Row) (leave.CreditBalance, error) {
	var b leave.CreditBalance
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.EmployeeID, &b.LeaveType,
		&b.Total, &b.Used, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.CreditBalance{}, err
	}
	return b, nil
}
