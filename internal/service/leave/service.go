package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
)

// TxBeginner opens the transaction every balance mutation runs inside.
// *database.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type LeaveServiceImpl struct {
	db        TxBeginner
	leaveRepo leave.LeaveRepository
}

func NewLeaveService(db TxBeginner, leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:        db,
		leaveRepo: leaveRepo,
	}
}

func (s *LeaveServiceImpl) GetBalance(ctx context.Context, organizationID, employeeID string, leaveType leave.LeaveType) (leave.BalanceResponse, error) {
	balance, err := s.leaveRepo.GetBalance(ctx, organizationID, employeeID, leaveType)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return toBalanceResponse(balance), nil
}

// Accrue recomputes the entitled credit total as of a reference date:
// prorated annual quota plus one day per full year since regularization. The
// difference against the stored total lands as an accrual adjustment.
func (s *LeaveServiceImpl) Accrue(ctx context.Context, organizationID string, req leave.AccrueRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	asOf, _ := time.Parse("2006-01-02", req.AsOf)
	var regularizationDate *time.Time
	if req.RegularizationDate != nil {
		d, _ := time.Parse("2006-01-02", *req.RegularizationDate)
		regularizationDate = &d
	}

	entitled := ProratedLeave(req.AnnualQuota, hireDate, asOf).
		Add(decimal.NewFromInt(int64(AnniversaryLeave(regularizationDate, asOf))))

	if _, err := s.leaveRepo.GetBalance(ctx, organizationID, req.EmployeeID, req.LeaveType); err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.BalanceResponse{}, err
		}
		_, err = s.leaveRepo.UpsertBalance(ctx, leave.CreditBalance{
			ID:             uuid.NewString(),
			OrganizationID: organizationID,
			EmployeeID:     req.EmployeeID,
			LeaveType:      req.LeaveType,
		})
		if err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to create leave balance: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := s.leaveRepo.GetBalanceForUpdate(ctx, tx, organizationID, req.EmployeeID, req.LeaveType)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	delta := entitled.Sub(current.Total)
	if delta.IsZero() {
		return toBalanceResponse(current), nil
	}

	current.Total = entitled
	if err := s.leaveRepo.UpdateBalanceTx(ctx, tx, current); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to update leave balance: %w", err)
	}
	_, err = s.leaveRepo.InsertAdjustmentTx(ctx, tx, leave.Adjustment{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		EmployeeID:     req.EmployeeID,
		LeaveType:      req.LeaveType,
		Kind:           leave.AdjustmentAccrual,
		Delta:          delta,
		Reason:         fmt.Sprintf("credit accrual as of %s", req.AsOf),
	})
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to record accrual adjustment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to commit accrual: %w", err)
	}
	return toBalanceResponse(current), nil
}

// AdjustBalance applies a signed manual delta with its mandatory audit
// reason. When the request carries the balance the caller last saw, a
// concurrent mutation since then rejects the adjustment.
func (s *LeaveServiceImpl) AdjustBalance(ctx context.Context, organizationID string, req leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	balance, err := s.leaveRepo.GetBalanceForUpdate(ctx, tx, organizationID, req.EmployeeID, req.LeaveType)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if req.ExpectedBalance != nil && !req.ExpectedBalance.Equal(balance.Balance()) {
		return leave.BalanceResponse{}, leave.ErrBalanceConflict
	}

	newTotal := balance.Total.Add(req.Delta)
	if newTotal.Sub(balance.Used).IsNegative() {
		return leave.BalanceResponse{}, leave.ErrInsufficientBalance
	}

	balance.Total = newTotal
	if err := s.leaveRepo.UpdateBalanceTx(ctx, tx, balance); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to update leave balance: %w", err)
	}
	_, err = s.leaveRepo.InsertAdjustmentTx(ctx, tx, leave.Adjustment{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		EmployeeID:     req.EmployeeID,
		LeaveType:      req.LeaveType,
		Kind:           leave.AdjustmentManual,
		Delta:          req.Delta,
		Reason:         req.Reason,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to record adjustment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to commit adjustment: %w", err)
	}
	return toBalanceResponse(balance), nil
}

// ConvertToCash decrements a balance for payout, bounded by the convertible
// ceiling.
func (s *LeaveServiceImpl) ConvertToCash(ctx context.Context, organizationID string, req leave.ConvertLeaveRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	balance, err := s.leaveRepo.GetBalanceForUpdate(ctx, tx, organizationID, req.EmployeeID, req.LeaveType)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	convertible := ConvertibleDays(balance.Balance())
	if convertible.IsZero() {
		return leave.BalanceResponse{}, leave.ErrNothingToConvert
	}
	if req.Days.GreaterThan(convertible) {
		return leave.BalanceResponse{}, fmt.Errorf("requested %s days, convertible %s: %w", req.Days, convertible, leave.ErrInsufficientBalance)
	}

	balance.Used = balance.Used.Add(req.Days)
	if err := s.leaveRepo.UpdateBalanceTx(ctx, tx, balance); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to update leave balance: %w", err)
	}
	_, err = s.leaveRepo.InsertAdjustmentTx(ctx, tx, leave.Adjustment{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		EmployeeID:     req.EmployeeID,
		LeaveType:      req.LeaveType,
		Kind:           leave.AdjustmentCashConversion,
		Delta:          req.Days.Neg(),
		Reason:         req.Reason,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to record conversion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to commit conversion: %w", err)
	}
	return toBalanceResponse(balance), nil
}

func (s *LeaveServiceImpl) ListAdjustments(ctx context.Context, organizationID, employeeID string, leaveType leave.LeaveType) ([]leave.AdjustmentResponse, error) {
	adjustments, err := s.leaveRepo.ListAdjustments(ctx, organizationID, employeeID, leaveType)
	if err != nil {
		return nil, err
	}
	responses := make([]leave.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		responses = append(responses, leave.AdjustmentResponse{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			LeaveType:  a.LeaveType,
			Kind:       a.Kind,
			Delta:      a.Delta,
			Reason:     a.Reason,
			CreatedBy:  a.CreatedBy,
			CreatedAt:  a.CreatedAt,
		})
	}
	return responses, nil
}

func toBalanceResponse(balance leave.CreditBalance) leave.BalanceResponse {
	remaining := balance.Balance()
	return leave.BalanceResponse{
		EmployeeID:      balance.EmployeeID,
		LeaveType:       balance.LeaveType,
		Total:           balance.Total,
		Used:            balance.Used,
		Balance:         remaining,
		ConvertibleDays: ConvertibleDays(remaining),
	}
}
