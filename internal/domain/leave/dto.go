package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

type BalanceResponse struct {
	EmployeeID      string          `json:"employee_id"`
	LeaveType       LeaveType       `json:"leave_type"`
	Total           decimal.Decimal `json:"total"`
	Used            decimal.Decimal `json:"used"`
	Balance         decimal.Decimal `json:"balance"`
	ConvertibleDays decimal.Decimal `json:"convertible_days"`
}

// AccrueRequest recomputes an employee's entitled credits for one leave type
// as of a reference date.
type AccrueRequest struct {
	EmployeeID         string          `json:"employee_id"`
	LeaveType          LeaveType       `json:"leave_type"`
	AnnualQuota        decimal.Decimal `json:"annual_quota"`
	HireDate           string          `json:"hire_date"` // "2006-01-02"
	RegularizationDate *string         `json:"regularization_date,omitempty"`
	AsOf               string          `json:"as_of"`
}

func (r *AccrueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(string(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	if r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "annual_quota", Message: "must be non-negative"})
	}
	if !validator.IsValidDate(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a YYYY-MM-DD date"})
	}
	if r.RegularizationDate != nil && !validator.IsValidDate(*r.RegularizationDate) {
		errs = append(errs, validator.ValidationError{Field: "regularization_date", Message: "must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidDate(r.AsOf) {
		errs = append(errs, validator.ValidationError{Field: "as_of", Message: "must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdjustBalanceRequest applies a signed manual delta to an employee's credit
// total. ExpectedBalance, when present, is the balance the caller last saw;
// the adjustment is rejected if a concurrent mutation changed it.
type AdjustBalanceRequest struct {
	EmployeeID      string           `json:"employee_id"`
	LeaveType       LeaveType        `json:"leave_type"`
	Delta           decimal.Decimal  `json:"delta"`
	Reason          string           `json:"reason"`
	ExpectedBalance *decimal.Decimal `json:"expected_balance,omitempty"`
	CreatedBy       *string          `json:"-"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(string(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	if r.Delta.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "delta", Message: "must be non-zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConvertLeaveRequest converts part of a balance to cash. Days must not
// exceed the convertible ceiling.
type ConvertLeaveRequest struct {
	EmployeeID string          `json:"employee_id"`
	LeaveType  LeaveType       `json:"leave_type"`
	Days       decimal.Decimal `json:"days"`
	Reason     string          `json:"reason"`
	CreatedBy  *string         `json:"-"`
}

func (r *ConvertLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(string(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	LeaveType  LeaveType       `json:"leave_type"`
	Kind       AdjustmentKind  `json:"kind"`
	Delta      decimal.Decimal `json:"delta"`
	Reason     string          `json:"reason"`
	CreatedBy  *string         `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
