package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

type UpsertProfileRequest struct {
	EmployeeID  string          `json:"employee_id"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	SalaryType  SalaryType      `json:"salary_type"`

	RegularHolidayPercent *decimal.Decimal `json:"regular_holiday_percent,omitempty"`
	SpecialHolidayPercent *decimal.Decimal `json:"special_holiday_percent,omitempty"`

	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`
}

func (r *UpsertProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.Allowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowance", Message: "must be non-negative"})
	}
	if !r.SalaryType.Valid() {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be one of monthly, daily, hourly"})
	}
	if r.RegularHolidayPercent != nil && r.RegularHolidayPercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "regular_holiday_percent", Message: "must be non-negative"})
	}
	if r.SpecialHolidayPercent != nil && r.SpecialHolidayPercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "special_holiday_percent", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	SalaryType  SalaryType      `json:"salary_type"`

	RegularHolidayPercent *decimal.Decimal `json:"regular_holiday_percent,omitempty"`
	SpecialHolidayPercent *decimal.Decimal `json:"special_holiday_percent,omitempty"`

	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`
}
