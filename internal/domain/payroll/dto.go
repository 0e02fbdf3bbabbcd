package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	ID                            string          `json:"id"`
	OrganizationID                string          `json:"organization_id"`
	NightDiffPercent              decimal.Decimal `json:"night_diff_percent"`
	RegularHolidayPercent         decimal.Decimal `json:"regular_holiday_percent"`
	SpecialHolidayPercent         decimal.Decimal `json:"special_holiday_percent"`
	OvertimeRegularPercent        decimal.Decimal `json:"overtime_regular_percent"`
	OvertimeRestDayPercent        decimal.Decimal `json:"overtime_rest_day_percent"`
	OvertimeRegularHolidayPercent decimal.Decimal `json:"overtime_regular_holiday_percent"`
	OvertimeSpecialHolidayPercent decimal.Decimal `json:"overtime_special_holiday_percent"`
	AllowanceInDailyRate          bool            `json:"allowance_in_daily_rate"`
	WorkingDaysPerYear            int             `json:"working_days_per_year"`
}

type UpdateSettingsRequest struct {
	NightDiffPercent              *decimal.Decimal `json:"night_diff_percent,omitempty"`
	RegularHolidayPercent         *decimal.Decimal `json:"regular_holiday_percent,omitempty"`
	SpecialHolidayPercent         *decimal.Decimal `json:"special_holiday_percent,omitempty"`
	OvertimeRegularPercent        *decimal.Decimal `json:"overtime_regular_percent,omitempty"`
	OvertimeRestDayPercent        *decimal.Decimal `json:"overtime_rest_day_percent,omitempty"`
	OvertimeRegularHolidayPercent *decimal.Decimal `json:"overtime_regular_holiday_percent,omitempty"`
	OvertimeSpecialHolidayPercent *decimal.Decimal `json:"overtime_special_holiday_percent,omitempty"`
	AllowanceInDailyRate          *bool            `json:"allowance_in_daily_rate,omitempty"`
	WorkingDaysPerYear            *int             `json:"working_days_per_year,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	percents := map[string]*decimal.Decimal{
		"night_diff_percent":               r.NightDiffPercent,
		"regular_holiday_percent":          r.RegularHolidayPercent,
		"special_holiday_percent":          r.SpecialHolidayPercent,
		"overtime_regular_percent":         r.OvertimeRegularPercent,
		"overtime_rest_day_percent":        r.OvertimeRestDayPercent,
		"overtime_regular_holiday_percent": r.OvertimeRegularHolidayPercent,
		"overtime_special_holiday_percent": r.OvertimeSpecialHolidayPercent,
	}
	for field, value := range percents {
		if value != nil && value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if r.WorkingDaysPerYear != nil && *r.WorkingDaysPerYear <= 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_year", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	PeriodStart       string                       `json:"period_start"` // "2006-01-02"
	PeriodEnd         string                       `json:"period_end"`
	EmployeeIDs       []string                     `json:"employee_ids"`
	DeductionsEnabled *bool                        `json:"deductions_enabled,omitempty"` // default true
	NightDiffPercent  *decimal.Decimal             `json:"night_diff_percent,omitempty"`
	Overrides         map[string]EmployeeOverrides `json:"overrides,omitempty"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.PeriodStart) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidDate(r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a YYYY-MM-DD date"})
	}
	if validator.IsValidDate(r.PeriodStart) && validator.IsValidDate(r.PeriodEnd) {
		start, _ := time.Parse("2006-01-02", r.PeriodStart)
		end, _ := time.Parse("2006-01-02", r.PeriodEnd)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
		}
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "is required"})
	}
	if r.NightDiffPercent != nil && r.NightDiffPercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "night_diff_percent", Message: "must be non-negative"})
	}
	for employeeID, overrides := range r.Overrides {
		for _, d := range overrides.Deductions {
			if validator.IsEmpty(d.Name) {
				errs = append(errs, validator.ValidationError{Field: "overrides." + employeeID + ".deductions", Message: "name is required"})
			}
		}
		for _, scheme := range schemeKeys(overrides.Schemes) {
			o := overrides.Schemes[scheme]
			if o.Frequency != "" && o.Frequency != statutory.FrequencyFull && o.Frequency != statutory.FrequencyHalf {
				errs = append(errs, validator.ValidationError{Field: "overrides." + employeeID + ".schemes." + string(scheme), Message: "frequency must be 'full' or 'half'"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func schemeKeys(m map[statutory.Scheme]SchemeOverride) []statutory.Scheme {
	keys := make([]statutory.Scheme, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

type TransitionRunRequest struct {
	Status string `json:"status"`
}

func (r *TransitionRunRequest) Validate() error {
	if !RunStatus(r.Status).Valid() {
		return validator.ValidationErrors{{Field: "status", Message: "must be one of draft, finalized, paid, archived, cancelled"}}
	}
	return nil
}

type RunResponse struct {
	ID                string           `json:"id"`
	OrganizationID    string           `json:"organization_id"`
	PeriodStart       string           `json:"period_start"`
	PeriodEnd         string           `json:"period_end"`
	PeriodLabel       string           `json:"period_label"`
	EmployeeIDs       []string         `json:"employee_ids"`
	DeductionsEnabled bool             `json:"deductions_enabled"`
	NightDiffPercent  *decimal.Decimal `json:"night_diff_percent,omitempty"`
	Status            string           `json:"status"`
}

// ========== PAYSLIP DTOs ==========

type UpdatePayslipRequest struct {
	ID                  string           `json:"-"`
	Deductions          []LineItem       `json:"deductions,omitempty"`
	Incentives          []LineItem       `json:"incentives,omitempty"`
	NonTaxableAllowance *decimal.Decimal `json:"non_taxable_allowance,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, d := range r.Deductions {
		if validator.IsEmpty(d.Name) {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "name is required"})
		}
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "amount must be non-negative"})
		}
	}
	for _, i := range r.Incentives {
		if validator.IsEmpty(i.Name) {
			errs = append(errs, validator.ValidationError{Field: "incentives", Message: "name is required"})
		}
		if i.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "incentives", Message: "amount must be non-negative"})
		}
	}
	if r.NonTaxableAllowance != nil && r.NonTaxableAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "non_taxable_allowance", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID                  string          `json:"id"`
	RunID               string          `json:"run_id"`
	EmployeeID          string          `json:"employee_id"`
	PeriodLabel         string          `json:"period_label"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	Deductions          []LineItem      `json:"deductions"`
	Incentives          []LineItem      `json:"incentives"`
	NonTaxableAllowance decimal.Decimal `json:"non_taxable_allowance"`
	NetPay              decimal.Decimal `json:"net_pay"`
	Facts               PayFacts        `json:"facts"`
}
