package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
)

// Settings is the per-organization payroll configuration. Every percent field
// is stored and displayed as a whole number (125 means 125%); Normalize is the
// single place they become fractions.
type Settings struct {
	ID             string
	OrganizationID string

	NightDiffPercent              decimal.Decimal
	RegularHolidayPercent         decimal.Decimal
	SpecialHolidayPercent         decimal.Decimal
	OvertimeRegularPercent        decimal.Decimal
	OvertimeRestDayPercent        decimal.Decimal
	OvertimeRegularHolidayPercent decimal.Decimal
	OvertimeSpecialHolidayPercent decimal.Decimal

	AllowanceInDailyRate bool
	WorkingDaysPerYear   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings returns the configuration applied before an organization
// saves its own.
func DefaultSettings(organizationID string) Settings {
	return Settings{
		OrganizationID:                organizationID,
		NightDiffPercent:              decimal.NewFromInt(10),
		RegularHolidayPercent:         decimal.NewFromInt(200),
		SpecialHolidayPercent:         decimal.NewFromInt(130),
		OvertimeRegularPercent:        decimal.NewFromInt(125),
		OvertimeRestDayPercent:        decimal.NewFromInt(130),
		OvertimeRegularHolidayPercent: decimal.NewFromInt(260),
		OvertimeSpecialHolidayPercent: decimal.NewFromInt(169),
		AllowanceInDailyRate:          false,
		WorkingDaysPerYear:            261,
	}
}

// Rates is the percent-normalized view of Settings handed to the calculators.
// All values are fractions (1.25, not 125).
type Rates struct {
	NightDiff              decimal.Decimal
	RegularHoliday         decimal.Decimal
	SpecialHoliday         decimal.Decimal
	OvertimeRegular        decimal.Decimal
	OvertimeRestDay        decimal.Decimal
	OvertimeRegularHoliday decimal.Decimal
	OvertimeSpecialHoliday decimal.Decimal
	AllowanceInDailyRate   bool
	WorkingDaysPerYear     int
}

var hundred = decimal.NewFromInt(100)

// Normalize converts the stored whole-number percents to fractions exactly
// once, at the settings boundary.
func (s Settings) Normalize() Rates {
	return Rates{
		NightDiff:              s.NightDiffPercent.Div(hundred),
		RegularHoliday:         s.RegularHolidayPercent.Div(hundred),
		SpecialHoliday:         s.SpecialHolidayPercent.Div(hundred),
		OvertimeRegular:        s.OvertimeRegularPercent.Div(hundred),
		OvertimeRestDay:        s.OvertimeRestDayPercent.Div(hundred),
		OvertimeRegularHoliday: s.OvertimeRegularHolidayPercent.Div(hundred),
		OvertimeSpecialHoliday: s.OvertimeSpecialHolidayPercent.Div(hundred),
		AllowanceInDailyRate:   s.AllowanceInDailyRate,
		WorkingDaysPerYear:     s.WorkingDaysPerYear,
	}
}

// RunStatus is the payroll run lifecycle state.
type RunStatus string

const (
	RunDraft     RunStatus = "draft"
	RunFinalized RunStatus = "finalized"
	RunPaid      RunStatus = "paid"
	RunArchived  RunStatus = "archived"
	RunCancelled RunStatus = "cancelled"
)

func (s RunStatus) Valid() bool {
	switch s {
	case RunDraft, RunFinalized, RunPaid, RunArchived, RunCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the lifecycle: draft <-> finalized <-> paid,
// cancellation only before payment, archival from any live state, and
// archived/cancelled terminal.
func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	switch s {
	case RunDraft:
		return next == RunFinalized || next == RunCancelled || next == RunArchived
	case RunFinalized:
		return next == RunDraft || next == RunPaid || next == RunCancelled || next == RunArchived
	case RunPaid:
		return next == RunFinalized || next == RunArchived
	default:
		return false
	}
}

// LineItem is one payslip line: a manual deduction, a computed statutory
// deduction, or an incentive.
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

const (
	LineItemStatutory = "statutory"
	LineItemManual    = "manual"
	LineItemIncentive = "incentive"
)

// SchemeOverride is one employee's per-run override for one statutory scheme.
// A nil Enabled defers to the run-level flag; Frequency defaults to full.
type SchemeOverride struct {
	Enabled   *bool               `json:"enabled,omitempty"`
	Frequency statutory.Frequency `json:"frequency,omitempty"`
}

// EmployeeOverrides is the per-employee override bag attached to a run.
type EmployeeOverrides struct {
	Deductions          []LineItem                           `json:"deductions,omitempty"`
	Incentives          []LineItem                           `json:"incentives,omitempty"`
	NonTaxableAllowance decimal.Decimal                      `json:"non_taxable_allowance"`
	Schemes             map[statutory.Scheme]SchemeOverride `json:"schemes,omitempty"`
}

// Run is one payroll computation over a cutoff window for a roster of
// employees.
type Run struct {
	ID             string
	OrganizationID string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	EmployeeIDs    []string
	Overrides      map[string]EmployeeOverrides

	DeductionsEnabled bool
	NightDiffPercent  *decimal.Decimal // whole percent, overrides org settings

	Status    RunStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PeriodLabel renders the cutoff window the way payslips display it.
func (r Run) PeriodLabel() string {
	if r.PeriodStart.Year() == r.PeriodEnd.Year() {
		return fmt.Sprintf("%s - %s, %d",
			r.PeriodStart.Format("Jan 2"), r.PeriodEnd.Format("Jan 2"), r.PeriodEnd.Year())
	}
	return fmt.Sprintf("%s - %s",
		r.PeriodStart.Format("Jan 2, 2006"), r.PeriodEnd.Format("Jan 2, 2006"))
}

// PayFacts are the attendance-derived figures that justify a payslip's
// amounts. They are frozen once computed; payslip override edits never touch
// them.
type PayFacts struct {
	DaysWorked                  decimal.Decimal `json:"days_worked"`
	Absences                    int             `json:"absences"`
	LeaveDays                   decimal.Decimal `json:"leave_days"`
	LateMinutes                 float64         `json:"late_minutes"`
	UndertimeHours              float64         `json:"undertime_hours"`
	OvertimeHours               float64         `json:"overtime_hours"`
	RegularHolidayOvertimeHours float64         `json:"regular_holiday_overtime_hours"`
	SpecialHolidayOvertimeHours float64         `json:"special_holiday_overtime_hours"`
	NightDiffHours              float64         `json:"night_diff_hours"`
	RegularHolidayDays          int             `json:"regular_holiday_days"`
	SpecialHolidayDays          int             `json:"special_holiday_days"`
}

// Payslip is one employee's result in one run.
type Payslip struct {
	ID             string
	RunID          string
	OrganizationID string
	EmployeeID     string
	PeriodLabel    string

	GrossPay            decimal.Decimal
	Deductions          []LineItem
	Incentives          []LineItem
	NonTaxableAllowance decimal.Decimal
	NetPay              decimal.Decimal

	Facts PayFacts

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunSummary aggregates one run's payslips.
type RunSummary struct {
	RunID           string          `json:"run_id"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalIncentives decimal.Decimal `json:"total_incentives"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
