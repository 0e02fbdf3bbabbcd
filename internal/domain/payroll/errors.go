package payroll

import "errors"

var (
	ErrSettingsNotFound     = errors.New("payroll settings not found")
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrRunExists            = errors.New("a payroll run already covers this employee and cutoff window")
	ErrRunNotEditable       = errors.New("payroll run is not in draft, cannot modify")
	ErrInvalidTransition    = errors.New("invalid payroll run status transition")
	ErrInvalidPeriod        = errors.New("invalid cutoff window")
	ErrEmptyRoster          = errors.New("payroll run roster is empty")
	ErrNegativeCompensation = errors.New("compensation must be non-negative")
	ErrInvalidWorkingDays   = errors.New("working days per year must be positive")
)
