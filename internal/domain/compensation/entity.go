package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType selects how Profile.BasicSalary is interpreted.
type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryDaily   SalaryType = "daily"
	SalaryHourly  SalaryType = "hourly"
)

func (s SalaryType) Valid() bool {
	switch s {
	case SalaryMonthly, SalaryDaily, SalaryHourly:
		return true
	}
	return false
}

// Profile is one employee's compensation configuration. Holiday rate
// overrides are whole-number percents (e.g. 200) like the organization
// defaults they replace.
type Profile struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	BasicSalary    decimal.Decimal
	Allowance      decimal.Decimal
	SalaryType     SalaryType

	RegularHolidayPercent *decimal.Decimal
	SpecialHolidayPercent *decimal.Decimal

	BankName          *string
	BankAccountNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
