package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType is a per-organization leave bucket name. Vacation and sick are
// built in; organizations may add named custom types.
type LeaveType string

const (
	TypeVacation LeaveType = "vacation"
	TypeSick     LeaveType = "sick"
)

// CreditBalance is one employee's balance for one leave type.
type CreditBalance struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	LeaveType      LeaveType
	Total          decimal.Decimal
	Used           decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Balance returns total minus used, adjustments included (adjustments mutate
// Total or Used when applied).
func (b CreditBalance) Balance() decimal.Decimal {
	return b.Total.Sub(b.Used)
}

// AdjustmentKind records why a balance moved outside of accrual.
type AdjustmentKind string

const (
	AdjustmentManual         AdjustmentKind = "manual"
	AdjustmentCashConversion AdjustmentKind = "cash_conversion"
	AdjustmentAccrual        AdjustmentKind = "accrual"
)

// Adjustment is the audit row paired with every discretionary balance
// mutation. Reason is mandatory at this boundary.
type Adjustment struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	LeaveType      LeaveType
	Kind           AdjustmentKind
	Delta          decimal.Decimal
	Reason         string
	CreatedBy      *string
	CreatedAt      time.Time
}
