package attendance

import (
	"bytes"
	"encoding/json"
	"time"
)

// Status classifies one attendance day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// Worked reports whether the day contributes worked time.
func (s Status) Worked() bool {
	return s == StatusPresent || s == StatusHalfDay
}

// HolidayKind distinguishes the two statutory holiday categories.
type HolidayKind string

const (
	HolidayNone    HolidayKind = ""
	HolidayRegular HolidayKind = "regular"
	HolidaySpecial HolidayKind = "special"
)

// OverrideMode is the tri-state for manually keyed late/undertime/overtime
// figures: unset, an explicit value, or an explicit request to recompute from
// the clock times.
type OverrideMode int

const (
	OverrideNone OverrideMode = iota
	OverrideValue
	OverrideRecalculate
)

// Override carries one tri-state numeric override. The zero value means "not
// overridden".
type Override struct {
	Mode  OverrideMode
	Value float64
}

// UnmarshalJSON maps an absent field to OverrideNone (zero value), JSON null
// to OverrideRecalculate, and a number to OverrideValue. "Override is zero"
// and "no override" stay distinct.
func (o *Override) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Mode = OverrideRecalculate
		o.Value = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Mode = OverrideValue
	o.Value = v
	return nil
}

func (o Override) MarshalJSON() ([]byte, error) {
	switch o.Mode {
	case OverrideRecalculate:
		return []byte("null"), nil
	case OverrideValue:
		return json.Marshal(o.Value)
	default:
		// Absent overrides round-trip as null as well; storage keeps the mode.
		return []byte("null"), nil
	}
}

// Attendance is one employee's record for one calendar date.
type Attendance struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Date           time.Time
	ScheduleIn     string // "HH:mm"
	ScheduleOut    string // "HH:mm"
	ActualIn       *string
	ActualOut      *string

	OvertimeOverride  Override // hours
	LateOverride      Override // minutes
	UndertimeOverride Override // hours

	IsHoliday   bool
	HolidayKind HolidayKind
	IsRestDay   bool
	Status      Status
	Remark      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize enforces the status invariant: absent and leave days carry no
// actual clock times and no overtime, cleared rather than zeroed.
func (a *Attendance) Normalize() {
	if a.Status == StatusAbsent || a.Status == StatusLeave {
		a.ActualIn = nil
		a.ActualOut = nil
		a.OvertimeOverride = Override{}
		a.LateOverride = Override{}
		a.UndertimeOverride = Override{}
	}
	if !a.IsHoliday {
		a.HolidayKind = HolidayNone
	}
}
