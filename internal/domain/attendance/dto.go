package attendance

import (
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

// UpsertAttendanceRequest keys or corrects one employee-day. The override
// fields are tri-state: absent means untouched, null means recompute from the
// clock times, a number means use it verbatim.
type UpsertAttendanceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // "2006-01-02"
	ScheduleIn  string  `json:"schedule_in"`
	ScheduleOut string  `json:"schedule_out"`
	ActualIn    *string `json:"actual_in,omitempty"`
	ActualOut   *string `json:"actual_out,omitempty"`

	OvertimeOverride  Override `json:"overtime_hours"`
	LateOverride      Override `json:"late_minutes"`
	UndertimeOverride Override `json:"undertime_hours"`

	IsHoliday   bool        `json:"is_holiday"`
	HolidayKind HolidayKind `json:"holiday_kind,omitempty"`
	IsRestDay   bool        `json:"is_rest_day"`
	Status      Status      `json:"status"`
	Remark      *string     `json:"remark,omitempty"`
}

func (r *UpsertAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidClock(r.ScheduleIn) {
		errs = append(errs, validator.ValidationError{Field: "schedule_in", Message: "must be HH:mm"})
	}
	if !validator.IsValidClock(r.ScheduleOut) {
		errs = append(errs, validator.ValidationError{Field: "schedule_out", Message: "must be HH:mm"})
	}
	if r.ActualIn != nil && !validator.IsValidClock(*r.ActualIn) {
		errs = append(errs, validator.ValidationError{Field: "actual_in", Message: "must be HH:mm"})
	}
	if r.ActualOut != nil && !validator.IsValidClock(*r.ActualOut) {
		errs = append(errs, validator.ValidationError{Field: "actual_out", Message: "must be HH:mm"})
	}
	if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, absent, half_day, leave"})
	}
	if r.IsHoliday && r.HolidayKind != HolidayRegular && r.HolidayKind != HolidaySpecial {
		errs = append(errs, validator.ValidationError{Field: "holiday_kind", Message: "must be 'regular' or 'special' on a holiday"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListAttendanceQuery bounds a per-employee listing to one date window.
type ListAttendanceQuery struct {
	EmployeeID string
	From       string
	To         string
}

func (q *ListAttendanceQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidDate(q.From) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidDate(q.To) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	ScheduleIn  string  `json:"schedule_in"`
	ScheduleOut string  `json:"schedule_out"`
	ActualIn    *string `json:"actual_in,omitempty"`
	ActualOut   *string `json:"actual_out,omitempty"`

	OvertimeOverride  Override `json:"overtime_hours"`
	LateOverride      Override `json:"late_minutes"`
	UndertimeOverride Override `json:"undertime_hours"`

	IsHoliday   bool        `json:"is_holiday"`
	HolidayKind HolidayKind `json:"holiday_kind,omitempty"`
	IsRestDay   bool        `json:"is_rest_day"`
	Status      Status      `json:"status"`
	Remark      *string     `json:"remark,omitempty"`
}
