package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the attendance source consumed by the payroll
// engine. Records come back sorted by date, one per calendar day; days with no
// record are simply missing and are excluded from totals by the calculator.
type AttendanceRepository interface {
	GetForEmployeeInRange(ctx context.Context, employeeID string, organizationID string, start, end time.Time) ([]Attendance, error)
	Upsert(ctx context.Context, record Attendance) (Attendance, error)
}
