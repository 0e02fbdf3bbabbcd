package attendance

import "context"

// AttendanceService keys attendance records and serves them back per
// employee. Days covered by a finalized payroll run are immutable.
type AttendanceService interface {
	Upsert(ctx context.Context, organizationID string, req UpsertAttendanceRequest) (AttendanceResponse, error)
	ListForEmployee(ctx context.Context, organizationID string, query ListAttendanceQuery) ([]AttendanceResponse, error)
}
