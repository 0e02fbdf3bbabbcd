package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
)

// RunSource lists an organization's payroll runs for the lock check. The
// postgresql payroll repository satisfies it.
type RunSource interface {
	ListRuns(ctx context.Context, organizationID string) ([]payroll.Run, error)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	runs           RunSource
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, runs RunSource) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		runs:           runs,
	}
}

func (s *AttendanceServiceImpl) Upsert(ctx context.Context, organizationID string, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	locked, err := s.isLocked(ctx, organizationID, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if locked {
		return attendance.AttendanceResponse{}, fmt.Errorf("%s on %s: %w", req.EmployeeID, req.Date, attendance.ErrRecordLocked)
	}

	record := attendance.Attendance{
		OrganizationID:    organizationID,
		EmployeeID:        req.EmployeeID,
		Date:              date,
		ScheduleIn:        req.ScheduleIn,
		ScheduleOut:       req.ScheduleOut,
		ActualIn:          req.ActualIn,
		ActualOut:         req.ActualOut,
		OvertimeOverride:  req.OvertimeOverride,
		LateOverride:      req.LateOverride,
		UndertimeOverride: req.UndertimeOverride,
		IsHoliday:         req.IsHoliday,
		HolidayKind:       req.HolidayKind,
		IsRestDay:         req.IsRestDay,
		Status:            req.Status,
		Remark:            req.Remark,
	}
	record.Normalize()

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toAttendanceResponse(saved), nil
}

func (s *AttendanceServiceImpl) ListForEmployee(ctx context.Context, organizationID string, query attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", query.From)
	to, _ := time.Parse("2006-01-02", query.To)

	records, err := s.attendanceRepo.GetForEmployeeInRange(ctx, query.EmployeeID, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses, nil
}

// isLocked reports whether a finalized or paid run already covers this
// employee-day. Draft and cancelled runs never lock records.
func (s *AttendanceServiceImpl) isLocked(ctx context.Context, organizationID, employeeID string, date time.Time) (bool, error) {
	runs, err := s.runs.ListRuns(ctx, organizationID)
	if err != nil {
		return false, fmt.Errorf("failed to check covering payroll runs: %w", err)
	}

	for _, run := range runs {
		if run.Status != payroll.RunFinalized && run.Status != payroll.RunPaid {
			continue
		}
		if date.Before(run.PeriodStart) || date.After(run.PeriodEnd) {
			continue
		}
		for _, id := range run.EmployeeIDs {
			if id == employeeID {
				return true, nil
			}
		}
	}
	return false, nil
}

func toAttendanceResponse(record attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		Date:              record.Date.Format("2006-01-02"),
		ScheduleIn:        record.ScheduleIn,
		ScheduleOut:       record.ScheduleOut,
		ActualIn:          record.ActualIn,
		ActualOut:         record.ActualOut,
		OvertimeOverride:  record.OvertimeOverride,
		LateOverride:      record.LateOverride,
		UndertimeOverride: record.UndertimeOverride,
		IsHoliday:         record.IsHoliday,
		HolidayKind:       record.HolidayKind,
		IsRestDay:         record.IsRestDay,
		Status:            record.Status,
		Remark:            record.Remark,
	}
}
