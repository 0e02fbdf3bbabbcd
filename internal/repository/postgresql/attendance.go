package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, organization_id, employee_id, date, schedule_in, schedule_out, actual_in, actual_out,
	overtime_override_mode, overtime_override_value,
	late_override_mode, late_override_value,
	undertime_override_mode, undertime_override_value,
	is_holiday, holiday_kind, is_rest_day, status, remark, created_at, updated_at
`

func (r *attendanceRepository) GetForEmployeeInRange(ctx context.Context, employeeID string, organizationID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE employee_id = $1 AND organization_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`, employeeID, organizationID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	record.Normalize()

	query := `
		INSERT INTO attendance_records (
			id, organization_id, employee_id, date, schedule_in, schedule_out, actual_in, actual_out,
			overtime_override_mode, overtime_override_value,
			late_override_mode, late_override_value,
			undertime_override_mode, undertime_override_value,
			is_holiday, holiday_kind, is_rest_day, status, remark
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (organization_id, employee_id, date) DO UPDATE SET
			schedule_in = EXCLUDED.schedule_in,
			schedule_out = EXCLUDED.schedule_out,
			actual_in = EXCLUDED.actual_in,
			actual_out = EXCLUDED.actual_out,
			overtime_override_mode = EXCLUDED.overtime_override_mode,
			overtime_override_value = EXCLUDED.overtime_override_value,
			late_override_mode = EXCLUDED.late_override_mode,
			late_override_value = EXCLUDED.late_override_value,
			undertime_override_mode = EXCLUDED.undertime_override_mode,
			undertime_override_value = EXCLUDED.undertime_override_value,
			is_holiday = EXCLUDED.is_holiday,
			holiday_kind = EXCLUDED.holiday_kind,
			is_rest_day = EXCLUDED.is_rest_day,
			status = EXCLUDED.status,
			remark = EXCLUDED.remark,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		record.ID, record.OrganizationID, record.EmployeeID, record.Date,
		record.ScheduleIn, record.ScheduleOut, record.ActualIn, record.ActualOut,
		int(record.OvertimeOverride.Mode), record.OvertimeOverride.Value,
		int(record.LateOverride.Mode), record.LateOverride.Value,
		int(record.UndertimeOverride.Mode), record.UndertimeOverride.Value,
		record.IsHoliday, record.HolidayKind, record.IsRestDay, record.Status, record.Remark,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return saved, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var otMode, lateMode, utMode int

	err := row.Scan(
		&a.ID, &a.OrganizationID, &a.EmployeeID, &a.Date,
		&a.ScheduleIn, &a.ScheduleOut, &a.ActualIn, &a.ActualOut,
		&otMode, &a.OvertimeOverride.Value,
		&lateMode, &a.LateOverride.Value,
		&utMode, &a.UndertimeOverride.Value,
		&a.IsHoliday, &a.HolidayKind, &a.IsRestDay, &a.Status, &a.Remark,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	a.OvertimeOverride.Mode = attendance.OverrideMode(otMode)
	a.LateOverride.Mode = attendance.OverrideMode(lateMode)
	a.UndertimeOverride.Mode = attendance.OverrideMode(utMode)
	return a, nil
}
